package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "moneymask"
	if runtime.GOOS == "windows" {
		binName = "moneymask.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD, so build from the
	// module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/moneymask")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build moneymask: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Format",
			args:     []string{"-mode", "format", "-mask", "currency/$", "-quiet", "1234567.891"},
			wantOut:  "$1,234,567.89",
			wantCode: 0,
		},
		{
			name:     "Extract",
			args:     []string{"-mode", "extract", "-mask", "currency/$", "-quiet", "$1,234.50"},
			wantOut:  "1234.50",
			wantCode: 0,
		},
		{
			name:     "Locale Separators",
			args:     []string{"-mode", "format", "-mask", "currency/€", "-locale", "de-DE", "-quiet", "1234,5"},
			wantOut:  "€1.234,5",
			wantCode: 0,
		},
		{
			name:     "Batch From Stdin",
			args:     []string{"-mode", "batch", "-mask", "currency/$", "-quiet"},
			stdin:    "1000\n\n25.5\n",
			wantOut:  "$1,000\n$25.5",
			wantCode: 0,
		},
		{
			name:     "Batch JSON",
			args:     []string{"-mode", "batch", "-mask", "currency/$", "-json", "-quiet"},
			stdin:    "42\n",
			wantOut:  `"output":"$42"`,
			wantCode: 0,
		},
		{
			name:     "REPL",
			args:     []string{"-mask", "currency/R$ "},
			stdin:    "type 12\nquit\n",
			wantOut:  "R$ 12|",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Completion",
			args:     []string{"-completion", "bash"},
			wantOut:  "complete",
			wantCode: 0,
		},
		{
			name:     "Unknown Mode",
			args:     []string{"-mode", "bogus"},
			wantOut:  "unknown mode",
			wantCode: 4,
		},
		{
			name:     "Pattern Without Engine",
			args:     []string{"-mode", "format", "-mask", "(99) 9999", "123"},
			wantOut:  "no pattern mask engine",
			wantCode: 4,
		},
		{
			name:     "Missing Batch Input",
			args:     []string{"-mode", "batch", "-input", filepath.Join(tmpDir, "missing.txt")},
			wantOut:  "input",
			wantCode: 2,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "moneymask",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			if tt.stdin != "" {
				cmd.Stdin = strings.NewReader(tt.stdin)
			}
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				var exitErr *exec.ExitError
				switch {
				case err == nil:
					t.Errorf("Expected exit code %d, but command succeeded.\nOutput: %s", tt.wantCode, outStr)
				case errors.As(err, &exitErr) && exitErr.ExitCode() != tt.wantCode:
					t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s", exitErr.ExitCode(), tt.wantCode, outStr)
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
