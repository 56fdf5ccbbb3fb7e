package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// shortFlags maps a long flag to its one-letter alias. Setting either form
// on the command line blocks the environment variable.
var shortFlags = map[string]string{
	"input":   "i",
	"output":  "o",
	"verbose": "v",
	"quiet":   "q",
}

// envSkipped flags have no environment variable: profile and field are read
// before the profile is loaded, the others are one-off actions.
var envSkipped = map[string]bool{
	"profile":      true,
	"field":        true,
	"completion":   true,
	"save-profile": true,
}

// EnvKey returns the environment variable for a flag: "metrics-addr" reads
// MONEYMASK_METRICS_ADDR.
func EnvKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// boolFlag matches the flag package's boolean values.
type boolFlag interface {
	IsBoolFlag() bool
}

// applyEnvOverrides sets every long flag that was not given on the command
// line from its MONEYMASK_ variable (see EnvKey). It runs after the profile
// is applied, giving: flags > environment > profile > defaults.
// Values the flag rejects are ignored, so a bad variable never stops the
// program.
func applyEnvOverrides(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		if len(f.Name) == 1 || envSkipped[f.Name] {
			return
		}
		names := []string{f.Name}
		if short, ok := shortFlags[f.Name]; ok {
			names = append(names, short)
		}
		if isFlagSetAny(fs, names...) {
			return
		}
		val := os.Getenv(EnvKey(f.Name))
		if val == "" {
			return
		}
		if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
			val = strconv.FormatBool(parseBoolEnv(val, f.Value.String() == "true"))
		}
		prev := f.Value.String()
		if err := fs.Set(f.Name, val); err != nil {
			// Numeric flags store zero before reporting the parse error.
			_ = fs.Set(f.Name, prev)
		}
	})
}
