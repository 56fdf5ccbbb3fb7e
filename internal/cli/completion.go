package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Flag is one command-line option as the completion scripts offer it.
type Flag struct {
	Long   string
	Short  string
	Help   string
	Arg    string   // value label; empty for boolean flags
	Values []string // fixed suggestions for the value
	File   bool     // the value is a path
	Field  bool     // the value is a profile field name
}

// Completes reports whether the shell can suggest something for the value.
func (f Flag) Completes() bool { return f.File || f.Field || len(f.Values) > 0 }

// Names returns the spellings of the flag as typed on the command line.
func (f Flag) Names() []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

type hint struct {
	arg    string
	values []string
	file   bool
	field  bool
}

// hints add value suggestions to flags taking an argument. A flag missing
// from the table still completes by name.
var hints = map[string]hint{
	"mode":          {arg: "mode", values: []string{"repl", "tui", "batch", "format", "extract"}},
	"mask":          {arg: "descriptor", values: []string{"currency", "currency/$", "currency/R$"}},
	"precision":     {arg: "digits", values: []string{"-1", "0", "2", "3", "4"}},
	"grouping":      {arg: "char", values: []string{",", ".", "_"}},
	"decimal":       {arg: "char", values: []string{".", ","}},
	"locale":        {arg: "tag", values: []string{"host", "en-US", "de-DE", "fr-FR", "pt-BR", "ja-JP"}},
	"currency":      {arg: "code", values: []string{"USD", "EUR", "GBP", "BRL", "JPY", "KWD"}},
	"rounding":      {arg: "policy", values: []string{"truncate", "half-up", "half-even", "floor", "ceil"}},
	"empty-integer": {arg: "style", values: []string{"zero", "blank"}},
	"write-back":    {arg: "strategy", values: []string{"detach", "guard"}},
	"input":         {arg: "file", file: true},
	"output":        {arg: "file", file: true},
	"profile":       {arg: "file", file: true},
	"save-profile":  {arg: "file", file: true},
	"field":         {arg: "field", field: true},
	"timeout":       {arg: "duration", values: []string{"10s", "30s", "1m", "5m"}},
	"metrics-addr":  {arg: "addr", values: []string{":9090"}},
	"theme":         {arg: "theme", values: []string{"dark", "light", "none"}},
	"completion":    {arg: "shell", values: []string{"bash", "zsh", "fish", "powershell"}},
}

// builtinFlags are handled before the flag set is parsed.
var builtinFlags = []Flag{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
}

type boolValue interface {
	IsBoolFlag() bool
}

// Flags lists the options of fs for completion. One-letter flags sharing a
// value with a long flag become its short form.
func Flags(fs *flag.FlagSet) []Flag {
	shorts := map[flag.Value]string{}
	fs.VisitAll(func(f *flag.Flag) {
		if len(f.Name) == 1 {
			shorts[f.Value] = f.Name
		}
	})

	flags := append([]Flag(nil), builtinFlags...)
	fs.VisitAll(func(f *flag.Flag) {
		if len(f.Name) == 1 {
			return
		}
		h := hints[f.Name]
		c := Flag{
			Long:   f.Name,
			Short:  shorts[f.Value],
			Help:   summarize(f.Usage),
			Arg:    h.arg,
			Values: h.values,
			File:   h.file,
			Field:  h.field,
		}
		if b, ok := f.Value.(boolValue); !ok || !b.IsBoolFlag() {
			if c.Arg == "" {
				c.Arg = "value"
			}
		}
		flags = append(flags, c)
	})
	return flags
}

// summarize shortens a flag usage to a description every shell accepts
// inside single quotes or zsh brackets.
func summarize(usage string) string {
	for _, sep := range []string{". ", " (", ", ", ": "} {
		if i := strings.Index(usage, sep); i >= 0 {
			usage = usage[:i]
		}
	}
	usage = strings.TrimSuffix(usage, ".")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', '[', ']', ':':
			return -1
		}
		return r
	}, usage)
}

type scriptData struct {
	Program string
	Flags   []Flag
	Fields  []string
}

var scripts = map[string]*template.Template{}

func init() {
	funcs := template.FuncMap{
		"join":     strings.Join,
		"options":  optionList,
		"quote":    quoteList,
		"zshSpec":  zshSpec,
		"fishLine": fishLine,
	}
	for shell, text := range map[string]string{
		"bash":       bashScript,
		"zsh":        zshScript,
		"fish":       fishScript,
		"powershell": powerShellScript,
	} {
		scripts[shell] = template.Must(template.New(shell).Funcs(funcs).Parse(text))
	}
	scripts["ps"] = scripts["powershell"]
}

// GenerateCompletion writes a completion script for shell covering every
// flag of fs.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell" or "ps").
//   - fs: The flag set to complete; its name is the command name.
//   - fields: Profile field names offered for -field.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, fs *flag.FlagSet, fields []string) error {
	tmpl, ok := scripts[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	data := scriptData{Program: fs.Name(), Flags: Flags(fs), Fields: fields}
	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func optionList(flags []Flag) []string {
	var names []string
	for _, f := range flags {
		names = append(names, f.Names()...)
	}
	return names
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// zshSpec formats f as a zsh _arguments entry.
func zshSpec(f Flag) string {
	var value string
	switch {
	case f.File:
		value = ":" + f.Arg + ":_files"
	case f.Field:
		value = ":" + f.Arg + ":($fields)"
	case len(f.Values) > 0:
		value = ":" + f.Arg + ":(" + strings.Join(f.Values, " ") + ")"
	case f.Arg != "":
		value = ":" + f.Arg + ":"
	}
	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, f.Help, value)
	}
	return fmt.Sprintf("'(-%[1]s --%[2]s)'{-%[1]s,--%[2]s}'[%[3]s]%[4]s'", f.Short, f.Long, f.Help, value)
}

// fishLine formats f as a fish complete command.
func fishLine(program string, fields []string, f Flag) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c %s", program)
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	fmt.Fprintf(&b, " -l %s -d '%s'", f.Long, f.Help)
	switch {
	case f.File:
		b.WriteString(" -rF")
	case f.Field:
		fmt.Fprintf(&b, " -xa '%s'", strings.Join(fields, " "))
	case len(f.Values) > 0:
		fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.Values, " "))
	case f.Arg != "":
		b.WriteString(" -x")
	}
	return b.String()
}

const bashScript = `# Bash completion script for {{.Program}}
# Source it from ~/.bashrc or copy it to ~/.local/share/bash-completion/completions/{{.Program}}

_{{.Program}}_completions() {
    local cur prev fields
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    fields="{{join .Fields " "}}"

    case "${prev}" in
{{- range .Flags}}{{if .Completes}}
        {{join .Names "|"}})
{{- if .File}}
            COMPREPLY=( $(compgen -f -- "${cur}") )
{{- else if .Field}}
            COMPREPLY=( $(compgen -W "${fields}" -- "${cur}") )
{{- else}}
            COMPREPLY=( $(compgen -W "{{join .Values " "}}" -- "${cur}") )
{{- end}}
            return 0
            ;;
{{- end}}{{end}}
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "{{join (options .Flags) " "}}" -- "${cur}") )
    fi
}

complete -F _{{.Program}}_completions {{.Program}}
`

const zshScript = `#compdef {{.Program}}

# Zsh completion script for {{.Program}}
# Place it in a directory of $fpath as _{{.Program}}

_{{.Program}}() {
    local -a fields
    fields=({{join .Fields " "}})

    _arguments -s \
{{- range .Flags}}
        {{zshSpec .}} \
{{- end}}
        '*:value:'
}

_{{.Program}} "$@"
`

const fishScript = `# Fish completion script for {{.Program}}
# Copy it to ~/.config/fish/completions/{{.Program}}.fish

complete -c {{.Program}} -f
{{range .Flags}}{{fishLine $.Program $.Fields .}}
{{end}}`

const powerShellScript = `# PowerShell completion script for {{.Program}}
# Add it to your $PROFILE

Register-ArgumentCompleter -Native -CommandName {{.Program}} -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $fields = @({{quote .Fields}})
    $prev = $commandAst.CommandElements[-2].Extent.Text
    $values = switch ($prev) {
{{- range .Flags}}{{if and .Completes (not .File)}}{{$f := .}}{{range .Names}}
        '{{.}}' { {{if $f.Field}}$fields{{else}}@({{quote $f.Values}}){{end}} }
{{- end}}{{end}}{{end}}
        default { $null }
    }
    if ($null -ne $values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    @({{quote (options .Flags)}}) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
    }
}
`
