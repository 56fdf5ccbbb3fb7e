// Package cli provides the REPL (Read-Eval-Print Loop) over a simulated
// masked text field, shell completion scripts, and output helpers.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/mask"
	"github.com/agbru/moneymask/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Descriptor is the mask descriptor the session starts with.
	Descriptor string
	// Resolve builds a masker from a descriptor. It is used at start and
	// by the "mask" command.
	Resolve func(descriptor string) (mask.Masker, error)
	// WriteBack is the binding's write-back strategy.
	WriteBack field.WriteBack
	// Observers receive every edit event, in addition to the REPL itself.
	Observers []field.Observer
	// Logger traces write-backs.
	Logger logging.Logger
	// ShowEvents prints each edit event under the field.
	ShowEvents bool
}

// REPL is an interactive session typing into one masked field.
type REPL struct {
	config     REPLConfig
	descriptor string
	masker     mask.Masker
	field      *field.MemoryField
	binding    *field.Binding
	events     []field.Event
	in         io.Reader
	out        io.Writer
}

// NewREPL creates a REPL bound to a fresh field.
//
// Parameters:
//   - config: REPL configuration. Resolve must not be nil.
//
// Returns:
//   - *REPL: A new REPL instance.
//   - error: The error from resolving the initial descriptor.
func NewREPL(config REPLConfig) (*REPL, error) {
	if config.Resolve == nil {
		return nil, errors.New("cli: REPLConfig.Resolve is nil")
	}
	m, err := config.Resolve(config.Descriptor)
	if err != nil {
		return nil, err
	}

	r := &REPL{
		config:     config,
		descriptor: config.Descriptor,
		masker:     m,
		field:      field.NewMemoryField(m.Mask("")),
		in:         os.Stdin,
		out:        os.Stdout,
	}

	opts := []field.Option{
		field.WithWriteBack(config.WriteBack),
		field.WithLogger(config.Logger),
		field.WithName("repl"),
		field.WithObserver(field.ObserverFunc(func(e field.Event) {
			r.events = append(r.events, e)
		})),
	}
	for _, o := range config.Observers {
		opts = append(opts, field.WithObserver(o))
	}
	r.binding = field.Bind(r.field, m.NewListener(), opts...)
	return r, nil
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Field returns the simulated field.
func (r *REPL) Field() *field.MemoryField { return r.field }

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)
	DisplayField(r.out, r.field)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"mask> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				r.binding.Detach()
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimRight(input, "\r\n")
		if strings.TrimSpace(input) == "" {
			continue
		}

		if !r.processCommand(input) {
			r.binding.Detach()
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sMoneymask - Interactive Field%s                        %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<text>%s          - Replace the field text, as a paste would\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stype <chars>%s    - Type characters one keystroke at a time\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sback [n]%s        - Press backspace n times (default 1)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sset <text>%s      - Replace the field text\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclear%s           - Empty the field\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s           - Rebind a fresh listener on the initial text\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smask <desc>%s     - Switch mask (currency, currency/<prefix>)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sformat <raw>%s    - Mask a value in one shot\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sextract [text]%s  - Unmask a value, or the field\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sevents%s          - Toggle edit event display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display the field and binding state\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimLeft(input, " \t")[len(parts[0]):])

	switch cmd {
	case "type", "t":
		r.edit(func() { r.field.Type(rest) })
	case "back", "b":
		r.cmdBack(args)
	case "set":
		r.edit(func() { r.field.SetText(rest) })
	case "clear":
		r.edit(func() { r.field.SetText("") })
	case "reset":
		r.reset()
		DisplayField(r.out, r.field)
	case "mask", "m":
		r.cmdMask(args)
	case "format", "f":
		fmt.Fprintf(r.out, "  %s\n", r.masker.Mask(rest))
	case "extract", "x":
		text := rest
		if text == "" {
			text = r.field.Text()
		}
		fmt.Fprintf(r.out, "  %s\n", r.masker.Unmask(text))
	case "events", "ev":
		r.config.ShowEvents = !r.config.ShowEvents
		fmt.Fprintf(r.out, "Event display: %s%s%s\n", ui.ColorMagenta(), onOff(r.config.ShowEvents), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.edit(func() { r.field.SetText(input) })
	}

	return true
}

// edit runs one or more field edits and shows the resulting field.
func (r *REPL) edit(fn func()) {
	r.events = r.events[:0]
	fn()
	DisplayField(r.out, r.field)
	if r.config.ShowEvents {
		for _, e := range r.events {
			DisplayEvent(r.out, e)
		}
	}
}

// cmdBack handles the "back" command.
func (r *REPL) cmdBack(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintf(r.out, "%sInvalid count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		n = v
	}
	r.edit(func() {
		for j := 0; j < n; j++ {
			r.field.Backspace()
		}
	})
}

// cmdMask handles the "mask" command.
func (r *REPL) cmdMask(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current mask: %s%s%s\n", ui.ColorCyan(), r.descriptor, ui.ColorReset())
		return
	}
	desc := strings.Join(args, " ")
	m, err := r.config.Resolve(desc)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid mask: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.masker = m
	r.descriptor = desc
	r.reset()
	fmt.Fprintf(r.out, "Mask changed to: %s%s%s\n", ui.ColorGreen(), desc, ui.ColorReset())
	DisplayField(r.out, r.field)
}

// reset puts the masker's empty rendering in the field and binds a fresh
// listener to it. The text is written while detached, so it is not an edit.
func (r *REPL) reset() {
	r.binding.Detach()
	r.field.SetText(r.masker.Mask(""))
	r.binding.Rebind(r.masker.NewListener())
}

// cmdStatus handles the "status" command.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "%sCurrent state:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Mask:       %s%s%s\n", ui.ColorCyan(), r.descriptor, ui.ColorReset())
	fmt.Fprintf(r.out, "  Write-back: %s%s%s\n", ui.ColorCyan(), r.binding.Strategy(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Text:       %s%q%s\n", ui.ColorCyan(), r.field.Text(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Caret:      %s%d%s\n", ui.ColorCyan(), r.field.Caret(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Value:      %s%s%s\n", ui.ColorCyan(), r.masker.Unmask(r.field.Text()), ui.ColorReset())
	fmt.Fprintf(r.out, "  Writes:     %s%d%s\n", ui.ColorCyan(), r.field.Writes(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Violations: %s%d%s\n", ui.ColorCyan(), r.field.Violations(), ui.ColorReset())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
