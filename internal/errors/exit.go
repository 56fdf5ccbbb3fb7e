package apperrors

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorInput    = 2 // unreadable input: batch file, stdin, descriptor
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT or timeout
)

// ExitCodeFor maps an error to the process exit code the CLI should use.
// Cancellation wins over the other classes, since a canceled run may also
// have failed to read its input.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsContextError(err):
		return ExitErrorCanceled
	case IsConfigError(err):
		return ExitErrorConfig
	case IsValidationError(err):
		return ExitErrorInput
	}
	return ExitErrorGeneric
}
