package cli

// Exit codes follow Unix conventions.
const (
	ExitSuccess      = 0   // completed normally
	ExitInvalidUsage = 1   // user input error (e.g. empty query)
	ExitArgParse     = 2   // flag parsing failed
	ExitRuntimeError = 3   // unhandled processing error
	ExitCancelled    = 130 // interrupted (SIGINT)
)

// exitError carries an exit code through the cobra error path.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit"
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }
