// Package core provides the reusable query-processing logic shared by the
// CLI and external consumers. It is deliberately free of I/O and global
// state to stay testable and portable.
package core

import "strings"

// ValidationError reports rejected user input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// SimulatedFailureError is raised by SimulateFailure to exercise
// error-handling paths in the CLI and cache layers.
type SimulatedFailureError struct {
	Input string
}

func (e *SimulatedFailureError) Error() string {
	return "simulated processing failure triggered by input"
}

// Sanitize validates and trims raw string input. It returns a
// *ValidationError when the input is empty or whitespace-only.
func Sanitize(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Msg: "query string cannot be empty"}
	}
	return trimmed, nil
}

// ProcessQuery applies the business logic to sanitized input.
// Placeholder transform: currently returns the sanitized query unchanged.
func ProcessQuery(query string) (string, error) {
	return Sanitize(query)
}

// SimulateFailure uppercases the input unless it contains "fail"
// (case-insensitive), in which case it returns a *SimulatedFailureError.
func SimulateFailure(input string) (string, error) {
	if strings.Contains(strings.ToLower(input), "fail") {
		return "", &SimulatedFailureError{Input: input}
	}
	return strings.ToUpper(input), nil
}

// ExampleHello is a template demo function kept for scaffolding.
func ExampleHello() string {
	return "Hello from core!"
}
