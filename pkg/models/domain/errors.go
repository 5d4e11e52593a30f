package domain

import "fmt"

// The error taxonomy of the submission front end. Every failure becomes
// exactly one user-visible message; Error() is that message.

// ValidationError is a locally detected precondition failure. It never
// reaches the network and never clears existing results.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is a rejected login or token. Message prefers the service's
// detail text over a generic transport description.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Cause }

// SubmissionError is any failure during report generation after the
// preconditions passed.
type SubmissionError struct {
	Message string
	Cause   error
}

func (e *SubmissionError) Error() string { return e.Message }
func (e *SubmissionError) Unwrap() error { return e.Cause }

// FileReadError is a local file-read failure while loading a transcript or
// recording. It has no side effects on other fields.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error { return e.Cause }
