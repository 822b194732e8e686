package domain

import "fmt"

type UploadState int

const (
	AwaitingParse UploadState = iota
	Validating
	Transforming
	Responding
	Done
	Rejected
)

func (s UploadState) String() string {
	switch s {
	case AwaitingParse:
		return "awaiting_parse"
	case Validating:
		return "validating"
	case Transforming:
		return "transforming"
	case Responding:
		return "responding"
	case Done:
		return "done"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// StateError records the state an upload was in when it was rejected.
type StateError struct {
	State UploadState
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("upload rejected while %s: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
