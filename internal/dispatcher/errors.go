package dispatcher

import "fmt"

// ErrorCode categorizes a dispatcher-level failure for callers that
// want to branch on kind rather than message text.
type ErrorCode string

const (
	ErrCodeInputUnreadable ErrorCode = "input unreadable"
	ErrCodeSpawnFailed     ErrorCode = "spawn failed"
)

// OpError is the dispatcher's structured error type: an operation name,
// a category, a human-readable message, and an optional wrapped cause.
type OpError struct {
	Op    string
	Code  ErrorCode
	Msg   string
	Inner error
}

func (e *OpError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("dispatcher: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("dispatcher: %s", msg)
}

// Unwrap returns the wrapped cause for errors.Is/errors.As support.
func (e *OpError) Unwrap() error { return e.Inner }

// Is supports errors.Is comparison by error code.
func (e *OpError) Is(target error) bool {
	te, ok := target.(*OpError)
	if !ok {
		return false
	}
	return e.Code == te.Code
}
