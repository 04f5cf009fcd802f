package rename

import "fmt"

// ErrorKind classifies engine errors for callers that need to branch on
// the failure class rather than the message.
type ErrorKind int

const (
	// KindPreviewFailed means the pattern or options were malformed and no
	// preview could be produced.
	KindPreviewFailed ErrorKind = iota
	// KindRenameFailed is a generic execution failure.
	KindRenameFailed
	// KindValidationFailed means a proposal failed a pre-flight check.
	KindValidationFailed
	// KindIO wraps an underlying filesystem error.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindPreviewFailed:
		return "preview generation failed"
	case KindRenameFailed:
		return "rename operation failed"
	case KindValidationFailed:
		return "validation failed"
	case KindIO:
		return "io error"
	}
	return "unknown error"
}

// Error is the engine's error type. All kinds share one formatting
// implementation.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func previewError(format string, args ...any) *Error {
	return &Error{Kind: KindPreviewFailed, Msg: fmt.Sprintf(format, args...)}
}
