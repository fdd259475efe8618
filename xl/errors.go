package xl

import "fmt"

// Kind classifies the errors this package returns. Callers that need to
// branch on failure mode should compare against these with errors.Is
// (via the sentinel Kind values below) rather than parsing messages.
type Kind int

const (
	_ Kind = iota
	KindFileNotFound
	KindFileExists
	KindIOError
	KindInvalidFormat
	KindInvalidArgument
	KindInvalidState
	KindFormulaError
	KindInconsistentState
	KindInternalError
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "FileNotFound"
	case KindFileExists:
		return "FileExists"
	case KindIOError:
		return "IOError"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindInvalidState:
		return "InvalidState"
	case KindFormulaError:
		return "FormulaError"
	case KindInconsistentState:
		return "InconsistentState"
	case KindInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across the public surface. It
// carries a Kind so callers can branch on failure category, and wraps an
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrKind(KindInvalidArgument)) style checks work
// by comparing Kind rather than identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func wrapErr(k Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrKind returns a sentinel *Error of the given kind, suitable for use
// with errors.Is to test the kind of an error returned by this package.
func ErrKind(k Kind) error { return &Error{Kind: k, Message: k.String()} }
