package structmatch

import (
	"errors"
	"fmt"
)

// Kind classifies an error the engine can raise. Callers that want to
// branch on error class should use errors.Is against the sentinel values
// below rather than this enum directly; Kind exists mainly so an *Error
// can report which class it is.
type Kind int

const (
	KindSyntax Kind = iota
	KindSchema
	KindCorruptPayload
	KindInternalInvariant
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SYNTAX_ERROR"
	case KindSchema:
		return "SCHEMA_ERROR"
	case KindCorruptPayload:
		return "CORRUPT_PAYLOAD"
	case KindInternalInvariant:
		return "INTERNAL_INVARIANT"
	case KindIO:
		return "IO_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Sentinel errors, compared with errors.Is, rather than ad-hoc fmt.Errorf
// at every call site.
var (
	ErrSyntax            = errors.New("structmatch: syntax error")
	ErrSchema            = errors.New("structmatch: schema error")
	ErrCorruptPayload    = errors.New("structmatch: corrupt payload")
	ErrInternalInvariant = errors.New("structmatch: internal invariant violated")
	ErrIO                = errors.New("structmatch: posting enumerator io error")
)

// Error wraps a sentinel with the offending detail, keeping errors.Is
// working against the package-level sentinels while still letting the
// message carry context (file/offset/etc).
type Error struct {
	Kind    Kind
	Message string
	Err     error // sentinel this wraps, for errors.Is
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func syntaxErrorf(format string, args ...any) error {
	return &Error{Kind: KindSyntax, Message: fmt.Sprintf(format, args...), Err: ErrSyntax}
}

func schemaErrorf(format string, args ...any) error {
	return &Error{Kind: KindSchema, Message: fmt.Sprintf(format, args...), Err: ErrSchema}
}

func corruptPayloadErrorf(format string, args ...any) error {
	return &Error{Kind: KindCorruptPayload, Message: fmt.Sprintf(format, args...), Err: ErrCorruptPayload}
}

func invariantErrorf(format string, args ...any) error {
	return &Error{Kind: KindInternalInvariant, Message: fmt.Sprintf(format, args...), Err: ErrInternalInvariant}
}

func ioErrorf(cause error) error {
	return &Error{Kind: KindIO, Message: cause.Error(), Err: ErrIO}
}
