package validation

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed check. Every failure produced by this
// package is a *CheckError carrying exactly one of these kinds.
type FailureKind string

const (
	AssertionFailed FailureKind = "assertion failed"
	MalformedBody   FailureKind = "malformed body"
	SchemaViolation FailureKind = "schema violation"
	FieldMissing    FailureKind = "field missing"
	FieldMismatch   FailureKind = "field mismatch"
	TypeMismatch    FailureKind = "type mismatch"
	NotAList        FailureKind = "not a list"
	EmptyList       FailureKind = "empty list"
	LengthMismatch  FailureKind = "length mismatch"
)

// CheckError is a failed validation check. It is never recovered from
// inside this package; the caller (normally a test) decides what a failure
// means.
type CheckError struct {
	Kind    FailureKind
	Message string
}

func (e *CheckError) Error() string {
	return e.Message
}

func failf(kind FailureKind, format string, args ...interface{}) error {
	return &CheckError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is a CheckError of the given kind.
func IsFailure(err error, kind FailureKind) bool {
	var ce *CheckError
	return errors.As(err, &ce) && ce.Kind == kind
}
