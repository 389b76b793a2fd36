package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
)

// AppError is the error the use cases raise. Handlers translate it to an
// HTTP status via Respond; everything else is internal.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Validation(code, message string) error {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func ForbiddenErr(code, message string) error {
	return &AppError{Kind: KindForbidden, Code: code, Message: message}
}

func ConflictErr(code, message string) error {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func InvalidTransition(from, to string) error {
	return &AppError{
		Kind:    KindInvalidTransition,
		Code:    "invalid_transition",
		Message: fmt.Sprintf("cannot transition booking from %q to %q", from, to),
	}
}

func AsApp(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	if ae, ok := AsApp(err); ok {
		return ae.Kind == kind
	}
	return false
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	if ae, ok := AsApp(err); ok {
		return ae.Code == code
	}
	return false
}
