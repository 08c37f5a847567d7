package application

import (
	"errors"
	"fmt"
)

// Kind names a business rule violation. It is rendered as the "error" field
// of failed API responses.
type Kind string

const (
	KindParameterMissing     Kind = "ParameterMissing"
	KindIllegalColor         Kind = "IllegalColor"
	KindUserAlreadyExists    Kind = "UserAlreadyExists"
	KindNoUsersYet           Kind = "NoUsersYet"
	KindUserNotFound         Kind = "UserNotFound"
	KindUserCannotDeleteSelf Kind = "UserCannotDeleteSelf"
	KindUserReferenced       Kind = "UserReferenced"
	KindUsersReferenced      Kind = "UsersReferenced"
	KindInvalidParameter     Kind = "InvalidParameter"
	KindLogNotFound          Kind = "LogNotFound"
)

// Error is a rule violation with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrUserNotFound)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrParameterMissing     = &Error{Kind: KindParameterMissing}
	ErrIllegalColor         = &Error{Kind: KindIllegalColor}
	ErrUserAlreadyExists    = &Error{Kind: KindUserAlreadyExists}
	ErrNoUsersYet           = &Error{Kind: KindNoUsersYet}
	ErrUserNotFound         = &Error{Kind: KindUserNotFound}
	ErrUserCannotDeleteSelf = &Error{Kind: KindUserCannotDeleteSelf}
	ErrUserReferenced       = &Error{Kind: KindUserReferenced}
	ErrUsersReferenced      = &Error{Kind: KindUsersReferenced}
	ErrInvalidParameter     = &Error{Kind: KindInvalidParameter}
	ErrLogNotFound          = &Error{Kind: KindLogNotFound}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// InvalidIDFormat is returned by the transport layer for identifiers that are
// not integers.
func InvalidIDFormat(raw string) error {
	return newError(KindInvalidParameter, msgInvalidIDFormat, raw)
}

// ParameterNotPresent is returned by the transport layer when a required
// request parameter is missing.
func ParameterNotPresent(name string) error {
	return newError(KindInvalidParameter, msgParameterNotPresent, name)
}

// InvalidParameter wraps a free-form parameter problem.
func InvalidParameter(format string, args ...any) error {
	return newError(KindInvalidParameter, format, args...)
}
