package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var (
	ErrUnauthorized = New(http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
	ErrForbidden    = New(http.StatusForbidden, "forbidden", errors.New("forbidden"))
	ErrNotOwner     = New(http.StatusForbidden, "not_owner", errors.New("account is not an owner"))
)
