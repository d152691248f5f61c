package common

import "fmt"

// Error pairs an error with the stable code reported to API callers.
type Error struct {
	Err  error  `json:"-"`
	Code string `json:"code"`
}

func NewError(err error, code string) *Error {
	return &Error{
		Err:  err,
		Code: code,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) String() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Error())
}
