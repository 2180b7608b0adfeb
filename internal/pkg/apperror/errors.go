// Package apperror carries the HTTP status and error payload of a failure
// from the point it is detected up to the echo handler.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Parameter names the field or value an error is about
type Parameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Error is one entry of a validation error list
type Error struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// HTTPError is an error with its response status. Validation failures carry
// Errors, operational ones only Message.
type HTTPError struct {
	Status  int
	Errors  []Error
	Message string
	cause   error
}

func (e *HTTPError) Error() string {
	if len(e.Errors) == 0 {
		if e.cause != nil {
			return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.cause)
		}
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, er := range e.Errors {
		msgs = append(msgs, er.Code+": "+er.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, strings.Join(msgs, "; "))
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

// FirstCode returns the code of the first validation error, or ""
func (e *HTTPError) FirstCode() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// Param builds a Parameter
func Param(key, value string) Parameter {
	return Parameter{Key: key, Value: value}
}

// New builds a validation style error with one entry
func New(status int, code Code, params ...Parameter) *HTTPError {
	return &HTTPError{
		Status:  status,
		Errors:  []Error{{Code: code.Code, Message: code.Message, Parameters: params}},
		Message: code.Message,
	}
}

// BadRequest is a 400 business rule violation
func BadRequest(code Code, params ...Parameter) *HTTPError {
	return New(http.StatusBadRequest, code, params...)
}

// Unprocessable is a 422 structural validation failure
func Unprocessable(code Code, params ...Parameter) *HTTPError {
	return New(http.StatusUnprocessableEntity, code, params...)
}

// FieldRequired is the 422 returned when a mandatory field is missing
func FieldRequired(field string) *HTTPError {
	return Unprocessable(CodeFieldRequired, Param(field, "null"))
}

// NotFound is a 404
func NotFound(code Code, params ...Parameter) *HTTPError {
	return New(http.StatusNotFound, code, params...)
}

// Conflict is a 409 optimistic locking failure
func Conflict(code Code, params ...Parameter) *HTTPError {
	return New(http.StatusConflict, code, params...)
}

// Internal is a 500 operational error, cause is kept for logs only
func Internal(message string, cause error) *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// InternalCode is a 500 that still reports a code, e.g. a missing budget
func InternalCode(code Code, params ...Parameter) *HTTPError {
	return New(http.StatusInternalServerError, code, params...)
}

// NotImplemented is the 500 returned for accepted but unimplemented operations
func NotImplemented(operation string) *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Message: operation + ": not implemented"}
}

// Join merges several validation errors with the same status into one
func Join(errs ...*HTTPError) *HTTPError {
	var out *HTTPError
	for _, e := range errs {
		if e == nil {
			continue
		}
		if out == nil {
			c := *e
			c.Errors = append([]Error{}, e.Errors...)
			out = &c
			continue
		}
		out.Errors = append(out.Errors, e.Errors...)
	}
	return out
}

// As extracts the HTTPError from err
func As(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// StatusOf returns the HTTP status of err, 500 for unknown errors
func StatusOf(err error) int {
	if he, ok := As(err); ok {
		return he.Status
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries the given code
func HasCode(err error, code Code) bool {
	he, ok := As(err)
	if !ok {
		return false
	}
	for _, e := range he.Errors {
		if e.Code == code.Code && (code.Code != "-1" || e.Message == code.Message) {
			return true
		}
	}
	return false
}
