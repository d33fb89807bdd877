// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"net/http"
	"runtime"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound indicates that no record has the requested identifier.
// Message is specific to the kind of record, e.g. "Goal not found".
type ErrNotFound struct {
	Message string
}

func (e ErrNotFound) Error() string {
	return e.Message
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrValidation is returned when a request is well-formed but its
// contents are not acceptable: an identifier that is not a UUID, or a
// payload field that is missing, null, or of the wrong type.
type ErrValidation struct {
	// Field names the offending field or path parameter, if any.
	Field string

	// Message describes the problem.
	Message string
}

func (e ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// HTTPStatus returns a fixed 422 Unprocessable Entity status code.
func (e ErrValidation) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// ErrInsertFailed is returned when the store accepted an insert
// without error but reported no inserted row.
type ErrInsertFailed struct{}

func (e ErrInsertFailed) Error() string {
	return "Insert failed"
}

// HTTPStatus returns a fixed 500 Internal Server Error status code.
func (e ErrInsertFailed) HTTPStatus() int {
	return http.StatusInternalServerError
}

// ErrUpstream wraps a failure of the underlying store, or a record
// from it that could not be normalized.
type ErrUpstream struct {
	Err error
}

func (e ErrUpstream) Error() string {
	return e.Err.Error()
}

// Cause returns the wrapped error.
func (e ErrUpstream) Cause() error {
	return e.Err
}

// HTTPStatus returns a fixed 502 Bad Gateway status code.
func (e ErrUpstream) HTTPStatus() int {
	return http.StatusBadGateway
}

// FromError populates an ErrorResponse based on an error value.
func (e *ErrorResponse) FromError(err error) {
	e.Detail = err.Error()
}

// FromPanic populates an error response based on a panic, and returns
// the stack trace of the panicking goroutine for logging.  Typical use
// is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             stack := resp.FromPanic(obj)
//             // log stack, write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) string {
	if recoveredError, isError := obj.(error); isError {
		e.Detail = "panic: " + recoveredError.Error()
	} else {
		e.Detail = fmt.Sprintf("panic: %+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	return string(stack[:len])
}
