// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by the rules engines and the HTTP
layer.

An engine returns an [*AppError] of one of a small set of kinds. The HTTP layer
only reads HTTPStatus and serializes the error; it never inspects messages.

	NOT_FOUND         404  entity id unknown, or not associated with a movie
	CONFLICT          409  an actor or genre with that name already exists
	INVALID_STATE     400  delete of an actor or genre that movies still reference
	INVALID_ARGUMENT  400  value outside its allowed range (rating, page bounds)
	VALIDATION_ERROR  400  request body or query failed field rules

Anything unexpected becomes INTERNAL_ERROR and keeps its cause for logging.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeInvalidState:    http.StatusBadRequest,
	CodeInvalidArgument: http.StatusBadRequest,
	CodeValidation:      http.StatusBadRequest,
	CodeUnauthorized:    http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeRateLimited:     http.StatusTooManyRequests,
	CodeInternal:        http.StatusInternalServerError,
}

// AppError carries a client-safe message. Cause is logged server side and
// never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: statusByCode[code]}
}

// NotFound reports "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found")
}

// NotFoundf is NotFound with a caller supplied message.
//
//	apperr.NotFoundf("Actor with ID %d not found", id)
func NotFoundf(format string, args ...any) *AppError {
	return newError(CodeNotFound, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *AppError { return newError(CodeUnauthorized, message) }

func Forbidden(message string) *AppError { return newError(CodeForbidden, message) }

// Conflict reports a uniqueness violation.
func Conflict(message string) *AppError { return newError(CodeConflict, message) }

// InvalidState reports an operation refused because of stored data, such as a
// genre that movies still reference.
func InvalidState(message string) *AppError { return newError(CodeInvalidState, message) }

// InvalidArgument reports operation input outside its allowed range.
func InvalidArgument(message string) *AppError { return newError(CodeInvalidArgument, message) }

// ValidationError attaches per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(CodeValidation, message)
	err.Details = details
	return err
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var target *AppError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

func IsAppError(err error) bool { return As(err) != nil }

// HasCode reports whether err's chain holds an [*AppError] with code.
func HasCode(err error, code string) bool {
	if target := As(err); target != nil {
		return target.Code == code
	}
	return false
}
