// Package apperror defines the error taxonomy shared by all handlers and the
// single responder that turns an error into an HTTP response. Handlers never
// write error bodies themselves.
package apperror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidToken
	KindInvalidCredentials
	KindNotVerified
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindEmailDelivery
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func InvalidToken() *Error {
	return New(KindInvalidToken, "invalid token")
}

func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "invalid credentials")
}

func NotVerified() *Error {
	return New(KindNotVerified, "your account has not been verified")
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func EmailDelivery(message string, err error) *Error {
	return Wrap(KindEmailDelivery, message, err)
}

func (e *Error) status() int {
	switch e.Kind {
	case KindValidation, KindInvalidToken:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInvalidCredentials, KindNotVerified, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPErrorHandler is installed as Echo's HTTPErrorHandler. Every failure in
// the application funnels through here and becomes a uniform
// {"success": false, "error": "..."} body. Unexpected errors are logged
// server-side and reported as a bare internal error; stack traces and
// internals never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *Error
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.status()
		message = appErr.Message
		if appErr.Kind == KindInternal || appErr.Kind == KindEmailDelivery {
			logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("request failed")
		}
		if appErr.Kind == KindInternal {
			message = "internal server error"
		}
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
	default:
		logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("unhandled error")
	}

	if writeErr := c.JSON(status, errorBody{Success: false, Error: message}); writeErr != nil {
		logrus.WithError(writeErr).Error("failed to write error response")
	}
}
