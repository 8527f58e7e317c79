package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"home-address/address"
)

// Error is the response body of every failed request
type Error struct {
	Detail interface{} `json:"detail"`
}

// statusFor maps an error returned by a handler to a status code and body
func statusFor(err error) (int, Error) {
	var (
		validationErr *address.ValidationError
		conflictErr   *address.ConflictError
		notFoundErr   *address.NotFoundError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, Error{Detail: validationErr.Issues}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, Error{Detail: conflictErr.Error()}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, Error{Detail: notFoundErr.Error()}
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, Error{Detail: msg}
		}
		return httpErr.Code, Error{Detail: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, Error{Detail: http.StatusText(http.StatusInternalServerError)}
	}
}

// errorHandler writes handler errors as JSON; server errors are logged
func errorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("could not write error response")
		}
	}
}
