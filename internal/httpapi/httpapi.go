// Package httpapi defines the tagged error type shared by all components and
// the single place where errors become wire responses.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dpytaylo/simple-messenger/internal/logger"
)

// Client-facing error kinds shared across components. Component-specific
// kinds live next to the errors that carry them.
const (
	KindValidation      = "ValidationError"
	KindInternal        = "InternalServerError"
	KindUnauthenticated = "Unauthenticated"
)

// Error carries an HTTP status and a client-safe kind alongside the real
// server-side error. The wrapped error is logged, never sent to clients.
type Error struct {
	Status int
	Kind   string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(kind string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: kind, Err: err}
}

// Internal wraps an upstream/dependency failure. The client only ever sees
// the generic kind plus a correlation id.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindInternal, Err: err}
}

var ErrUnauthenticated = &Error{
	Status: http.StatusUnauthorized,
	Kind:   KindUnauthenticated,
	Err:    errors.New("authentication required"),
}

type errorBody struct {
	Kind string `json:"kind"`
	UUID string `json:"uuid,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Respond converts any error into the wire response and aborts the request.
//
// 4xx responses carry only the kind, so that responses which must be
// indistinguishable (e.g. unknown email vs. wrong password) stay
// byte-identical. 5xx responses add a fresh correlation id that is logged
// together with the full error detail.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}

	if apiErr.Status >= http.StatusInternalServerError {
		id := uuid.New().String()
		logger.Error("request failed",
			"status", apiErr.Status,
			"uuid", id,
			"error", apiErr.Error(),
		)
		c.AbortWithStatusJSON(apiErr.Status, errorResponse{
			Error: errorBody{Kind: apiErr.Kind, UUID: id},
		})
		return
	}

	logger.Info("request rejected",
		"status", apiErr.Status,
		"kind", apiErr.Kind,
		"detail", apiErr.Error(),
	)
	c.AbortWithStatusJSON(apiErr.Status, errorResponse{
		Error: errorBody{Kind: apiErr.Kind},
	})
}
