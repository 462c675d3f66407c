package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
)

// genericFailureMessage is shown to users whenever a request fails server side.
const genericFailureMessage = "Sorry, something went wrong on my side. Please try again in a moment."

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps coded domain failures to transport errors.
func fromDomainError(err error) *HTTPError {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.CodeUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, "unauthorized", errMessage(err), err)
	case apperrors.CodeNotFound:
		return NewHTTPError(http.StatusNotFound, "not_found", errMessage(err), err)
	case apperrors.CodeStorage:
		return NewHTTPError(http.StatusServiceUnavailable, "storage_unavailable", "", err)
	case apperrors.CodeChat:
		return NewHTTPError(http.StatusBadGateway, "chat_failed", "", err)
	case apperrors.CodeParse:
		return NewHTTPError(http.StatusInternalServerError, "parse_failed", "", err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "", err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
