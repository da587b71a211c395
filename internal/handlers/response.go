package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"authsvc"
	"authsvc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes reported in errorDetails.errorCode.
const (
	codeValidation         = "VALIDATION_FAILED"
	codeInvalidBody        = "INVALID_BODY"
	codeUserExists         = "USER_EXISTS"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUserNotFound       = "USER_NOT_FOUND"
	codeInternal           = "INTERNAL_ERROR"

	msgInvalidBody        = "request body must be a JSON object"
	msgUserExists         = "user already exists"
	msgInvalidCredentials = "invalid username or password"
	msgUserNotFound       = "user not found"
	msgInternal           = "internal server error"
)

// writeError maps a service error onto status, code and a client-safe message.
// Internal and upstream failures are logged under logKey and never described to the client.
func (h *Handler) writeError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status, code, msg := classify(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", status}, kv...)
		if status >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(status, authsvc.Failure(code, msg))
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, service.ErrUserExists):
		return http.StatusBadRequest, codeUserExists, msgUserExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, codeInvalidCredentials, msgInvalidCredentials
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, codeInvalidToken, msgInvalidToken
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, codeUserNotFound, msgUserNotFound
	default:
		return http.StatusInternalServerError, codeInternal, msgInternal
	}
}

// bindJSONOrBadRequest binds the body into dst and writes a 400 envelope on failure.
// Missing required fields are reported by their JSON names.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		h.writeError(c, "bad_request_body", &service.ValidationError{Fields: fields})
	case errors.Is(err, io.EOF):
		h.writeError(c, "bad_request_body", &service.ValidationError{Fields: requiredFields(dst)})
	default:
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, authsvc.Failure(codeInvalidBody, msgInvalidBody))
	}
	return false
}

// requiredFields lists the JSON names of the fields a request type requires.
func requiredFields(dst any) []string {
	switch dst.(type) {
	case *registerRequest:
		return []string{"name", "age", "company", "username", "password"}
	case *loginRequest:
		return []string{"username", "password"}
	case *updateRequest:
		return []string{"name", "age", "company"}
	default:
		return nil
	}
}
