package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errNotAuthorized      = errors.New("not authorized")
)

const (
	projectNotFoundMessage = "Project not found"
	taskNotFoundMessage    = "Task not found"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newInternalError(message string) apiError {
	return newAPIError(http.StatusInternalServerError, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// toAPIError maps a service failure to a response. Only not-found and
// authentication failures get their own status; validation, duplicate
// and store failures are all reported as 500 with the error text.
func toAPIError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return newNotFoundError(projectNotFoundMessage)
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(taskNotFoundMessage)
	case errors.Is(err, services.ErrInvalidCredentials):
		return newUnauthorizedError(services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUserNotFound):
		return newUnauthorizedError(errNotAuthorized.Error())
	default:
		return newInternalError(err.Error())
	}
}
