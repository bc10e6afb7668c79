package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/middleware"
	"github.com/prefeitura-rio/app-contacts/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidImportConfig),
		errors.Is(err, models.ErrNoRows),
		errors.Is(err, models.ErrTooManyRows),
		errors.Is(err, models.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrScopeNotPermitted),
		errors.Is(err, models.ErrPresetReadOnly):
		return http.StatusForbidden
	case errors.Is(err, models.ErrGroupNotFound),
		errors.Is(err, models.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConfigNameExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the mapped status. Internal errors are not echoed.
func writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// currentUser returns the caller's id and admin flag, writing a 401 when
// the request carries no claims
func currentUser(c *gin.Context) (string, bool, bool) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false, false
	}
	isAdmin, _ := middleware.IsAdmin(c)
	return userID, isAdmin, true
}
