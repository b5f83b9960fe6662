package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/apierr"
)

// ErrorEnvelope is the flat error body: error carries the human-readable
// message, code and details sit beside it.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: msg,
		Code:  code,
	})
}

// RespondAPIError maps a service error to the response envelope. Anything that
// is not an *apierr.Error falls back to a plain 500.
func RespondAPIError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorEnvelope{
			Error:   apiErr.Error(),
			Code:    apiErr.Code,
			Details: apiErr.Details,
		})
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
