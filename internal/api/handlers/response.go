package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unisave/unisave/internal/utils"
)

// includeDetails toggles raw diagnostic detail in error bodies; main
// disables it in production.
var includeDetails = true

func SetErrorDetail(enabled bool) {
	includeDetails = enabled
}

// errorResponse writes the uniform failure envelope. The body always
// carries success:false and a machine-readable code; a bare 5xx with no
// body never leaves this service.
func errorResponse(c *gin.Context, appErr *utils.AppError) {
	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if includeDetails && len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, gin.H{
		"success":    false,
		"error":      body,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// errorResponseFromErr maps any error to the envelope, downgrading
// untyped errors to a generic server error.
func errorResponseFromErr(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		errorResponse(c, appErr)
		return
	}
	errorResponse(c, utils.NewInternalError())
}
