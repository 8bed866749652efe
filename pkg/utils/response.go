package utils

import (
	"errors"
	"net/http"

	"delit-api/internal/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse sends a success JSON response for a newly created resource
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// HandleError translates err into the error envelope. Internal errors are
// logged with the request id and answered with a generic message.
func HandleError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		status = http.StatusRequestEntityTooLarge
		ErrorResponse(c, status, "request body too large")
		return
	}

	if kind == apperror.KindInternal {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	ErrorResponse(c, status, apperror.Message(err))
}

// BindError wraps a request binding failure as a validation error
func BindError(err error) error {
	return &apperror.Error{Kind: apperror.KindValidation, Message: "invalid request: " + err.Error(), Err: err}
}
