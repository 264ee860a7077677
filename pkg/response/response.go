package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/qrstash/qrstash/pkg/errors"
)

// ErrorBody is the envelope every failed request serialises to.
type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error writes a JSON error response derived from an AppError.
//
// Unknown errors render as a generic 500; internal details are never sent
// to clients.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorBody{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// Created writes the 201 envelope returned by record creation.
func Created(c *gin.Context, body gin.H) {
	payload := gin.H{"success": true}
	for k, v := range body {
		payload[k] = v
	}
	c.JSON(http.StatusCreated, payload)
}
