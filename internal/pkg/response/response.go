// Package response writes the JSON envelope every endpoint shares:
// {success:true, data} on the happy path, {success:false, error:{code,
// message, details?}} otherwise. Error codes come from the fixed taxonomy
// (VALIDATION_ERROR, UNAUTHORIZED, FORBIDDEN, NOT_FOUND, SLOT_TAKEN,
// INVALID_TRANSITION, EMAIL_EXISTS, INTERNAL_ERROR); messages are safe to
// show to users, anything beyond that is logged server-side only.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message},
	})
}

// ErrorWithDetails adds a details payload, typically the per-field map from
// pkg/validator.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message, Details: details},
	})
}
