package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope every failed request carries
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Message: message})
}

// respondValidationError maps a gin binding failure to the error envelope,
// extracting per-field details when the underlying error carries them.
func respondValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "Validation error", Details: details})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "Validation error"})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of the allowed values"
	default:
		return "is invalid"
	}
}
