package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/oracai/pkg/domain"
)

type JSONResponseWriter struct{}

func (j *JSONResponseWriter) WriteSuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func (j *JSONResponseWriter) WriteErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// WriteError maps err onto a status code and a user-facing message.
func (j *JSONResponseWriter) WriteError(c *gin.Context, err error) {
	status, message := Describe(err)
	_ = c.Error(err)
	j.WriteErrorResponse(c, status, message)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Describe classifies an error returned by a mode handler.
func Describe(err error) (int, string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "⚠️ " + validationErr.Message
	}

	var generationErr *domain.GenerationError
	if errors.As(err, &generationErr) {
		return http.StatusBadGateway, generationErr.UserMessage()
	}

	return http.StatusInternalServerError, "❌ Something went wrong. Please try again."
}
