package response

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
)

// Envelope represents the versioned API response contract.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// MessageBody is the plain body used by the legacy routes.
type MessageBody struct {
	Message string `json:"message"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Error sends an enveloped error response.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	if appErr.Retryable() {
		c.Header("Retry-After", "5")
	}
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}

// Legacy writes a bare JSON payload without the envelope.
func Legacy(c *gin.Context, status int, payload interface{}) {
	noStore(c)
	c.JSON(status, payload)
}

// Message writes {"message": msg}.
func Message(c *gin.Context, status int, msg string) {
	Legacy(c, status, MessageBody{Message: msg})
}

// LegacyError writes the error as {"message": ...} with its mapped status.
// Errors without a mapping answer 500 with a generic message; the original is
// kept on c.Errors for the access log.
func LegacyError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	if appErr.Retryable() {
		c.Header("Retry-After", "5")
	}
	c.AbortWithStatusJSON(appErr.Status, MessageBody{Message: appErr.Message})
}
