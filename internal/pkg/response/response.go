package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 JSON response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Binary sends raw bytes with the given content type. Content-Length is
// derived from the payload.
func Binary(c *gin.Context, contentType string, data []byte) {
	if contentType == "" {
		contentType = "image/png"
	}
	c.Data(http.StatusOK, contentType, data)
}

// BadRequest sends a 400 error response. Input errors never reach upstream.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// InternalError sends a 500 error response without upstream details.
func InternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
}

// UpstreamError sends a 500 error echoing the raw provider payload so the
// caller can diagnose auth/rate-limit/transport failures.
func UpstreamError(c *gin.Context, message string, details interface{}) {
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// Loading sends a 503 with a retry hint for a model that is still warming
// up. estimatedTime is seconds as reported by the provider, 0 when unknown.
func Loading(c *gin.Context, message string, estimatedTime float64) {
	body := gin.H{"error": message, "status": "loading"}
	if estimatedTime > 0 {
		body["estimated_time"] = estimatedTime
	}
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, body)
}
