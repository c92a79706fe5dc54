package errhandler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// Renderer turns a throwable raised during request handling into an HTTP
// response.
type Renderer interface {
	Render(c *gin.Context, err error, debug bool)
}

// JSONRenderer is the default renderer: a sonic-encoded error body.
// Debug mode includes the error detail, production mode a generic body.
type JSONRenderer struct{}

// NewJSONRenderer creates the default JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render writes the error as an application/json response.
func (r *JSONRenderer) Render(c *gin.Context, err error, debug bool) {
	payload := map[string]any{
		"error": "internal server error",
	}
	if debug && err != nil {
		payload["error"] = err.Error()
	}

	body, marshalErr := sonic.Marshal(payload)
	if marshalErr != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		c.Abort()
		return
	}

	c.Data(http.StatusInternalServerError, "application/json; charset=utf-8", body)
	c.Abort()
}

// FallbackRenderer backs the reserve handler during the pre-compile boot
// window, when no container services are available. Plain text, no
// dependencies.
type FallbackRenderer struct{}

// NewFallbackRenderer creates the reserve renderer.
func NewFallbackRenderer() *FallbackRenderer {
	return &FallbackRenderer{}
}

// Render writes the error as a text/plain response.
func (r *FallbackRenderer) Render(c *gin.Context, err error, debug bool) {
	if debug && err != nil {
		c.String(http.StatusInternalServerError, "boot error: %v", err)
	} else {
		c.String(http.StatusInternalServerError, "internal server error")
	}
	c.Abort()
}
