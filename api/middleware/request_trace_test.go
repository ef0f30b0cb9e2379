package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"wiki-summary/trace"
)

func newEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTrace())
	r.POST("/echo", handler)
	return r
}

func TestRequestTraceGeneratesRequestID(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) {
		seen = trace.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(headerRequestID))
	assert.Equal(t, "0", w.Header().Get(headerSpanID))
}

func TestRequestTraceKeepsIncomingIDAndBody(t *testing.T) {
	var body string
	r := newEngine(func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		body = string(b)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"url":"https://en.wikipedia.org/wiki/Cat"}`))
	req.Header.Set(headerRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(headerRequestID))
	assert.Equal(t, `{"url":"https://en.wikipedia.org/wiki/Cat"}`, body)
}
