package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"edulink/internal/config"
	"edulink/internal/middleware"
)

func reporterEngine() *gin.Engine {
	middleware.InitRollbar(&config.RollbarConfig{Environment: "test"})

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Reporter())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) {
		middleware.ReportError(c, errors.New("db down"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestReporter_PanicStillRecovered(t *testing.T) {
	r := reporterEngine()

	for _, path := range []string{"/panic", "/fail", "/ok"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)

		assert.NotPanics(t, func() { r.ServeHTTP(w, req) }, path)
		if path == "/ok" {
			assert.Equal(t, http.StatusNoContent, w.Code)
		} else {
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		}
	}
}

func TestReportError_StoresError(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	err := errors.New("s3 timeout")

	middleware.ReportError(c, err)

	val, ok := c.Get(middleware.ContextKeyReportedError)
	assert.True(t, ok)
	assert.Equal(t, err, val)
}
