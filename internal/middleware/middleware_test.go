package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"PhraseAudioService/internal/logger"
	"PhraseAudioService/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"pong": true}) })
	return r
}

func doGet(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerClient(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(0.001, 2))

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1000").Code)

	w := doGet(r, "10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"description":"Too Many Requests"}`, w.Body.String())

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.2:1000").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(0, 1))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1000").Code)
	}
}

func TestRequestLogRecordsMetrics(t *testing.T) {
	r := newTestRouter(RequestLogMiddleware(logger.Nop()))
	counter := metrics.HTTPRequests.WithLabelValues("GET", "/ping", "200")
	before := testutil.ToFloat64(counter)

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1000").Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
