package middleware

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newRateLimitedRouter(rps float64, burst int) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("too_many_requests.html").Parse(
		`<h1>{{.Title}}</h1>`,
	)))

	rl := NewRateLimiter(rate.Limit(rps), burst)
	r.GET("/limited", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := newRateLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_RejectsBeyondBurstWithHTMLPage(t *testing.T) {
	r := newRateLimitedRouter(0.01, 1)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req2.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(second, req2)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, second.Body.String(), "Too Many Requests")
}

func TestRateLimiter_TracksClientsIndependently(t *testing.T) {
	r := newRateLimitedRouter(0.01, 1)

	for _, addr := range []string{"10.0.0.3:1", "10.0.0.4:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "first request from %s", addr)
	}
}
