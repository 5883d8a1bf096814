package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMailRoutes(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	for _, prefix := range []string{"/api/send-email", "/api/email"} {
		w := s.do(t, http.MethodPost, prefix, map[string]string{"to": "asha@example.com", "subject": "Shortlisted", "text": "Congrats"})
		requireStatus(t, http.StatusOK, w)
		assert.Equal(t, "Email sent successfully", decode(t, w)["message"])

		w = s.do(t, http.MethodPost, prefix+"/contact", map[string]string{"name": "Ravi", "email": "ravi@example.com", "message": "Hello"})
		requireStatus(t, http.StatusOK, w)
	}
	require.Len(t, s.mailer.sent, 4)
	assert.Equal(t, "ravi@example.com", s.mailer.sent[1].ReplyTo)

	w := s.do(t, http.MethodPost, "/api/email/contact", map[string]string{"name": "Ravi"})
	requireStatus(t, http.StatusBadRequest, w)

	s.mailer.err = errors.New("gmail down")
	w = s.do(t, http.MethodPost, "/api/email", map[string]string{"to": "asha@example.com", "subject": "Hi"})
	requireStatus(t, http.StatusInternalServerError, w)
	assert.Equal(t, map[string]any{"message": "Failed to send email"}, decode(t, w))
}

func TestRecommendationRoutes(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	user := seedUser(t, s.db, "Asha Rao", "asha@example.com", models.RoleJobSeeker)
	seedSeeker(t, s.db, user.ID)
	seedJob(t, s.db, "emp-1", "Go Engineer")

	w := s.do(t, http.MethodGet, "/api/recommendation/"+user.ID, nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.Equal(t, "No recommendations found for this user.", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/recommendation/"+user.ID+"/refresh", nil)
	requireStatus(t, http.StatusOK, w)

	w = s.do(t, http.MethodGet, "/api/recommendation/"+user.ID, nil)
	requireStatus(t, http.StatusOK, w)
	view := decode(t, w)
	assert.Equal(t, user.ID, view["jobSeekerId"])
	jobs := view["recommendedJobs"].([]any)
	require.Len(t, jobs, 1)
	job := jobs[0].(map[string]any)["jobId"].(map[string]any)
	assert.Equal(t, "Go Engineer", job["title"])
}

func TestRouterSurface(t *testing.T) {
	s := newTestServer(t, RouterConfig{FrontendURL: "https://hirenest.test"})

	w := s.do(t, http.MethodGet, "/", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `<a href="https://hirenest.test">`)

	w = s.do(t, http.MethodGet, "/api/health", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/metrics", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), "hirenest_http_requests_total")

	w = s.do(t, http.MethodGet, "/api/nothing-here", nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.Equal(t, "Page not found", w.Body.String())

	s.router.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	w = s.do(t, http.MethodGet, "/boom", nil)
	requireStatus(t, http.StatusInternalServerError, w)
	assert.Equal(t, "Something broke!", w.Body.String())

	w = s.do(t, http.MethodOptions, "/api/jobs", nil,
		"Origin", "https://hirenest.test",
		"Access-Control-Request-Method", "POST")
	assert.Equal(t, "https://hirenest.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRateLimitOnLogin(t *testing.T) {
	s := newTestServer(t, RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: 2})
	creds := map[string]string{"email": "nobody@example.com", "password": "secret1"}

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/api/login", creds)
		requireStatus(t, http.StatusUnauthorized, w)
	}
	w := s.do(t, http.MethodPost, "/api/login", creds)
	requireStatus(t, http.StatusTooManyRequests, w)

	// Routes without the limiter are unaffected.
	w = s.do(t, http.MethodGet, "/api/health", nil)
	requireStatus(t, http.StatusOK, w)
}

func TestRateLimiterKeysByClientIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, zap.NewNop())
	r := gin.New()
	r.GET("/", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:2222"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1111"))
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(" https://a.test/ ,https://b.test")
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)

	open := corsConfig("")
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)
	require.NoError(t, open.Validate())
}
