package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/metrics"
	"go.uber.org/zap"
)

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	FrontendURL    string
	UploadDir      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handlers groups the per-resource handlers the router mounts.
type Handlers struct {
	Auth            *AuthHandler
	Jobs            *JobHandler
	Applications    *ApplicationHandler
	Employers       *EmployerHandler
	JobSeekers      *JobSeekerHandler
	Recommendations *RecommendationHandler
	Mail            *MailHandler
}

const welcomePage = `<html>
<head>
  <title>HireNest API</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; margin-top: 50px; }
    h1 { color: #333; }
    p { font-size: 18px; }
  </style>
</head>
<body>
  <h1>Welcome to HireNest API</h1>
  <p>API is running successfully!</p>
  <p>Visit our <a href="%s">frontend application</a>.</p>
</body>
</html>
`

func NewRouter(cfg RouterConfig, h *Handlers, tokens *auth.TokenIssuer, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("Panic while handling request",
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", recovered))
			c.String(http.StatusInternalServerError, "Something broke!")
		}),
		RequestLogger(logger),
		Metrics(),
		cors.New(corsConfig(cfg.FrontendURL)),
	)

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger).Handler()

	r.GET("/", func(c *gin.Context) {
		page := fmt.Sprintf(welcomePage, html.EscapeString(cfg.FrontendURL))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.POST("/signup", limiter, h.Auth.Signup)
		api.POST("/login", limiter, h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)
		api.GET("/protected", VerifyToken(tokens, logger), h.Auth.Protected)

		jobs := api.Group("/jobs")
		jobs.POST("", h.Jobs.CreateJob)
		jobs.GET("", h.Jobs.ListJobs)
		jobs.POST("/extract", h.Jobs.ParseJob)
		jobs.GET("/:id", h.Jobs.GetJob)
		jobs.PUT("/:id", h.Jobs.UpdateJob)
		jobs.DELETE("/:id", h.Jobs.DeleteJob)

		apps := api.Group("/applications")
		apps.POST("", h.Applications.Submit)
		apps.POST("/quick-apply", h.Applications.QuickApply)
		apps.GET("", h.Applications.ListForEmployer)
		apps.GET("/suggestions/applicants", h.Applications.ApplicantSuggestions)
		apps.GET("/suggestions/jobs", h.Applications.JobSuggestions)
		apps.GET("/suggestions/locations", h.Applications.LocationSuggestions)
		apps.GET("/:id", h.Applications.ListForJob)
		apps.PATCH("/:id", h.Applications.UpdateStatus)
		apps.DELETE("/:id", h.Applications.Delete)

		employers := api.Group("/employerprofile")
		employers.POST("", h.Employers.Create)
		employers.GET("", h.Employers.List)
		employers.GET("/:userId", h.Employers.GetByUser)
		employers.PUT("/:id", h.Employers.Update)
		employers.DELETE("/:id", h.Employers.Delete)

		seekers := api.Group("/jobseekers")
		seekers.POST("", h.JobSeekers.Create)
		seekers.GET("/:userId", h.JobSeekers.GetByUser)
		seekers.PUT("/:userId", h.JobSeekers.Update)

		recs := api.Group("/recommendation")
		recs.GET("/:userId", h.Recommendations.Get)
		recs.POST("/:userId/refresh", h.Recommendations.Refresh)

		for _, prefix := range []string{"/send-email", "/email"} {
			mail := api.Group(prefix, limiter)
			mail.POST("", h.Mail.Send)
			mail.POST("/contact", h.Mail.Contact)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Page not found")
	})
	return r
}

// corsConfig allows the comma-separated FRONTEND_URL origins with
// credentials, or any origin without credentials when none is set.
func corsConfig(frontendURL string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, strings.TrimSuffix(origin, "/"))
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowCredentials = true
	return cfg
}
