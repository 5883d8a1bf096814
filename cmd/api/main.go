package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/config"
	"github.com/justsurfingit/HireNest/internal/database"
	"github.com/justsurfingit/HireNest/internal/handlers"
	"github.com/justsurfingit/HireNest/internal/logger"
	"github.com/justsurfingit/HireNest/internal/services"
	"github.com/justsurfingit/HireNest/internal/storage"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zl, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database connection
	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	// 3. Resume storage
	store, closeStore, err := newResumeStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Optional integrations: Gmail for outgoing mail, Gemini for
	// extraction and recommendation reasons.
	var mailer services.Mailer
	if gmailSvc := newGmailService(ctx, cfg, zl); gmailSvc != nil {
		mailer = services.NewGmailMailer(gmailSvc, zl)
	}

	var (
		extractor handlers.JobExtractor
		explainer services.MatchExplainer
	)
	llm, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, zl)
	if err != nil {
		zl.Warn("LLM features disabled", zap.Error(err))
	} else {
		extractor, explainer = llm, llm
	}

	// 5. Services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	recommendations := services.NewRecommendationService(db, explainer, zl)
	if err := recommendations.Start(cfg.RecommendationSchedule); err != nil {
		return err
	}
	defer recommendations.Stop()

	h := &handlers.Handlers{
		Auth:            handlers.NewAuthHandler(services.NewAuthService(db, tokens, zl), zl),
		Jobs:            handlers.NewJobHandler(extractor, services.NewJobService(db, store, zl), zl),
		Applications:    handlers.NewApplicationHandler(services.NewApplicationService(db, store, zl), store.MaxBytes(), zl),
		Employers:       handlers.NewEmployerHandler(services.NewEmployerService(db, zl), zl),
		JobSeekers:      handlers.NewJobSeekerHandler(services.NewJobSeekerService(db, store, zl), store.MaxBytes(), zl),
		Recommendations: handlers.NewRecommendationHandler(recommendations, zl),
		Mail:            handlers.NewMailHandler(services.NewMailService(mailer, cfg.MailUser, zl), zl),
	}

	// 6. Router and server
	router := handlers.NewRouter(handlers.RouterConfig{
		FrontendURL:    cfg.FrontendURL,
		UploadDir:      cfg.UploadDir,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, h, tokens, zl)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Server starting",
			zap.Int("port", cfg.Port),
			zap.String("base_url", cfg.BaseURL),
			zap.String("storage", store.PrimaryName()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newResumeStore builds the upload-with-fallback store for the configured
// primary backend. A primary that cannot be created at startup leaves the
// local directory as the only store. The returned func releases the primary.
func newResumeStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*storage.Store, func(), error) {
	local := storage.NewLocalBackend(cfg.UploadDir, cfg.BaseURL)
	opts := []storage.Option{
		storage.WithMaxBytes(cfg.MaxResumeBytes),
		storage.WithLocalBackup(cfg.KeepLocalBackup),
	}

	var (
		primary storage.Backend
		err     error
	)
	switch cfg.StorageBackend {
	case config.BackendDrive:
		primary, err = storage.NewDriveBackend(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
	case config.BackendGCS:
		primary, err = storage.NewGCSBackend(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	}
	closeStore := func() {}
	if err != nil {
		zl.Warn("Primary resume storage unavailable, using local storage only",
			zap.String("backend", cfg.StorageBackend),
			zap.Error(err))
	} else if primary != nil {
		opts = append(opts, storage.WithPrimary(primary))
		closeStore = closerFor(primary, zl)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("create upload dir: %w", err)
	}
	return storage.NewStore(local, zl, opts...), closeStore, nil
}

// closerFor returns a func that closes b when it holds a client, such as
// the GCS backend.
func closerFor(b storage.Backend, zl *zap.Logger) func() {
	c, ok := b.(io.Closer)
	if !ok {
		return func() {}
	}
	return func() {
		if err := c.Close(); err != nil {
			zl.Warn("Failed to close resume storage", zap.String("backend", b.Name()), zap.Error(err))
		}
	}
}

// newGmailService returns nil when no token has been authorized yet; run
// cmd/gmailauth once to create it.
func newGmailService(ctx context.Context, cfg *config.Config, zl *zap.Logger) *gmail.Service {
	if cfg.MailUser == "" {
		zl.Warn("MAIL_USER not set, email routes disabled")
		return nil
	}
	httpClient, err := auth.GmailClient(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile)
	if err != nil {
		zl.Warn("Gmail client unavailable, email routes disabled", zap.Error(err))
		return nil
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		zl.Warn("Failed to create Gmail service", zap.Error(err))
		return nil
	}
	zl.Info("Gmail service connected")
	return svc
}
