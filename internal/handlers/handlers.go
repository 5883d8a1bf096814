// Package handlers exposes the services over HTTP with gin. Routes keep the
// body shapes the web client already depends on: most failures are
// {"message": ...}, while auth and application submissions use
// {"error": ..., "details": ...}.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/storage"
	"go.uber.org/zap"
)

// HealthCheck is GET /api/health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// respondMessage writes err as {"message": ...}. Server-side failures are
// logged and never expose the cause.
func respondMessage(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"message": internalMessage(err)})
		return
	}
	c.JSON(status, gin.H{"message": apperr.MessageOf(err)})
}

// respondError writes err as {"error": ...}; server-side failures add the
// cause under "details".
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": internalMessage(err), "details": details(err)})
		return
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}

// respondLookup is used by read and update routes of resources whose create
// routes use respondError: client errors carry "message", server errors
// carry "error" and "details".
func respondLookup(c *gin.Context, logger *zap.Logger, err error) {
	if apperr.StatusOf(err) >= http.StatusInternalServerError {
		respondError(c, logger, err)
		return
	}
	respondMessage(c, logger, err)
}

func internalMessage(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server error"
}

func details(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}

// resumeFromForm reads the optional "resume" part. It returns nil when the
// request carries no file.
func resumeFromForm(c *gin.Context, limit int64) (*storage.File, error) {
	fh, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.BadRequest("Invalid resume upload").Wrap(err)
	}

	f, err := storage.ReadMultipart(fh, limit)
	if err != nil {
		if storage.IsValidationError(err) {
			return nil, apperr.BadRequest(err.Error()).Wrap(err)
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &f, nil
}
