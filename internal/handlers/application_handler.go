package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/services"
	"go.uber.org/zap"
)

// ApplicationHandler serves /api/applications.
type ApplicationHandler struct {
	Applications   *services.ApplicationService
	MaxResumeBytes int64
	Logger         *zap.Logger
}

func NewApplicationHandler(a *services.ApplicationService, maxResumeBytes int64, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{Applications: a, MaxResumeBytes: maxResumeBytes, Logger: logger}
}

// Submit is POST /api/applications. The body is either JSON or a multipart
// form with an optional "resume" file part.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dtos.ApplicationRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
			return
		}
		resume, err := resumeFromForm(c, h.MaxResumeBytes)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		req.Resume = resume
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	app, err := h.Applications.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// QuickApply is POST /api/applications/quick-apply (multipart only).
func (h *ApplicationHandler) QuickApply(c *gin.Context) {
	var req dtos.QuickApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	if isMultipart(c) {
		resume, err := resumeFromForm(c, h.MaxResumeBytes)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		req.Resume = resume
	}

	app, err := h.Applications.QuickApply(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Quick application submitted successfully",
		"application": app,
	})
}

// ListForJob is GET /api/applications/:id where id is a job id.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.Applications.ListForJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLookup(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ListForEmployer is GET /api/applications?postedBy=.
func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	apps, err := h.Applications.ListForEmployer(c.Request.Context(), c.Query("postedBy"))
	if err != nil {
		respondLookup(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status value"})
		return
	}
	app, err := h.Applications.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondLookup(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Status updated successfully",
		"application": app,
	})
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.Applications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondLookup(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

func (h *ApplicationHandler) ApplicantSuggestions(c *gin.Context) {
	var q dtos.SuggestionQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.Applications.ApplicantSuggestions(c.Request.Context(), q)
	if err != nil {
		h.suggestionError(c, "Failed to fetch applicant suggestions", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) JobSuggestions(c *gin.Context) {
	var q dtos.SuggestionQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.Applications.JobSuggestions(c.Request.Context(), q)
	if err != nil {
		h.suggestionError(c, "Failed to fetch job title suggestions", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) LocationSuggestions(c *gin.Context) {
	var q dtos.SuggestionQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.Applications.LocationSuggestions(c.Request.Context(), q)
	if err != nil {
		h.suggestionError(c, "Failed to fetch location suggestions", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) suggestionError(c *gin.Context, msg string, err error) {
	h.Logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": details(err)})
}
