package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/services"
	"go.uber.org/zap"
)

// JobExtractor turns a pasted job posting into job JSON.
type JobExtractor interface {
	ExtractJobDetails(ctx context.Context, rawHTML string) (string, error)
}

// JobHandler serves /api/jobs. Extractor is nil when no LLM is configured.
type JobHandler struct {
	Extractor  JobExtractor
	JobService *services.JobService
	Logger     *zap.Logger
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(extractor JobExtractor, j *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		Extractor:  extractor,
		JobService: j,
		Logger:     logger,
	}
}

// ParseJob is the POST /api/jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	if h.Extractor == nil {
		respondError(c, h.Logger, apperr.Unavailable("Job extraction is not configured"))
		return
	}

	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	extractedJSON, err := h.Extractor.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		h.Logger.Error("Job extraction failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}

	// RawMessage keeps the model's JSON from being re-escaped as a string.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extractedJSON),
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Jobs Posted successfully!", "job": job})
}

// ListJobs is GET /api/jobs?offset&limit&search&location&postedBy.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters"})
		return
	}
	resp, err := h.JobService.ListJobs(c.Request.Context(), q)
	if err != nil {
		h.Logger.Error("Failed to fetch jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
