package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/services"
	"go.uber.org/zap"
)

type EmployerHandler struct {
	Employers *services.EmployerService
	Logger    *zap.Logger
}

func NewEmployerHandler(e *services.EmployerService, logger *zap.Logger) *EmployerHandler {
	return &EmployerHandler{Employers: e, Logger: logger}
}

func (h *EmployerHandler) Create(c *gin.Context) {
	var req dtos.EmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	profile, err := h.Employers.Create(c.Request.Context(), req)
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employer Profile created successfully!", "profile": profile})
}

func (h *EmployerHandler) List(c *gin.Context) {
	profiles, err := h.Employers.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to fetch employer profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch employer profiles"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetByUser is GET /api/employerprofile/:userId.
func (h *EmployerHandler) GetByUser(c *gin.Context) {
	profile, err := h.Employers.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *EmployerHandler) Update(c *gin.Context) {
	var req dtos.EmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	profile, err := h.Employers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employer Profile updated successfully", "profile": profile})
}

func (h *EmployerHandler) Delete(c *gin.Context) {
	if err := h.Employers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employer Profile deleted successfully"})
}

// seekerJSONFields are the profile fields clients send as JSON text.
var seekerJSONFields = []string{"skills", "experience", "education", "jobPreferences"}

type JobSeekerHandler struct {
	JobSeekers     *services.JobSeekerService
	MaxResumeBytes int64
	Logger         *zap.Logger
}

func NewJobSeekerHandler(s *services.JobSeekerService, maxResumeBytes int64, logger *zap.Logger) *JobSeekerHandler {
	return &JobSeekerHandler{JobSeekers: s, MaxResumeBytes: maxResumeBytes, Logger: logger}
}

// Create is POST /api/jobseekers (multipart). A resume that cannot be read
// is dropped and the profile is still created.
func (h *JobSeekerHandler) Create(c *gin.Context) {
	var form dtos.JobSeekerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}
	if isMultipart(c) {
		resume, err := resumeFromForm(c, h.MaxResumeBytes)
		if err != nil {
			h.Logger.Warn("Ignoring unreadable resume", zap.String("user_id", form.User), zap.Error(err))
		}
		form.Resume = resume
	}

	if _, err := h.JobSeekers.Create(c.Request.Context(), form); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Your Profile is Created at this Job Board!!"})
}

func (h *JobSeekerHandler) GetByUser(c *gin.Context) {
	profile, err := h.JobSeekers.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update is PUT /api/jobseekers/:userId with a multipart form or a JSON
// body. In JSON, list fields may be sent either as JSON text in a string or
// as plain JSON values.
func (h *JobSeekerHandler) Update(c *gin.Context) {
	var (
		upd dtos.JobSeekerUpdate
		err error
	)
	if isMultipart(c) {
		upd, err = h.multipartUpdate(c)
	} else {
		upd, err = jsonUpdate(c)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	profile, err := h.JobSeekers.Update(c.Request.Context(), c.Param("userId"), upd)
	if err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "updatedProfile": profile})
}

func (h *JobSeekerHandler) multipartUpdate(c *gin.Context) (dtos.JobSeekerUpdate, error) {
	var upd dtos.JobSeekerUpdate
	if _, err := c.MultipartForm(); err != nil {
		return upd, err
	}
	if v, ok := c.GetPostForm("bio"); ok {
		upd.Bio = &v
	}
	for _, name := range seekerJSONFields {
		if v, ok := c.GetPostForm(name); ok {
			*seekerField(&upd, name) = &v
		}
	}

	resume, err := resumeFromForm(c, h.MaxResumeBytes)
	if err != nil {
		h.Logger.Warn("Ignoring unreadable resume", zap.String("user_id", c.Param("userId")), zap.Error(err))
	}
	upd.Resume = resume
	return upd, nil
}

func jsonUpdate(c *gin.Context) (dtos.JobSeekerUpdate, error) {
	var upd dtos.JobSeekerUpdate
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		return upd, err
	}
	if raw, ok := body["bio"]; ok {
		v := rawText(raw)
		upd.Bio = &v
	}
	for _, name := range seekerJSONFields {
		if raw, ok := body[name]; ok {
			v := rawText(raw)
			*seekerField(&upd, name) = &v
		}
	}
	return upd, nil
}

// rawText unquotes JSON strings and returns any other value verbatim.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func seekerField(upd *dtos.JobSeekerUpdate, name string) **string {
	switch name {
	case "skills":
		return &upd.Skills
	case "experience":
		return &upd.Experience
	case "education":
		return &upd.Education
	default:
		return &upd.JobPreferences
	}
}
