package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/justsurfingit/HireNest/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JobSeekerService struct {
	DB      *gorm.DB
	Resumes ResumeStore
	Logger  *zap.Logger
}

func NewJobSeekerService(db *gorm.DB, resumes ResumeStore, logger *zap.Logger) *JobSeekerService {
	return &JobSeekerService{DB: db, Resumes: resumes, Logger: logger}
}

// Create builds a profile from the multipart form. A resume that fails to
// upload is logged and the profile is created without it.
func (s *JobSeekerService) Create(ctx context.Context, form dtos.JobSeekerForm) (*models.JobSeeker, error) {
	profile := &models.JobSeeker{UserID: form.User, Bio: form.Bio}

	fields := []struct {
		raw string
		dst any
	}{
		{form.Skills, &profile.Skills},
		{form.Experience, &profile.Experience},
		{form.Education, &profile.Education},
		{form.JobPreferences, &profile.JobPreferences},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, apperr.BadRequest("Invalid JSON in one of the fields.").Wrap(err)
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.JobSeeker{}).Where("user_id = ?", profile.UserID).Count(&existing).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if existing > 0 {
		return nil, apperr.BadRequest("Profile already exists")
	}
	if err := ensureUser(ctx, s.DB, profile.UserID); err != nil {
		return nil, err
	}

	if form.Resume != nil {
		if link, ok := s.uploadResume(ctx, *form.Resume, profile.UserID); ok {
			profile.Resume = link
		}
	}

	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	s.Logger.Info("Job seeker profile created",
		zap.String("profile_id", profile.ID),
		zap.String("user_id", profile.UserID),
		zap.Bool("has_resume", profile.Resume != ""))
	return profile, nil
}

func (s *JobSeekerService) GetByUser(ctx context.Context, userID string) (*models.JobSeeker, error) {
	var profile models.JobSeeker
	err := s.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job Seeker profile not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &profile, nil
}

// Update applies a partial update. Fields are parsed before the profile is
// looked up, so malformed input is reported even for unknown users.
func (s *JobSeekerService) Update(ctx context.Context, userID string, upd dtos.JobSeekerUpdate) (*models.JobSeeker, error) {
	var (
		skills      []string
		experience  []models.Experience
		education   []models.Education
		preferences models.JobPreferences
	)
	fields := []struct {
		name string
		raw  *string
		dst  any
	}{
		{"skills", upd.Skills, &skills},
		{"experience", upd.Experience, &experience},
		{"education", upd.Education, &education},
		{"jobPreferences", upd.JobPreferences, &preferences},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		if err := json.Unmarshal([]byte(*f.raw), f.dst); err != nil {
			return nil, apperr.BadRequest("Invalid JSON in field: " + f.name).Wrap(err)
		}
	}

	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		profile.Skills = skills
	}
	if upd.Experience != nil {
		profile.Experience = experience
	}
	if upd.Education != nil {
		profile.Education = education
	}
	if upd.JobPreferences != nil {
		profile.JobPreferences = preferences
	}
	if upd.Resume != nil {
		if link, ok := s.uploadResume(ctx, *upd.Resume, userID); ok {
			profile.Resume = link
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if err := s.DB.WithContext(ctx).Omit("User").Save(profile).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return profile, nil
}

// uploadResume returns the resume link, or false when the upload failed and
// the caller should keep what it had.
func (s *JobSeekerService) uploadResume(ctx context.Context, f storage.File, userID string) (string, bool) {
	d, err := s.Resumes.Upload(ctx, f)
	if err != nil {
		s.Logger.Warn("Resume upload failed, continuing without it",
			zap.String("user_id", userID),
			zap.String("file_name", f.Name),
			zap.Error(err))
		return "", false
	}
	return d.WebViewLink, true
}
