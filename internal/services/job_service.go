package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/justsurfingit/HireNest/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type JobService struct {
	DB      *gorm.DB
	Resumes ResumeStore
	Logger  *zap.Logger
}

func NewJobService(db *gorm.DB, resumes ResumeStore, logger *zap.Logger) *JobService {
	return &JobService{
		DB:      db,
		Resumes: resumes,
		Logger:  logger,
	}
}

func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	job := &models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		Location:     req.Location,
		PostedBy:     req.PostedBy,
	}
	if err := job.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, apperr.Internal("Failed to create job", err)
	}
	s.Logger.Info("Job posted", zap.String("job_id", job.ID), zap.String("posted_by", job.PostedBy))
	return job, nil
}

// ListJobs pages through jobs, newest first. Search matches the title and
// location matches the location, both case-insensitively.
func (s *JobService) ListJobs(ctx context.Context, q dtos.JobListQuery) (*dtos.JobListResponse, error) {
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}

	query := s.DB.WithContext(ctx).Model(&models.Job{})
	if search := strings.TrimSpace(q.Search); search != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(search))
	}
	if location := strings.TrimSpace(q.Location); location != "" {
		query = query.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(location))
	}
	if q.PostedBy != "" {
		query = query.Where("posted_by = ?", q.PostedBy)
	}
	query = query.Session(&gorm.Session{})

	resp := &dtos.JobListResponse{Jobs: []models.Job{}}
	if err := query.Count(&resp.TotalCount).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch jobs", err)
	}
	err := query.Order("created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&resp.Jobs).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch jobs", err)
	}
	return resp, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &job, nil
}

// UpdateJob applies the fields present in req and revalidates the result.
func (s *JobService) UpdateJob(ctx context.Context, id string, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryRange != nil {
		job.SalaryRange = req.SalaryRange
	}
	if err := job.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return job, nil
}

// DeleteJob removes the job and its applications. Resume files of those
// applications are removed afterwards on a best-effort basis.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	if _, err := s.GetJob(ctx, id); err != nil {
		return err
	}

	var apps []models.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Find(&apps).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
	if err != nil {
		return apperr.Internal("Server error", err)
	}

	for _, app := range apps {
		if app.Resume == nil || app.Resume.FileID == "" {
			continue
		}
		if err := s.Resumes.DeleteDescriptor(ctx, resumeDescriptor(app.Resume)); err != nil {
			s.Logger.Warn("Failed to delete resume of removed application",
				zap.String("application_id", app.ID),
				zap.String("file_id", app.Resume.FileID),
				zap.Error(err))
		}
	}

	s.Logger.Info("Job deleted", zap.String("job_id", id), zap.Int("applications_removed", len(apps)))
	return nil
}

func resumeDescriptor(r *models.ResumeRef) storage.Descriptor {
	return storage.Descriptor{
		FileID:      r.FileID,
		FileName:    r.FileName,
		WebViewLink: r.WebViewLink,
		Source:      r.Source,
	}
}
