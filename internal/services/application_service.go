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
	quickApplyCoverLetter = "Quick application for the position."
	quickApplyBio         = "Quick application - no full profile"

	maxNameSuggestions    = 10
	maxTitleSuggestions   = 10
	maxLocationCandidates = 20
)

type ApplicationService struct {
	DB      *gorm.DB
	Resumes ResumeStore
	Logger  *zap.Logger
}

func NewApplicationService(db *gorm.DB, resumes ResumeStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{DB: db, Resumes: resumes, Logger: logger}
}

// Submit records a full-profile application. applicant may be the job
// seeker profile id or the id of the user who owns it.
func (s *ApplicationService) Submit(ctx context.Context, req dtos.ApplicationRequest) (*models.Application, error) {
	if req.Job == "" || req.Applicant == "" {
		return nil, apperr.BadRequest("Job and applicant are required")
	}
	if err := s.ensureJob(ctx, req.Job); err != nil {
		return nil, err
	}

	var seeker models.JobSeeker
	err := s.DB.WithContext(ctx).
		Where("id = ? OR user_id = ?", req.Applicant, req.Applicant).
		First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Applicant profile not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}

	var existing int64
	err = s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", req.Job, seeker.ID).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("You have already applied for this job")
	}

	app := &models.Application{
		JobID:             req.Job,
		ApplicantID:       &seeker.ID,
		CoverLetter:       req.CoverLetter,
		ApplicationMethod: models.MethodFullProfile,
	}
	if req.Resume != nil {
		ref, err := s.uploadResume(ctx, *req.Resume)
		if err != nil {
			return nil, err
		}
		app.Resume = ref
	}

	if err := s.create(ctx, app); err != nil {
		return nil, err
	}
	s.Logger.Info("Application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("applicant_id", seeker.ID))
	return app, nil
}

// QuickApply records an application carrying only a name, an email and a
// resume.
func (s *ApplicationService) QuickApply(ctx context.Context, req dtos.QuickApplyRequest) (*models.Application, error) {
	name := strings.TrimSpace(req.ApplicantName)
	email := strings.TrimSpace(req.ApplicantEmail)
	if req.Job == "" || name == "" || email == "" {
		return nil, apperr.BadRequest("Job, applicant name, and email are required")
	}
	if req.Resume == nil {
		return nil, apperr.BadRequest("Resume file is required for quick apply")
	}
	if err := s.ensureJob(ctx, req.Job); err != nil {
		return nil, err
	}

	ref, err := s.uploadResume(ctx, *req.Resume)
	if err != nil {
		return nil, err
	}

	coverLetter := req.CoverLetter
	if strings.TrimSpace(coverLetter) == "" {
		coverLetter = quickApplyCoverLetter
	}
	app := &models.Application{
		JobID:             req.Job,
		ApplicantInfo:     &models.ApplicantInfo{Name: name, Email: email},
		Resume:            ref,
		CoverLetter:       coverLetter,
		ApplicationMethod: models.MethodQuickApply,
	}
	if err := s.create(ctx, app); err != nil {
		return nil, err
	}
	s.Logger.Info("Quick application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("resume_source", ref.Source))
	return app, nil
}

// ListForJob returns the applications of one job with their applicant
// profiles populated.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Applicant.User").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("No applications found for this job")
	}
	return apps, nil
}

// ListForEmployer returns every application to jobs posted by postedBy.
// Quick-apply rows get an applicant synthesized from applicantInfo so
// clients can render both kinds the same way.
func (s *ApplicationService) ListForEmployer(ctx context.Context, postedBy string) ([]dtos.EmployerApplication, error) {
	if postedBy == "" {
		return nil, apperr.BadRequest("Missing postedBy parameter")
	}

	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Applicant.User").
		Preload("Job").
		Where("job_id IN (?)", s.DB.Model(&models.Job{}).Select("id").Where("posted_by = ?", postedBy)).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}

	out := make([]dtos.EmployerApplication, 0, len(apps))
	for _, app := range apps {
		out = append(out, employerView(app))
	}
	return out, nil
}

func employerView(app models.Application) dtos.EmployerApplication {
	view := dtos.EmployerApplication{Application: app}
	if app.ApplicationMethod == models.MethodQuickApply && app.ApplicantInfo != nil {
		view.Applicant = &dtos.ApplicantView{
			User:       &dtos.UserSummary{Name: app.ApplicantInfo.Name, Email: app.ApplicantInfo.Email},
			Bio:        quickApplyBio,
			Skills:     []string{},
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		return view
	}
	if seeker := app.Applicant; seeker != nil {
		view.Applicant = &dtos.ApplicantView{
			ID:         seeker.ID,
			Bio:        seeker.Bio,
			Skills:     seeker.Skills,
			Experience: seeker.Experience,
			Education:  seeker.Education,
			Resume:     seeker.Resume,
		}
		if seeker.User != nil {
			view.Applicant.User = &dtos.UserSummary{
				ID:    seeker.User.ID,
				Name:  seeker.User.Name,
				Email: seeker.User.Email,
			}
		}
	}
	return view
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (*models.Application, error) {
	if !models.IsValidStatus(status) {
		return nil, apperr.BadRequest("Invalid status value")
	}
	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(app).Update("status", status).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	app.Status = status
	return app, nil
}

// Delete removes the application. A resume that cannot be deleted is logged
// and does not block removing the row.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	app, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if app.Resume != nil && app.Resume.FileID != "" {
		if err := s.Resumes.DeleteDescriptor(ctx, resumeDescriptor(app.Resume)); err != nil {
			s.Logger.Warn("Failed to delete resume file",
				zap.String("application_id", app.ID),
				zap.String("file_id", app.Resume.FileID),
				zap.Error(err))
		}
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	return nil
}

// ApplicantSuggestions lists distinct applicant names on the employer's
// applications containing q.
func (s *ApplicationService) ApplicantSuggestions(ctx context.Context, q dtos.SuggestionQuery) ([]dtos.ApplicantSuggestion, error) {
	out := []dtos.ApplicantSuggestion{}
	if q.EmployerID == "" {
		return out, nil
	}

	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Applicant.User").
		Where("job_id IN (?)", s.DB.Model(&models.Job{}).Select("id").Where("posted_by = ?", q.EmployerID)).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch applicant suggestions", err)
	}

	needle := strings.ToLower(q.Q)
	seen := make(map[string]bool)
	for _, app := range apps {
		name := applicantName(app)
		if name == "" || seen[name] || !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		seen[name] = true
		out = append(out, dtos.ApplicantSuggestion{Name: name})
		if len(out) == maxNameSuggestions {
			break
		}
	}
	return out, nil
}

func applicantName(app models.Application) string {
	if app.Applicant != nil && app.Applicant.User != nil {
		return app.Applicant.User.Name
	}
	if app.ApplicantInfo != nil {
		return app.ApplicantInfo.Name
	}
	return ""
}

func (s *ApplicationService) JobSuggestions(ctx context.Context, q dtos.SuggestionQuery) ([]dtos.JobTitleSuggestion, error) {
	out := []dtos.JobTitleSuggestion{}
	if q.EmployerID == "" {
		return out, nil
	}

	var titles []string
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("posted_by = ?", q.EmployerID).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(q.Q)).
		Order("created_at DESC").
		Limit(maxTitleSuggestions).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch job title suggestions", err)
	}
	for _, t := range titles {
		out = append(out, dtos.JobTitleSuggestion{Title: t})
	}
	return out, nil
}

// LocationSuggestions returns the distinct locations among the first 20
// matching jobs.
func (s *ApplicationService) LocationSuggestions(ctx context.Context, q dtos.SuggestionQuery) ([]dtos.LocationSuggestion, error) {
	out := []dtos.LocationSuggestion{}
	if q.EmployerID == "" {
		return out, nil
	}

	var locations []string
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("posted_by = ?", q.EmployerID).
		Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(q.Q)).
		Order("created_at DESC").
		Limit(maxLocationCandidates).
		Pluck("location", &locations).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch location suggestions", err)
	}

	seen := make(map[string]bool)
	for _, l := range locations {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, dtos.LocationSuggestion{Location: l})
	}
	return out, nil
}

func (s *ApplicationService) get(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &app, nil
}

func (s *ApplicationService) ensureJob(ctx context.Context, jobID string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", jobID).Count(&count).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	if count == 0 {
		return apperr.NotFound("Job not found")
	}
	return nil
}

// uploadResume stores f through the fallback store. Validation failures are
// the client's fault; anything else means both stores failed.
func (s *ApplicationService) uploadResume(ctx context.Context, f storage.File) (*models.ResumeRef, error) {
	d, err := s.Resumes.Upload(ctx, f)
	if err != nil {
		if storage.IsValidationError(err) {
			return nil, apperr.BadRequest(err.Error()).Wrap(err)
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &models.ResumeRef{
		FileID:      d.FileID,
		WebViewLink: d.WebViewLink,
		FileName:    d.FileName,
		Source:      d.Source,
	}, nil
}

// create validates and inserts app. If the insert fails the uploaded resume
// is removed again so no file is left without an application.
func (s *ApplicationService) create(ctx context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		s.discardResume(ctx, app.Resume)
		return apperr.BadRequest(err.Error())
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		s.discardResume(ctx, app.Resume)
		return apperr.Internal("Server error", err)
	}
	return nil
}

func (s *ApplicationService) discardResume(ctx context.Context, ref *models.ResumeRef) {
	if ref == nil {
		return
	}
	if err := s.Resumes.DeleteDescriptor(ctx, resumeDescriptor(ref)); err != nil {
		s.Logger.Warn("Failed to remove orphaned resume", zap.String("file_id", ref.FileID), zap.Error(err))
	}
}
