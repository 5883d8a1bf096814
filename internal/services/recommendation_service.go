package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/metrics"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	explainTimeout = 15 * time.Second
	refreshTimeout = 10 * time.Minute
)

// MatchExplainer writes a short reason why a job suits a job seeker.
type MatchExplainer interface {
	ExplainMatch(ctx context.Context, seeker *models.JobSeeker, job *models.Job) (string, error)
}

type RecommendationService struct {
	DB        *gorm.DB
	Explainer MatchExplainer
	Logger    *zap.Logger

	cron *cron.Cron
	now  func() time.Time
}

// NewRecommendationService builds the service; explainer may be nil, in
// which case reasons are rule based.
func NewRecommendationService(db *gorm.DB, explainer MatchExplainer, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		DB:        db,
		Explainer: explainer,
		Logger:    logger,
		now:       time.Now,
	}
}

// Get returns the stored recommendation for a job seeker's user id with the
// jobs populated.
func (s *RecommendationService) Get(ctx context.Context, userID string) (*dtos.RecommendationView, error) {
	var rec models.Recommendation
	err := s.DB.WithContext(ctx).Where("job_seeker_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("No recommendations found for this user.")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}

	ids := make([]string, 0, len(rec.RecommendedJobs))
	for _, r := range rec.RecommendedJobs {
		ids = append(ids, r.JobID)
	}
	var jobs []models.Job
	if len(ids) > 0 {
		err := s.DB.WithContext(ctx).
			Select("id", "title", "description", "location").
			Where("id IN ?", ids).
			Find(&jobs).Error
		if err != nil {
			return nil, apperr.Internal("Server error", err)
		}
	}
	byID := make(map[string]*dtos.JobSummary, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = &dtos.JobSummary{
			ID:          j.ID,
			Title:       j.Title,
			Description: j.Description,
			Location:    j.Location,
		}
	}

	view := &dtos.RecommendationView{
		ID:              rec.ID,
		JobSeekerID:     rec.JobSeekerID,
		GeneratedAt:     rec.GeneratedAt,
		RecommendedJobs: make([]dtos.RecommendedJobView, 0, len(rec.RecommendedJobs)),
	}
	for _, r := range rec.RecommendedJobs {
		view.RecommendedJobs = append(view.RecommendedJobs, dtos.RecommendedJobView{
			JobID:  byID[r.JobID],
			Score:  r.Score,
			Reason: r.Reason,
		})
	}
	return view, nil
}

// Refresh recomputes one job seeker's recommendations now.
func (s *RecommendationService) Refresh(ctx context.Context, userID string) (*dtos.RecommendationView, error) {
	err := s.refresh(ctx, userID)
	metrics.RecordRecommendationRun("manual", err)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// RefreshAll recomputes recommendations for every job seeker profile. One
// failing profile does not stop the others.
func (s *RecommendationService) RefreshAll(ctx context.Context) error {
	var userIDs []string
	if err := s.DB.WithContext(ctx).Model(&models.JobSeeker{}).Pluck("user_id", &userIDs).Error; err != nil {
		metrics.RecordRecommendationRun("scheduled", err)
		return fmt.Errorf("list job seekers: %w", err)
	}

	var errs []error
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.refresh(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", id, err))
		}
	}
	err := errors.Join(errs...)
	metrics.RecordRecommendationRun("scheduled", err)
	s.Logger.Info("Recommendations refreshed",
		zap.Int("profiles", len(userIDs)),
		zap.Int("failures", len(errs)))
	return err
}

func (s *RecommendationService) refresh(ctx context.Context, userID string) error {
	var seeker models.JobSeeker
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Job Seeker profile not found")
	}
	if err != nil {
		return apperr.Internal("Server error", err)
	}

	var jobs []models.Job
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return apperr.Internal("Server error", err)
	}

	matches := rankJobs(&seeker, jobs)
	recommended := make([]models.RecommendedJob, 0, len(matches))
	for _, m := range matches {
		recommended = append(recommended, models.RecommendedJob{
			JobID:  m.job.ID,
			Score:  m.score,
			Reason: s.explain(ctx, &seeker, m),
		})
	}

	// Upsert on job_seeker_id: a manual refresh and the cron run may both
	// insert the first row for the same user.
	rec := models.Recommendation{
		JobSeekerID:     userID,
		GeneratedAt:     s.now(),
		RecommendedJobs: recommended,
	}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_seeker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"generated_at", "recommended_jobs"}),
	}).Create(&rec).Error
	if err != nil {
		return apperr.Internal("Server error", err)
	}
	return nil
}

func (s *RecommendationService) explain(ctx context.Context, seeker *models.JobSeeker, m jobMatch) string {
	if s.Explainer == nil {
		return m.reason()
	}
	ctx, cancel := context.WithTimeout(ctx, explainTimeout)
	defer cancel()
	reason, err := s.Explainer.ExplainMatch(ctx, seeker, m.job)
	if err != nil {
		s.Logger.Debug("Match explanation failed, using rule-based reason",
			zap.String("job_id", m.job.ID),
			zap.Error(err))
		return m.reason()
	}
	return reason
}

// Start refreshes all recommendations on schedule (standard cron syntax or
// descriptors such as "@every 30m").
func (s *RecommendationService) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.RefreshAll(ctx); err != nil {
			s.Logger.Warn("Scheduled recommendation refresh had failures", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid recommendation schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.Logger.Info("Recommendation scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (s *RecommendationService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
