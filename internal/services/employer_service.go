package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployerService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewEmployerService(db *gorm.DB, logger *zap.Logger) *EmployerService {
	return &EmployerService{DB: db, Logger: logger}
}

func (s *EmployerService) Create(ctx context.Context, req dtos.EmployerProfileRequest) (*models.EmployerProfile, error) {
	profile := &models.EmployerProfile{
		UserID:      req.User,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Website:     req.Website,
		Description: req.Description,
		Location:    req.Location,
		CompanySize: req.CompanySize,
	}
	if err := profile.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if err := ensureUser(ctx, s.DB, profile.UserID); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	s.Logger.Info("Employer profile created",
		zap.String("profile_id", profile.ID),
		zap.String("user_id", profile.UserID))
	return profile, nil
}

// List returns every profile, newest first.
func (s *EmployerService) List(ctx context.Context) ([]models.EmployerProfile, error) {
	profiles := []models.EmployerProfile{}
	err := s.DB.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch employer profiles", err)
	}
	return profiles, nil
}

func (s *EmployerService) GetByUser(ctx context.Context, userID string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := s.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Employer Profile not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &profile, nil
}

// Update overwrites the fields sent with a non-empty value. The owning user
// cannot be changed.
func (s *EmployerService) Update(ctx context.Context, id string, req dtos.EmployerProfileRequest) (*models.EmployerProfile, error) {
	profile, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	setIfPresent(&profile.CompanyName, req.CompanyName)
	setIfPresent(&profile.Industry, req.Industry)
	setIfPresent(&profile.Website, req.Website)
	setIfPresent(&profile.Description, req.Description)
	setIfPresent(&profile.Location, req.Location)
	setIfPresent(&profile.CompanySize, req.CompanySize)
	if err := profile.Validate(); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if err := s.DB.WithContext(ctx).Omit("User").Save(profile).Error; err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return profile, nil
}

func (s *EmployerService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.EmployerProfile{}, "id = ?", id)
	if res.Error != nil {
		return apperr.BadRequest(res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Employer Profile not found")
	}
	return nil
}

func (s *EmployerService) get(ctx context.Context, id string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := s.DB.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Employer Profile not found")
	}
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &profile, nil
}

func ensureUser(ctx context.Context, db *gorm.DB, userID string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	if count == 0 {
		return apperr.BadRequest("User not found")
	}
	return nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
