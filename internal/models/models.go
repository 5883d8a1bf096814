package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user signs up with.
const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null" json:"role,omitempty"`
	Location string `json:"location,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// EmployerProfile describes the company behind an employer account.
type EmployerProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"size:36;not null;index" json:"userId"`
	// Association: filled by Preload("User")
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CompanyName string `gorm:"not null" json:"companyName"`
	Industry    string `gorm:"not null" json:"industry"`
	Website     string `json:"website,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanySize string `gorm:"default:'1-10'" json:"companySize"`
}

func (p *EmployerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CompanySizes lists the accepted CompanySize buckets.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1001+"}

type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Currencies accepted in a SalaryRange.
var Currencies = []string{"INR", "USD"}

type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Requirements string       `gorm:"type:text;not null" json:"requirements"`
	SalaryRange  *SalaryRange `gorm:"serializer:json;type:text" json:"salaryRange,omitempty"`
	Location     string       `gorm:"not null;index" json:"location"`
	PostedBy     string       `gorm:"size:36;not null;index" json:"postedBy"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

type Experience struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	StartDate   *Date  `json:"startDate,omitempty"`
	EndDate     *Date  `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

type JobPreferences struct {
	PreferredJobType  string `json:"preferredJobType"`
	PreferredLocation string `json:"preferredLocation,omitempty"`
}

// JobTypes accepted in JobPreferences.PreferredJobType.
var JobTypes = []string{"full-time", "part-time", "remote", "freelance"}

type JobSeeker struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"size:36;not null;uniqueIndex" json:"userId,omitempty"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Bio            string         `gorm:"type:text" json:"bio"`
	Skills         []string       `gorm:"serializer:json;type:text" json:"skills"`
	Experience     []Experience   `gorm:"serializer:json;type:text" json:"experience"`
	Education      []Education    `gorm:"serializer:json;type:text" json:"education"`
	Resume         string         `json:"resume,omitempty"`
	JobPreferences JobPreferences `gorm:"serializer:json;type:text" json:"jobPreferences"`
}

func (s *JobSeeker) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Application statuses.
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)

// ApplicationStatuses lists every accepted Application.Status.
var ApplicationStatuses = []string{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected}

// Application methods.
const (
	MethodFullProfile = "full-profile"
	MethodQuickApply  = "quick-apply"
)

type ApplicantInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResumeRef points at an uploaded resume in whichever store accepted it.
type ResumeRef struct {
	FileID      string `json:"fileId"`
	WebViewLink string `json:"webViewLink"`
	FileName    string `json:"fileName"`
	Source      string `json:"source,omitempty"`
}

type Application struct {
	ID string `gorm:"primaryKey;size:36" json:"_id"`

	JobID string `gorm:"size:36;not null;index" json:"jobId"`
	Job   *Job   `gorm:"foreignKey:JobID" json:"job,omitempty"`

	// Empty for quick-apply submissions.
	ApplicantID *string    `gorm:"size:36;index" json:"applicantId,omitempty"`
	Applicant   *JobSeeker `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	ApplicantInfo     *ApplicantInfo `gorm:"serializer:json;type:text" json:"applicantInfo,omitempty"`
	Resume            *ResumeRef     `gorm:"serializer:json;type:text" json:"resume,omitempty"`
	CoverLetter       string         `gorm:"type:text" json:"coverLetter,omitempty"`
	Status            string         `gorm:"not null;default:'pending'" json:"status"`
	ApplicationMethod string         `gorm:"not null;default:'full-profile'" json:"applicationMethod"`
	AppliedAt         time.Time      `gorm:"autoCreateTime" json:"appliedAt"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type RecommendedJob struct {
	JobID  string `json:"jobId"`
	Score  int    `json:"score"`
	Reason string `json:"reason,omitempty"`
}

// Recommendation is the latest ranked job list for one job seeker user.
type Recommendation struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	JobSeekerID string    `gorm:"size:36;not null;uniqueIndex" json:"jobSeekerId"`
	GeneratedAt time.Time `json:"generatedAt"`

	RecommendedJobs []RecommendedJob `gorm:"serializer:json;type:text" json:"recommendedJobs"`
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// All lists the models managed by migrations.
func All() []any {
	return []any{
		&User{},
		&EmployerProfile{},
		&Job{},
		&JobSeeker{},
		&Application{},
		&Recommendation{},
	}
}
