package dtos

import (
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/justsurfingit/HireNest/internal/storage"
)

// ApplicationRequest is a full-profile application. It binds from JSON or
// from multipart form fields; the resume part is read separately.
type ApplicationRequest struct {
	Job         string `json:"job" form:"job"`
	Applicant   string `json:"applicant" form:"applicant"`
	CoverLetter string `json:"coverLetter" form:"coverLetter"`

	Resume *storage.File `json:"-" form:"-"`
}

type QuickApplyRequest struct {
	Job            string `form:"job"`
	ApplicantName  string `form:"applicantName"`
	ApplicantEmail string `form:"applicantEmail"`
	CoverLetter    string `form:"coverLetter"`

	Resume *storage.File `form:"-"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type SuggestionQuery struct {
	Q          string `form:"q"`
	EmployerID string `form:"employerId"`
}

type ApplicantSuggestion struct {
	Name string `json:"name"`
}

type JobTitleSuggestion struct {
	Title string `json:"title"`
}

type LocationSuggestion struct {
	Location string `json:"location"`
}

// EmployerApplication is an application as an employer sees it. Quick-apply
// rows carry a synthesized applicant built from applicantInfo.
type EmployerApplication struct {
	models.Application
	Applicant *ApplicantView `json:"applicant,omitempty"`
}

type ApplicantView struct {
	ID         string              `json:"_id,omitempty"`
	User       *UserSummary        `json:"user,omitempty"`
	Bio        string              `json:"bio"`
	Skills     []string            `json:"skills"`
	Experience []models.Experience `json:"experience"`
	Education  []models.Education  `json:"education"`
	Resume     string              `json:"resume,omitempty"`
}

type UserSummary struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location,omitempty"`
}
