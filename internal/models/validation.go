package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate enforces the Job schema rules and trims text fields in place.
func (j *Job) Validate() error {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Requirements = strings.TrimSpace(j.Requirements)
	j.Location = strings.TrimSpace(j.Location)

	var errs []error
	if j.Title == "" {
		errs = append(errs, errors.New("Job title is required"))
	}
	if j.Description == "" {
		errs = append(errs, errors.New("Job description is required"))
	}
	if j.Requirements == "" {
		errs = append(errs, errors.New("Job requirements are required"))
	}
	if j.Location == "" {
		errs = append(errs, errors.New("Location is required"))
	}
	if j.PostedBy == "" {
		errs = append(errs, errors.New("postedBy is required"))
	}
	if j.SalaryRange != nil {
		if err := j.SalaryRange.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks min/max ordering and the currency, defaulting it to INR.
func (s *SalaryRange) Validate() error {
	if s.Currency == "" {
		s.Currency = "INR"
	}
	if s.Min < 0 {
		return errors.New("Minimum salary must not be negative")
	}
	if s.Max < s.Min {
		return errors.New("Max salary must be greater than or equal to min salary.")
	}
	if !slices.Contains(Currencies, s.Currency) {
		return fmt.Errorf("`%s` is not a valid currency", s.Currency)
	}
	return nil
}

func (p *EmployerProfile) Validate() error {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	p.Industry = strings.TrimSpace(p.Industry)
	p.Website = strings.TrimSpace(p.Website)
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	if p.CompanySize == "" {
		p.CompanySize = CompanySizes[0]
	}

	var errs []error
	if p.UserID == "" {
		errs = append(errs, errors.New("user is required"))
	}
	if p.CompanyName == "" {
		errs = append(errs, errors.New("companyName is required"))
	}
	if p.Industry == "" {
		errs = append(errs, errors.New("industry is required"))
	}
	if !slices.Contains(CompanySizes, p.CompanySize) {
		errs = append(errs, fmt.Errorf("`%s` is not a valid companySize", p.CompanySize))
	}
	return errors.Join(errs...)
}

func (s *JobSeeker) Validate() error {
	s.Bio = strings.TrimSpace(s.Bio)
	if s.JobPreferences.PreferredJobType == "" {
		s.JobPreferences.PreferredJobType = JobTypes[0]
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if s.Experience == nil {
		s.Experience = []Experience{}
	}
	if s.Education == nil {
		s.Education = []Education{}
	}

	if s.UserID == "" {
		return errors.New("user is required")
	}
	if !slices.Contains(JobTypes, s.JobPreferences.PreferredJobType) {
		return fmt.Errorf("`%s` is not a valid preferredJobType", s.JobPreferences.PreferredJobType)
	}
	return nil
}

// Validate applies defaults and the quick-apply identity rule: without an
// applicant profile, applicantInfo must carry a name and email.
func (a *Application) Validate() error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.ApplicationMethod == "" {
		a.ApplicationMethod = MethodFullProfile
	}

	if a.JobID == "" {
		return errors.New("job is required")
	}
	if a.ApplicantID == nil || *a.ApplicantID == "" {
		if a.ApplicantInfo == nil || a.ApplicantInfo.Name == "" || a.ApplicantInfo.Email == "" {
			return errors.New("applicant name and email are required without a profile")
		}
	}
	if !IsValidStatus(a.Status) {
		return fmt.Errorf("`%s` is not a valid status", a.Status)
	}
	if a.ApplicationMethod != MethodFullProfile && a.ApplicationMethod != MethodQuickApply {
		return fmt.Errorf("`%s` is not a valid applicationMethod", a.ApplicationMethod)
	}
	return nil
}

func IsValidStatus(status string) bool {
	return slices.Contains(ApplicationStatuses, status)
}
