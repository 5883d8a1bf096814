package dtos

import "github.com/justsurfingit/HireNest/internal/storage"

type EmployerProfileRequest struct {
	User        string `json:"user"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CompanySize string `json:"companySize"`
}

// JobSeekerForm is the multipart profile form. List and object fields arrive
// as JSON strings.
type JobSeekerForm struct {
	User           string `form:"user"`
	Bio            string `form:"bio"`
	Skills         string `form:"skills"`
	Experience     string `form:"experience"`
	Education      string `form:"education"`
	JobPreferences string `form:"jobPreferences"`

	Resume *storage.File `form:"-"`
}

// JobSeekerUpdate holds raw field values for a partial profile update. A nil
// entry was not sent.
type JobSeekerUpdate struct {
	Bio            *string
	Skills         *string
	Experience     *string
	Education      *string
	JobPreferences *string

	Resume *storage.File
}
