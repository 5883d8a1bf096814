package dtos

import "github.com/justsurfingit/HireNest/internal/models"

// JobExtractionRequest carries a pasted job posting for the LLM to structure.
type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Requirements string              `json:"requirements"`
	SalaryRange  *models.SalaryRange `json:"salaryRange"`
	Location     string              `json:"location"`
	PostedBy     string              `json:"postedBy"`
}

// JobUpdateRequest is a partial update; nil fields are left unchanged.
type JobUpdateRequest struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Requirements *string             `json:"requirements"`
	SalaryRange  *models.SalaryRange `json:"salaryRange"`
	Location     *string             `json:"location"`
}

type JobListQuery struct {
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	Location string `form:"location"`
	PostedBy string `form:"postedBy"`
}

type JobListResponse struct {
	Jobs       []models.Job `json:"jobs"`
	TotalCount int64        `json:"totalCount"`
}
