package dtos

import "time"

type RecommendationView struct {
	ID              string               `json:"_id"`
	JobSeekerID     string               `json:"jobSeekerId"`
	GeneratedAt     time.Time            `json:"generatedAt"`
	RecommendedJobs []RecommendedJobView `json:"recommendedJobs"`
}

// RecommendedJobView has the job populated with its summary fields; JobID is
// nil when the job has since been deleted.
type RecommendedJobView struct {
	JobID  *JobSummary `json:"jobId"`
	Score  int         `json:"score"`
	Reason string      `json:"reason,omitempty"`
}

type JobSummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}
