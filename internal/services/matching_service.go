package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/justsurfingit/HireNest/internal/models"
)

// Scoring weights for job recommendations.
const (
	skillWeight    = 3
	locationWeight = 2
	jobTypeWeight  = 1

	maxRecommendations = 10
)

// Skills shorter than this match too much text to be useful ("C", "R").
const minSkillLength = 2

type jobMatch struct {
	job      *models.Job
	score    int
	skills   []string
	location bool
	jobType  bool
}

// scoreJob rates one job for a seeker: skillWeight per profile skill found in
// the title, description or requirements, locationWeight when the job is in
// the preferred location and jobTypeWeight when the preferred job type is
// mentioned anywhere in the posting.
func scoreJob(seeker *models.JobSeeker, job *models.Job) jobMatch {
	m := jobMatch{job: job}
	text := strings.ToLower(job.Title + " " + job.Description + " " + job.Requirements)

	seen := make(map[string]bool)
	for _, skill := range seeker.Skills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if len(s) < minSkillLength || seen[s] {
			continue
		}
		seen[s] = true
		if strings.Contains(text, s) {
			m.score += skillWeight
			m.skills = append(m.skills, strings.TrimSpace(skill))
		}
	}

	prefs := seeker.JobPreferences
	if loc := strings.ToLower(strings.TrimSpace(prefs.PreferredLocation)); loc != "" {
		if strings.Contains(strings.ToLower(job.Location), loc) {
			m.score += locationWeight
			m.location = true
		}
	}
	if jt := strings.ToLower(prefs.PreferredJobType); jt != "" {
		if strings.Contains(text+" "+strings.ToLower(job.Location), jt) {
			m.score += jobTypeWeight
			m.jobType = true
		}
	}
	return m
}

// rankJobs keeps the best scoring jobs with a positive score. Ties keep the
// order of jobs.
func rankJobs(seeker *models.JobSeeker, jobs []models.Job) []jobMatch {
	var matches []jobMatch
	for i := range jobs {
		if m := scoreJob(seeker, &jobs[i]); m.score > 0 {
			matches = append(matches, m)
		}
	}
	slices.SortStableFunc(matches, func(a, b jobMatch) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(matches) > maxRecommendations {
		matches = matches[:maxRecommendations]
	}
	return matches
}

// reason describes the match without an LLM.
func (m jobMatch) reason() string {
	var parts []string
	if len(m.skills) > 0 {
		parts = append(parts, "matches your skills: "+strings.Join(m.skills, ", "))
	}
	if m.location {
		parts = append(parts, "is in your preferred location")
	}
	if m.jobType {
		parts = append(parts, "fits your job type preference")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("This %s role %s.", m.job.Title, strings.Join(parts, " and "))
}
