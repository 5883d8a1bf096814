package handlers

import (
	"net/http"
	"testing"

	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployerProfileRoutes(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	user := seedUser(t, s.db, "Acme HR", "hr@acme.com", models.RoleEmployer)

	w := s.do(t, http.MethodPost, "/api/employerprofile", map[string]string{"user": user.ID, "companyName": "Acme"})
	requireStatus(t, http.StatusBadRequest, w)
	assert.Contains(t, decode(t, w)["message"], "industry is required")

	w = s.do(t, http.MethodPost, "/api/employerprofile", map[string]string{
		"user": user.ID, "companyName": "Acme", "industry": "Software",
	})
	requireStatus(t, http.StatusCreated, w)
	created := decode(t, w)
	assert.Equal(t, "Employer Profile created successfully!", created["message"])
	id := created["profile"].(map[string]any)["_id"].(string)

	w = s.do(t, http.MethodGet, "/api/employerprofile", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `"companyName":"Acme"`)

	w = s.do(t, http.MethodGet, "/api/employerprofile/"+user.ID, nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "hr@acme.com", decode(t, w)["user"].(map[string]any)["email"])

	w = s.do(t, http.MethodGet, "/api/employerprofile/nobody", nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.Equal(t, "Employer Profile not found", decode(t, w)["message"])

	w = s.do(t, http.MethodPut, "/api/employerprofile/"+id, map[string]string{"companySize": "11-50"})
	requireStatus(t, http.StatusOK, w)
	updated := decode(t, w)
	assert.Equal(t, "Employer Profile updated successfully", updated["message"])
	assert.Equal(t, "11-50", updated["profile"].(map[string]any)["companySize"])

	w = s.do(t, http.MethodDelete, "/api/employerprofile/"+id, nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "Employer Profile deleted successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/employerprofile/"+id, nil)
	requireStatus(t, http.StatusNotFound, w)
}

func TestJobSeekerRoutes(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	user := seedUser(t, s.db, "Asha Rao", "asha@example.com", models.RoleJobSeeker)

	fields := map[string]string{
		"user":           user.ID,
		"bio":            "Backend developer",
		"skills":         `["Go"]`,
		"experience":     `[]`,
		"education":      `[]`,
		"jobPreferences": `{"preferredLocation":"Pune"}`,
	}

	bad := map[string]string{}
	for k, v := range fields {
		bad[k] = v
	}
	bad["skills"] = `["Go"`
	w := s.multipart(t, http.MethodPost, "/api/jobseekers", bad, nil)
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "Invalid JSON in one of the fields.", decode(t, w)["message"])

	w = s.multipart(t, http.MethodPost, "/api/jobseekers", fields, pdfUpload("asha.pdf"))
	requireStatus(t, http.StatusCreated, w)
	assert.Equal(t, "Your Profile is Created at this Job Board!!", decode(t, w)["message"])

	w = s.multipart(t, http.MethodPost, "/api/jobseekers", fields, nil)
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "Profile already exists", decode(t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/jobseekers/"+user.ID, nil)
	requireStatus(t, http.StatusOK, w)
	profile := decode(t, w)
	assert.Contains(t, profile["resume"], "/uploads/")
	assert.Equal(t, "Asha Rao", profile["user"].(map[string]any)["name"])

	w = s.do(t, http.MethodGet, "/api/jobseekers/nobody", nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.Equal(t, "Job Seeker profile not found", decode(t, w)["message"])
}

func TestJobSeekerUpdateRoute(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	user := seedUser(t, s.db, "Asha Rao", "asha@example.com", models.RoleJobSeeker)
	seedSeeker(t, s.db, user.ID)
	path := "/api/jobseekers/" + user.ID

	// JSON fields may be real JSON values or JSON text in a string.
	w := s.do(t, http.MethodPut, path, map[string]any{
		"bio":            "Go and Rust",
		"skills":         []string{"Go", "Rust"},
		"jobPreferences": `{"preferredJobType":"remote"}`,
	})
	requireStatus(t, http.StatusOK, w)
	body := decode(t, w)
	assert.Equal(t, "Profile updated successfully", body["message"])
	updated := body["updatedProfile"].(map[string]any)
	assert.Equal(t, "Go and Rust", updated["bio"])
	assert.Equal(t, []any{"Go", "Rust"}, updated["skills"])
	assert.Equal(t, "remote", updated["jobPreferences"].(map[string]any)["preferredJobType"])

	w = s.do(t, http.MethodPut, path, map[string]any{"education": "{nope"})
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "Invalid JSON in field: education", decode(t, w)["message"])

	w = s.multipart(t, http.MethodPut, path, map[string]string{"skills": `["Python"]`}, pdfUpload("new.pdf"))
	requireStatus(t, http.StatusOK, w)
	updated = decode(t, w)["updatedProfile"].(map[string]any)
	assert.Equal(t, []any{"Python"}, updated["skills"])
	assert.Equal(t, "Go and Rust", updated["bio"], "fields not sent are kept")
	require.Contains(t, updated["resume"], "/uploads/")

	w = s.do(t, http.MethodPut, "/api/jobseekers/nobody", map[string]any{"bio": "x"})
	requireStatus(t, http.StatusNotFound, w)
}
