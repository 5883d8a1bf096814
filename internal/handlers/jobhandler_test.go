package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRoutes(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	w := s.do(t, http.MethodPost, "/api/jobs", map[string]any{
		"title":        "Go Engineer",
		"description":  "Build APIs",
		"requirements": "Go",
		"location":     "Pune",
		"postedBy":     "emp-1",
		"salaryRange":  map[string]any{"min": 10, "max": 20},
	})
	requireStatus(t, http.StatusCreated, w)
	created := decode(t, w)
	assert.Equal(t, "Jobs Posted successfully!", created["message"])
	id := created["job"].(map[string]any)["_id"].(string)

	w = s.do(t, http.MethodPost, "/api/jobs", map[string]any{"title": "No details"})
	requireStatus(t, http.StatusBadRequest, w)
	assert.Contains(t, decode(t, w)["message"], "Job description is required")

	seedJob(t, s.db, "emp-2", "Designer")

	w = s.do(t, http.MethodGet, "/api/jobs?search=go&limit=5", nil)
	requireStatus(t, http.StatusOK, w)
	list := decode(t, w)
	assert.EqualValues(t, 1, list["totalCount"])
	assert.Len(t, list["jobs"], 1)

	w = s.do(t, http.MethodGet, "/api/jobs?limit=lots", nil)
	requireStatus(t, http.StatusBadRequest, w)

	w = s.do(t, http.MethodGet, "/api/jobs/"+id, nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "Go Engineer", decode(t, w)["job"].(map[string]any)["title"])

	w = s.do(t, http.MethodGet, "/api/jobs/missing", nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.Equal(t, "Job not found", decode(t, w)["message"])

	w = s.do(t, http.MethodPut, "/api/jobs/"+id, map[string]any{"title": "Senior Go Engineer"})
	requireStatus(t, http.StatusOK, w)
	updated := decode(t, w)
	assert.Equal(t, "Job updated successfully", updated["message"])
	assert.Equal(t, "Senior Go Engineer", updated["job"].(map[string]any)["title"])

	w = s.do(t, http.MethodDelete, "/api/jobs/"+id, nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "Job deleted successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/jobs/"+id, nil)
	requireStatus(t, http.StatusNotFound, w)
}

func TestParseJob(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	body := map[string]string{"raw_html": "<h1>Go Engineer</h1>"}

	w := s.do(t, http.MethodPost, "/api/jobs/extract", body)
	requireStatus(t, http.StatusServiceUnavailable, w)
	assert.Equal(t, "Job extraction is not configured", decode(t, w)["error"])

	s.h.Jobs.Extractor = fakeExtractor{out: `{"title":"Go Engineer","location":"Pune"}`}
	w = s.do(t, http.MethodPost, "/api/jobs/extract", map[string]string{})
	requireStatus(t, http.StatusBadRequest, w)

	w = s.do(t, http.MethodPost, "/api/jobs/extract", body)
	requireStatus(t, http.StatusOK, w)
	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	data, ok := out["data"].(map[string]any)
	require.True(t, ok, "data is embedded as an object")
	assert.Equal(t, "Go Engineer", data["title"])

	s.h.Jobs.Extractor = fakeExtractor{err: errors.New("quota exceeded")}
	w = s.do(t, http.MethodPost, "/api/jobs/extract", body)
	requireStatus(t, http.StatusInternalServerError, w)
	assert.Contains(t, decode(t, w)["error"], "quota exceeded")
}
