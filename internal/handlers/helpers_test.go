package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/database"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/justsurfingit/HireNest/internal/services"
	"github.com/justsurfingit/HireNest/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

const testSecret = "handler-test-secret"

type fakeMailer struct {
	err  error
	sent []services.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg services.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeExtractor struct {
	out string
	err error
}

func (f fakeExtractor) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	return f.out, f.err
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenIssuer
	mailer *fakeMailer
	h      *Handlers
}

func newTestServer(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	logger := zap.NewNop()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hirenest.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	uploads := t.TempDir()
	store := storage.NewStore(storage.NewLocalBackend(uploads, "http://localhost:5002"), logger)
	tokens := auth.NewTokenIssuer(testSecret, 10*time.Minute)
	mailer := &fakeMailer{}

	h := &Handlers{
		Auth:            NewAuthHandler(services.NewAuthService(db, tokens, logger), logger),
		Jobs:            NewJobHandler(nil, services.NewJobService(db, store, logger), logger),
		Applications:    NewApplicationHandler(services.NewApplicationService(db, store, logger), store.MaxBytes(), logger),
		Employers:       NewEmployerHandler(services.NewEmployerService(db, logger), logger),
		JobSeekers:      NewJobSeekerHandler(services.NewJobSeekerService(db, store, logger), store.MaxBytes(), logger),
		Recommendations: NewRecommendationHandler(services.NewRecommendationService(db, nil, logger), logger),
		Mail:            NewMailHandler(services.NewMailService(mailer, "jobs@hirenest.test", logger), logger),
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = uploads
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
		cfg.RateLimitBurst = 100
	}
	return &testServer{
		router: NewRouter(cfg, h, tokens, logger),
		db:     db,
		tokens: tokens,
		mailer: mailer,
		h:      h,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

func (s *testServer) multipart(t *testing.T, method, path string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, file.name))
		hdr.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func pdfUpload(name string) *upload {
	return &upload{name: name, contentType: "application/pdf", data: samplePDF}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "x", Role: role, Location: "Pune"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedJob(t *testing.T, db *gorm.DB, postedBy, title string) *models.Job {
	t.Helper()
	j := &models.Job{
		Title:        title,
		Description:  title + " role",
		Requirements: "Go",
		Location:     "Pune",
		PostedBy:     postedBy,
	}
	require.NoError(t, db.Create(j).Error)
	return j
}

func seedSeeker(t *testing.T, db *gorm.DB, userID string) *models.JobSeeker {
	t.Helper()
	s := &models.JobSeeker{UserID: userID, Bio: "bio", Skills: []string{"Go"}}
	require.NoError(t, s.Validate())
	require.NoError(t, db.Create(s).Error)
	return s
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
