package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/HireNest/internal/database"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/justsurfingit/HireNest/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func pdf(name string) *storage.File {
	return &storage.File{Name: name, ContentType: "application/pdf", Data: samplePDF}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hirenest.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestStore(t *testing.T) (*storage.Store, *storage.LocalBackend) {
	t.Helper()
	local := storage.NewLocalBackend(t.TempDir(), "http://localhost:5002")
	return storage.NewStore(local, zap.NewNop()), local
}

// recordingStore wraps a ResumeStore and can fail uploads or deletes.
type recordingStore struct {
	ResumeStore
	uploadErr error
	deleteErr error
	deleted   []string
}

func (r *recordingStore) Upload(ctx context.Context, f storage.File) (storage.Descriptor, error) {
	if r.uploadErr != nil {
		return storage.Descriptor{}, r.uploadErr
	}
	return r.ResumeStore.Upload(ctx, f)
}

func (r *recordingStore) DeleteDescriptor(ctx context.Context, d storage.Descriptor) error {
	r.deleted = append(r.deleted, d.FileID)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.ResumeStore.DeleteDescriptor(ctx, d)
}

var errStoreDown = errors.New("store down")

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "x", Role: role, Location: "Pune"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedJob(t *testing.T, db *gorm.DB, postedBy, title, location string, age time.Duration) *models.Job {
	t.Helper()
	j := &models.Job{
		Title:        title,
		Description:  title + " role",
		Requirements: "Experience with " + title,
		Location:     location,
		PostedBy:     postedBy,
		CreatedAt:    time.Now().Add(-age),
	}
	require.NoError(t, db.Create(j).Error)
	return j
}

func seedSeeker(t *testing.T, db *gorm.DB, userID string, skills []string, prefs models.JobPreferences) *models.JobSeeker {
	t.Helper()
	s := &models.JobSeeker{UserID: userID, Bio: "bio", Skills: skills, JobPreferences: prefs}
	require.NoError(t, s.Validate())
	require.NoError(t, db.Create(s).Error)
	return s
}
