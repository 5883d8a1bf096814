// Package storage keeps uploaded resumes in a primary remote store (Google
// Drive or Cloud Storage) and falls back to a local directory when that
// store rejects an upload.
package storage

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"regexp"
)

// Sources recorded in a Descriptor.
const (
	SourceDrive = "google_drive"
	SourceGCS   = "gcs"
	SourceLocal = "local_storage"
)

// LocalPrefix marks file ids that live in the local store.
const LocalPrefix = "local_"

var (
	ErrInvalidType = errors.New("only PDF files are allowed for resumes")
	ErrTooLarge    = errors.New("resume file is too large")
	ErrEmpty       = errors.New("resume file is empty")
	ErrNoBackend   = errors.New("no storage backend configured for file")
)

// File is an upload payload held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// Descriptor is returned for every stored file, whichever backend took it.
type Descriptor struct {
	FileID      string `json:"fileId"`
	FileName    string `json:"fileName"`
	WebViewLink string `json:"webViewLink"`
	Source      string `json:"source"`
	LocalPath   string `json:"localPath,omitempty"`
}

// Backend is one place resumes can be written to.
type Backend interface {
	Name() string
	Upload(ctx context.Context, f File) (Descriptor, error)
	Delete(ctx context.Context, fileID string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeName replaces everything outside [a-zA-Z0-9.-] with '_'.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// IsValidationError reports whether err was produced by ValidateResume.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidType) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrEmpty)
}

// ReadMultipart loads an uploaded form file, reading at most limit+1 bytes so
// oversized bodies are detected without buffering them whole.
func ReadMultipart(fh *multipart.FileHeader, limit int64) (File, error) {
	if fh.Size > limit {
		return File{}, ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return File{}, err
	}
	if int64(len(data)) > limit {
		return File{}, ErrTooLarge
	}
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
