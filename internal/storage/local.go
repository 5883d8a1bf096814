package storage

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// LocalBackend writes resumes into a directory served under /uploads.
type LocalBackend struct {
	dir     string
	baseURL string
	now     func() time.Time
}

func NewLocalBackend(dir, baseURL string) *LocalBackend {
	return &LocalBackend{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (b *LocalBackend) Name() string { return SourceLocal }

// Dir is the directory files are written to.
func (b *LocalBackend) Dir() string { return b.dir }

// Upload stores f under a fresh local_ id.
func (b *LocalBackend) Upload(ctx context.Context, f File) (Descriptor, error) {
	id := b.newID()
	path, err := b.Save(id, f)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		FileID:      id,
		FileName:    f.Name,
		WebViewLink: b.baseURL + "/uploads/" + filepath.Base(path),
		Source:      SourceLocal,
		LocalPath:   path,
	}, nil
}

// Save writes f as "<fileID>_<name>" and returns the path. It is also used
// for backups of files held by a remote backend.
func (b *LocalBackend) Save(fileID string, f File) (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}
	path := filepath.Join(b.dir, localName(fileID, f.Name))
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Delete removes every file stored for fileID. A missing file or directory is
// not an error.
func (b *LocalBackend) Delete(ctx context.Context, fileID string) error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read uploads directory: %w", err)
	}

	prefix := SanitizeName(fileID) + "_"
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (b *LocalBackend) newID() string {
	var sb strings.Builder
	sb.WriteString(LocalPrefix)
	sb.WriteString(strconv.FormatInt(b.now().UnixMilli(), 10))
	sb.WriteByte('_')
	for i := 0; i < 9; i++ {
		sb.WriteByte(base36[rand.Intn(len(base36))])
	}
	return sb.String()
}

func localName(fileID, name string) string {
	return SanitizeName(fileID) + "_" + SanitizeName(name)
}
