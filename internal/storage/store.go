package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/HireNest/internal/metrics"
	"go.uber.org/zap"
)

// DefaultMaxBytes is the resume size limit when none is configured.
const DefaultMaxBytes = 5 * 1024 * 1024

// Store validates resumes and routes them to the primary backend, falling
// back to the local directory once on any primary failure.
type Store struct {
	primary    Backend
	local      *LocalBackend
	keepBackup bool
	maxBytes   int64
	logger     *zap.Logger
}

type Option func(*Store)

// WithPrimary sets the remote backend tried before the local directory.
func WithPrimary(b Backend) Option {
	return func(s *Store) { s.primary = b }
}

// WithLocalBackup keeps a local copy of files the primary accepted.
func WithLocalBackup(enabled bool) Option {
	return func(s *Store) { s.keepBackup = enabled }
}

func WithMaxBytes(n int64) Option {
	return func(s *Store) { s.maxBytes = n }
}

func NewStore(local *LocalBackend, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		local:    local,
		maxBytes: DefaultMaxBytes,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) MaxBytes() int64 { return s.maxBytes }

// PrimaryName is the primary backend's source name, or the local one when no
// primary is configured.
func (s *Store) PrimaryName() string {
	if s.primary == nil {
		return s.local.Name()
	}
	return s.primary.Name()
}

// Upload validates f and stores it. The returned Descriptor has the same
// shape whichever backend succeeded.
func (s *Store) Upload(ctx context.Context, f File) (Descriptor, error) {
	if err := ValidateResume(f, s.maxBytes); err != nil {
		return Descriptor{}, err
	}

	if s.primary != nil {
		d, err := s.primary.Upload(ctx, f)
		metrics.RecordUpload(s.primary.Name(), err)
		if err == nil {
			s.logger.Info("Resume uploaded",
				zap.String("backend", s.primary.Name()),
				zap.String("file_id", d.FileID),
				zap.String("file_name", f.Name))
			if s.keepBackup {
				s.backup(&d, f)
			}
			return d, nil
		}
		s.logger.Warn("Primary upload failed, falling back to local storage",
			zap.String("backend", s.primary.Name()),
			zap.String("file_name", f.Name),
			zap.Error(err))
	}

	d, err := s.local.Upload(ctx, f)
	metrics.RecordUpload(s.local.Name(), err)
	if err != nil {
		return Descriptor{}, fmt.Errorf("upload resume: %w", err)
	}
	s.logger.Info("Resume saved locally",
		zap.String("file_id", d.FileID),
		zap.String("path", d.LocalPath))
	return d, nil
}

func (s *Store) backup(d *Descriptor, f File) {
	path, err := s.local.Save(d.FileID, f)
	if err != nil {
		s.logger.Warn("Local backup failed", zap.String("file_id", d.FileID), zap.Error(err))
		return
	}
	d.LocalPath = path
}

// Delete removes a file given only its id; local_ ids go to the local
// store, everything else to the primary.
func (s *Store) Delete(ctx context.Context, fileID string) error {
	return s.DeleteDescriptor(ctx, Descriptor{FileID: fileID})
}

// DeleteDescriptor removes the file d describes. The recorded source wins
// over the id prefix when present.
func (s *Store) DeleteDescriptor(ctx context.Context, d Descriptor) error {
	if d.FileID == "" {
		return nil
	}

	if d.Source == SourceLocal || (d.Source == "" && strings.HasPrefix(d.FileID, LocalPrefix)) {
		err := s.local.Delete(ctx, d.FileID)
		metrics.RecordDelete(s.local.Name(), err)
		return err
	}

	if s.primary == nil {
		return fmt.Errorf("%w: %s", ErrNoBackend, d.FileID)
	}
	if d.Source != "" && d.Source != s.primary.Name() {
		s.logger.Warn("Deleting file recorded under a different backend",
			zap.String("file_id", d.FileID),
			zap.String("recorded", d.Source),
			zap.String("primary", s.primary.Name()))
	}

	err := s.primary.Delete(ctx, d.FileID)
	metrics.RecordDelete(s.primary.Name(), err)
	if err != nil {
		return fmt.Errorf("delete %s from %s: %w", d.FileID, s.primary.Name(), err)
	}

	if err := s.local.Delete(ctx, d.FileID); err != nil {
		s.logger.Warn("Local backup cleanup failed", zap.String("file_id", d.FileID), zap.Error(err))
	}
	return nil
}
