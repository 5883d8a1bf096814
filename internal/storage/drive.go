package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveBackend uploads resumes into a Google Drive folder using a service
// account.
type DriveBackend struct {
	files    *drive.FilesService
	folderID string
}

// NewDriveBackend authenticates with the service account key at
// credentialsFile, restricted to the drive.file scope.
func NewDriveBackend(ctx context.Context, credentialsFile, folderID string, opts ...option.ClientOption) (*DriveBackend, error) {
	base := []option.ClientOption{option.WithScopes(drive.DriveFileScope)}
	if credentialsFile != "" {
		base = append(base, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(base, opts...)

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveBackend{files: svc.Files, folderID: folderID}, nil
}

func (b *DriveBackend) Name() string { return SourceDrive }

func (b *DriveBackend) Upload(ctx context.Context, f File) (Descriptor, error) {
	meta := &drive.File{
		Name:    f.Name,
		Parents: []string{b.folderID},
	}
	created, err := b.files.Create(meta).
		Media(bytes.NewReader(f.Data), googleapi.ContentType(f.ContentType)).
		Fields("id", "name", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return Descriptor{}, fmt.Errorf("drive upload: %w", err)
	}
	return Descriptor{
		FileID:      created.Id,
		FileName:    created.Name,
		WebViewLink: created.WebViewLink,
		Source:      SourceDrive,
	}, nil
}

// Delete removes the Drive file; a file that is already gone is not an error.
func (b *DriveBackend) Delete(ctx context.Context, fileID string) error {
	err := b.files.Delete(fileID).Context(ctx).Do()
	if isGoogleNotFound(err) {
		return nil
	}
	return err
}

func isGoogleNotFound(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusNotFound
}
