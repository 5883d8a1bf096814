package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/HireNest/internal/storage"
)

// ResumeStore is the part of storage.Store the services use.
type ResumeStore interface {
	Upload(ctx context.Context, f storage.File) (storage.Descriptor, error)
	DeleteDescriptor(ctx context.Context, d storage.Descriptor) error
}

// containsPattern builds a LIKE pattern matching s anywhere, with the
// wildcard characters in s escaped. Use it with "LIKE ? ESCAPE '\'".
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
