package storage

import (
	"fmt"
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

const pdfMIME = "application/pdf"

// ValidateResume accepts non-empty PDFs up to maxBytes. Both the declared
// content type and the sniffed content must be PDF.
func ValidateResume(f File, maxBytes int64) error {
	if f.Size() == 0 {
		return ErrEmpty
	}
	if f.Size() > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, f.Size(), maxBytes)
	}

	declared, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil || declared != pdfMIME {
		return ErrInvalidType
	}
	if !mimetype.Detect(f.Data).Is(pdfMIME) {
		return ErrInvalidType
	}
	return nil
}
