package domain

import (
	"fmt"
	"mime"
	"strings"

	"bimbingan_service/internal/errdefs"
)

const MediaTypePDF = "application/pdf"

var ErrNotPDF = fmt.Errorf("document must be a PDF: %w", errdefs.ErrInvalidInput)

// DocumentRef describes an uploaded blob. The engine never reads the blob itself.
type DocumentRef struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MediaType    string `json:"media_type"`
}

func (d DocumentRef) IsPDF() bool {
	mediaType, _, err := mime.ParseMediaType(d.MediaType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, MediaTypePDF)
}

func (d DocumentRef) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("document path is empty: %w", errdefs.ErrInvalidInput)
	}
	if !d.IsPDF() {
		return ErrNotPDF
	}
	return nil
}
