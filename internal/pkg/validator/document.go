package validator

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tnega/gosearch/internal/entity"
)

const pdfExtension = ".pdf"

// DocumentValidator checks upload candidates before submission.
type DocumentValidator struct {
	maxFileSize int64
}

func NewDocumentValidator(maxFileSize int64) *DocumentValidator {
	return &DocumentValidator{maxFileSize: maxFileSize}
}

// IsCandidate reports whether a directory entry is an upload candidate:
// a regular file whose lowercased name ends in ".pdf".
func (v *DocumentValidator) IsCandidate(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	return strings.HasSuffix(strings.ToLower(entry.Name()), pdfExtension)
}

// Validate rejects files that the provider would refuse anyway.
func (v *DocumentValidator) Validate(filename string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(filepath.Base(filename)), pdfExtension) {
		return fmt.Errorf("%w: %s", entity.ErrInvalidExtension, filename)
	}

	if v.maxFileSize > 0 && size > v.maxFileSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", entity.ErrFileTooLarge, filename, size, v.maxFileSize)
	}

	return nil
}
