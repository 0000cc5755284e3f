package security

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const pdfMIME = "application/pdf"

// pdfMagic is the %PDF header every PDF starts with.
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Lowercased file extension
	DetectedMIME string // MIME type sniffed from the content
	Error        string // Error message if validation failed
}

// ValidatePDF performs 3-layer validation of an uploaded document:
// 1. Extension must be .pdf
// 2. Content must start with the PDF magic bytes
// 3. Sniffed MIME type must be application/pdf (the client header is ignored)
func ValidatePDF(filename string, data []byte) FileValidationResult {
	detected := mimetype.Detect(data)
	result := FileValidationResult{
		DetectedMIME: detected.String(),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if ext != ".pdf" {
		result.Error = "Only PDF files are supported"
		return result
	}

	if len(data) < len(pdfMagic) || !bytes.HasPrefix(data, pdfMagic) {
		result.Error = "Invalid file type"
		return result
	}

	if !detected.Is(pdfMIME) {
		result.Error = "Invalid file type"
		return result
	}

	result.Valid = true
	return result
}
