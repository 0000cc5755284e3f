// Package pdf turns uploaded PDF documents into plain text.
package pdf

import (
	"bytes"
	"context"
	"strings"

	"job-tracker-backend/pkg/logger"

	lpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor implements domain.TextExtractor.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the trimmed text of every page, or "" when the document
// cannot be read. Malformed input never panics the caller.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string) {
	if len(data) == 0 || ctx.Err() != nil {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Warn("pdf extraction panicked", zap.Any("panic", r))
			text = ""
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Log.Warn("failed to open pdf", zap.Error(err))
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		logger.Log.Warn("failed to extract pdf text", zap.Error(err))
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		logger.Log.Warn("failed to read pdf text", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(buf.String())
}
