package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInvalidJSON = "Invalid JSON body"

var errFileTooLarge = apperror.New(http.StatusRequestEntityTooLarge, "File too large", nil)

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid id")
	}
	return id, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}

// formString returns a pointer to the form value when the field was sent.
func formString(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

func formInt(c *gin.Context, key string) (*int64, error) {
	v, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil, apperror.Validation(key+" must be a number", []string{key})
	}
	return &n, nil
}

// pdfUploads reads the optional "file" part of a multipart request and
// turns it into text.
type pdfUploads struct {
	extractor domain.TextExtractor
	maxBytes  int64
}

// text returns ok=false when no file was attached.
func (u pdfUploads) text(c *gin.Context) (string, bool, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", false, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", true, errFileTooLarge
		}
		return "", false, apperror.BadRequest("Invalid multipart form")
	}
	if header.Size > u.maxBytes {
		return "", true, errFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return "", true, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxBytes+1))
	if err != nil {
		return "", true, apperror.Internal(err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", true, errFileTooLarge
	}

	if res := security.ValidatePDF(header.Filename, data); !res.Valid {
		logger.Log.Info("rejected upload",
			zap.String("filename", header.Filename),
			zap.String("detected_mime", res.DetectedMIME),
			zap.String("reason", res.Error),
		)
		return "", true, apperror.BadRequest(res.Error)
	}

	text := u.extractor.Extract(c.Request.Context(), data)
	if text == "" {
		return "", true, apperror.BadRequest("Could not extract text from PDF")
	}
	return text, true, nil
}

// limitBody caps multipart bodies before gin parses them.
func (u pdfUploads) limitBody(c *gin.Context) {
	// room for the other form fields next to the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, u.maxBytes+1<<20)
}
