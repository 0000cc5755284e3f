package domain

import "context"

// Feedback is the structured review of a cover letter.
type Feedback struct {
	Strengths    []string `json:"strengths"`
	Gaps         []string `json:"gaps"`
	Suggestions  []string `json:"suggestions"`
	ToneFeedback string   `json:"tone_feedback"`
}

// FeedbackRequest takes raw texts, stored entity ids, or a mix of both.
// A raw text wins over the id of the same document.
type FeedbackRequest struct {
	Resume        string `json:"resume"`
	Job           string `json:"job"`
	CoverLetter   string `json:"cover_letter"`
	ResumeID      *int64 `json:"resume_id"`
	JobID         *int64 `json:"job_id"`
	CoverLetterID *int64 `json:"cover_letter_id"`
}

type FeedbackGenerator interface {
	Generate(ctx context.Context, resume, job, coverLetter string) (*Feedback, error)
}

// TextExtractor returns the plain text of a PDF, or "" when it cannot.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) string
}

type FeedbackUsecase interface {
	Generate(ctx context.Context, req FeedbackRequest) (*Feedback, error)
}
