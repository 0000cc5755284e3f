package usecase

import (
	"context"
	"strings"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
)

const msgFeedbackFailed = "AI feedback generation failed"

type feedbackUsecase struct {
	generator  domain.FeedbackGenerator
	jobGate    *authz.Gate[domain.Job]
	resumeGate *authz.Gate[domain.Resume]
	letterGate *authz.Gate[domain.CoverLetter]
}

// NewFeedbackUsecase accepts a nil generator when no AI provider is configured.
func NewFeedbackUsecase(
	generator domain.FeedbackGenerator,
	jobs domain.JobRepository,
	resumes domain.ResumeRepository,
	letters domain.CoverLetterRepository,
) domain.FeedbackUsecase {
	return &feedbackUsecase{
		generator:  generator,
		jobGate:    newJobGate(jobs),
		resumeGate: newResumeGate(resumes),
		letterGate: newCoverLetterGate(letters),
	}
}

// Generate resolves the three documents and asks the generator for a review.
// Nothing here runs inside a transaction.
func (u *feedbackUsecase) Generate(ctx context.Context, req domain.FeedbackRequest) (*domain.Feedback, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}

	resume := strings.TrimSpace(req.Resume)
	if resume == "" && req.ResumeID != nil {
		r, err := u.resumeGate.Authorize(ctx, actor, *req.ResumeID)
		if err != nil {
			return nil, err
		}
		resume = strings.TrimSpace(r.Content)
	}

	job := strings.TrimSpace(req.Job)
	if job == "" && req.JobID != nil {
		j, err := u.jobGate.Authorize(ctx, actor, *req.JobID)
		if err != nil {
			return nil, err
		}
		job = describeJob(j)
	}

	letter := strings.TrimSpace(req.CoverLetter)
	if letter == "" && req.CoverLetterID != nil {
		c, err := u.letterGate.Authorize(ctx, actor, *req.CoverLetterID)
		if err != nil {
			return nil, err
		}
		letter = strings.TrimSpace(c.Content)
	}

	var missing []string
	if resume == "" {
		missing = append(missing, "resume")
	}
	if job == "" {
		missing = append(missing, "job")
	}
	if letter == "" {
		missing = append(missing, "cover_letter")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("Missing required fields", missing)
	}

	if u.generator == nil {
		return nil, apperror.Service("AI feedback is not configured", nil)
	}

	feedback, err := u.generator.Generate(ctx, resume, job, letter)
	if err != nil {
		return nil, apperror.Service(msgFeedbackFailed, err)
	}
	return feedback, nil
}

// describeJob flattens a stored job into the text given to the reviewer.
func describeJob(j *domain.Job) string {
	var b strings.Builder
	b.WriteString(j.Title)
	b.WriteString(" at ")
	b.WriteString(j.Company)
	if j.Location != nil && *j.Location != "" {
		b.WriteString(" (")
		b.WriteString(*j.Location)
		b.WriteString(")")
	}
	if j.Description != nil && strings.TrimSpace(*j.Description) != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(*j.Description))
	}
	return b.String()
}
