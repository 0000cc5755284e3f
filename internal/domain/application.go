package domain

import (
	"context"
	"time"
)

const DefaultApplicationStatus = "Pending"

// Application tracks one submission against a Job, optionally with a Resume.
type Application struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Status      string      `json:"status"`
	SubmittedAt *time.Time  `json:"submitted_at"`
	UserID      int64       `json:"user_id"`
	JobID       int64       `json:"job_id"`
	ResumeID    *int64      `json:"resume_id"`
	Job         *JobSummary `json:"job,omitempty"`
}

// JobSummary is the slice of a Job embedded in application responses.
type JobSummary struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	EmploymentType string     `json:"employment_type"`
	JobURL         *string    `json:"job_url"`
	Deadline       *time.Time `json:"deadline"`
}

// ApplicationInput creates an application; submitted_at is set by the server.
type ApplicationInput struct {
	Title    string  `json:"title" validate:"required,notblank,max=255"`
	JobID    int64   `json:"job_id" validate:"required,gt=0"`
	ResumeID *int64  `json:"resume_id" validate:"omitempty,gt=0"`
	Status   *string `json:"status" validate:"omitempty,notblank,max=100"`
}

type ApplicationPatch struct {
	Title       *string    `json:"title" validate:"omitempty,notblank,max=255"`
	Status      *string    `json:"status" validate:"omitempty,notblank,max=100"`
	SubmittedAt *time.Time `json:"submitted_at"`
	JobID       *int64     `json:"job_id" validate:"omitempty,gt=0"`
	ResumeID    *int64     `json:"resume_id" validate:"omitempty,gt=0"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByOwner(ctx context.Context, userID int64) ([]Application, error)
	Update(ctx context.Context, id int64, patch ApplicationPatch) error
	Delete(ctx context.Context, id int64) error
}

type ApplicationUsecase interface {
	Create(ctx context.Context, input ApplicationInput) (*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	Update(ctx context.Context, id int64, patch ApplicationPatch) (*Application, error)
	Delete(ctx context.Context, id int64) error
}
