package domain

import (
	"context"
	"time"
)

const DefaultEmploymentType = "Full-time"

type Job struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       *string    `json:"location"`
	JobURL         *string    `json:"job_url"`
	Description    *string    `json:"description"`
	DatePosted     time.Time  `json:"date_posted"`
	Deadline       *time.Time `json:"deadline"`
	EmploymentType string     `json:"employment_type"`
	UserID         int64      `json:"user_id"`
}

type JobInput struct {
	Title          string     `json:"title" validate:"required,notblank,max=255"`
	Company        string     `json:"company" validate:"required,notblank,max=255"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	JobURL         *string    `json:"job_url" validate:"omitempty,max=500"`
	Description    *string    `json:"description"`
	DatePosted     *time.Time `json:"date_posted"`
	Deadline       *time.Time `json:"deadline"`
	EmploymentType *string    `json:"employment_type" validate:"omitempty,max=100"`
}

type JobPatch struct {
	Title          *string    `json:"title" validate:"omitempty,notblank,max=255"`
	Company        *string    `json:"company" validate:"omitempty,notblank,max=255"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	JobURL         *string    `json:"job_url" validate:"omitempty,max=500"`
	Description    *string    `json:"description"`
	DatePosted     *time.Time `json:"date_posted"`
	Deadline       *time.Time `json:"deadline"`
	EmploymentType *string    `json:"employment_type" validate:"omitempty,notblank,max=100"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	ListByOwner(ctx context.Context, userID int64) ([]Job, error)
	Update(ctx context.Context, id int64, patch JobPatch) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	Create(ctx context.Context, input JobInput) (*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, id int64, patch JobPatch) (*Job, error)
	Delete(ctx context.Context, id int64) error
}
