package domain

import (
	"context"
	"time"
)

type Resume struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
}

type ResumeInput struct {
	Title   string `json:"title" validate:"required,notblank,max=255"`
	Content string `json:"content" validate:"required,notblank"`
}

type ResumePatch struct {
	Title   *string `json:"title" validate:"omitempty,notblank,max=255"`
	Content *string `json:"content" validate:"omitempty,notblank"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id int64) (*Resume, error)
	ListByOwner(ctx context.Context, userID int64) ([]Resume, error)
	Update(ctx context.Context, id int64, patch ResumePatch) error
	Delete(ctx context.Context, id int64) error
}

type ResumeUsecase interface {
	Create(ctx context.Context, input ResumeInput) (*Resume, error)
	GetByID(ctx context.Context, id int64) (*Resume, error)
	List(ctx context.Context) ([]Resume, error)
	Update(ctx context.Context, id int64, patch ResumePatch) (*Resume, error)
	Delete(ctx context.Context, id int64) error
}
