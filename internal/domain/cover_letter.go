package domain

import (
	"context"
	"time"
)

const DefaultCoverLetterStatus = "Draft"

type CoverLetter struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Language      *string   `json:"language"`
	Content       string    `json:"content"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID int64     `json:"application_id"`
}

// Content length is counted in characters, not bytes.
type CoverLetterInput struct {
	Title         string  `json:"title" validate:"required,notblank,max=255"`
	Language      *string `json:"language" validate:"omitempty,max=50"`
	Content       string  `json:"content" validate:"required,notblank,max=8000"`
	ApplicationID int64   `json:"application_id" validate:"required,gt=0"`
}

type CoverLetterPatch struct {
	Title         *string `json:"title" validate:"omitempty,notblank,max=255"`
	Language      *string `json:"language" validate:"omitempty,max=50"`
	Content       *string `json:"content" validate:"omitempty,notblank,max=8000"`
	ApplicationID *int64  `json:"application_id" validate:"omitempty,gt=0"`
}

type CoverLetterRepository interface {
	Create(ctx context.Context, letter *CoverLetter) error
	// GetByID also returns the owner, resolved through the application.
	GetByID(ctx context.Context, id int64) (*CoverLetter, int64, error)
	ListByOwner(ctx context.Context, userID int64) ([]CoverLetter, error)
	Update(ctx context.Context, id int64, patch CoverLetterPatch) error
	Delete(ctx context.Context, id int64) error
}

type CoverLetterUsecase interface {
	Create(ctx context.Context, input CoverLetterInput) (*CoverLetter, error)
	GetByID(ctx context.Context, id int64) (*CoverLetter, error)
	List(ctx context.Context) ([]CoverLetter, error)
	Update(ctx context.Context, id int64, patch CoverLetterPatch) (*CoverLetter, error)
	Delete(ctx context.Context, id int64) error
}
