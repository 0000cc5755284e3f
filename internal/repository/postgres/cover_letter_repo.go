package postgres

import (
	"context"
	"time"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type coverLetterRepo struct {
	db *gorm.DB
}

func NewCoverLetterRepository(db *gorm.DB) domain.CoverLetterRepository {
	return &coverLetterRepo{db: db}
}

// coverLetterRow is a cover letter joined with the owner of its application.
type coverLetterRow struct {
	ID            int64
	Title         string
	Language      *string
	Content       string
	Status        string
	CreatedAt     time.Time
	ApplicationID int64
	OwnerID       int64
}

const coverLetterColumns = `c.id, c.title, c.language, c.content, c.status, c.created_at,
	c.application_id, a.user_id AS owner_id`

func (r *coverLetterRepo) joined(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Table("coverletters AS c").
		Select(coverLetterColumns).
		Joins("JOIN applications a ON a.id = c.application_id")
}

func (r *coverLetterRepo) Create(ctx context.Context, letter *domain.CoverLetter) error {
	m := coverLetterModel{
		Title:         letter.Title,
		Language:      letter.Language,
		Content:       letter.Content,
		Status:        letter.Status,
		ApplicationID: letter.ApplicationID,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return wrap("create cover letter", err)
	}
	letter.ID = m.ID
	letter.CreatedAt = m.CreatedAt
	return nil
}

func (r *coverLetterRepo) GetByID(ctx context.Context, id int64) (*domain.CoverLetter, int64, error) {
	var row coverLetterRow
	res := r.joined(ctx).Where("c.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, 0, wrap("get cover letter", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, 0, domain.ErrNotFound
	}
	return row.toDomain(), row.OwnerID, nil
}

func (r *coverLetterRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.CoverLetter, error) {
	var rows []coverLetterRow
	if err := r.joined(ctx).Where("a.user_id = ?", userID).Order("c.id").Scan(&rows).Error; err != nil {
		return nil, wrap("list cover letters", err)
	}

	letters := make([]domain.CoverLetter, 0, len(rows))
	for i := range rows {
		letters = append(letters, *rows[i].toDomain())
	}
	return letters, nil
}

func (r *coverLetterRepo) Update(ctx context.Context, id int64, patch domain.CoverLetterPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Language != nil {
		updates["language"] = *patch.Language
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.ApplicationID != nil {
		updates["application_id"] = *patch.ApplicationID
	}
	return updateColumns(ctx, r.db, &coverLetterModel{}, "update cover letter", id, updates)
}

func (r *coverLetterRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, &coverLetterModel{}, "delete cover letter", id)
}

func (row *coverLetterRow) toDomain() *domain.CoverLetter {
	return &domain.CoverLetter{
		ID:            row.ID,
		Title:         row.Title,
		Language:      row.Language,
		Content:       row.Content,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		ApplicationID: row.ApplicationID,
	}
}
