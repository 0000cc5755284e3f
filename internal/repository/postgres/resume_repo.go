package postgres

import (
	"context"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resumeRepo struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	m := resumeModel{
		Title:   resume.Title,
		Content: resume.Content,
		UserID:  resume.UserID,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return wrap("create resume", err)
	}
	resume.ID = m.ID
	resume.CreatedAt = m.CreatedAt
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	var m resumeModel
	if err := conn(ctx, r.db).First(&m, id).Error; err != nil {
		return nil, wrap("get resume", err)
	}
	return m.toDomain(), nil
}

func (r *resumeRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Resume, error) {
	var rows []resumeModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list resumes", err)
	}

	resumes := make([]domain.Resume, 0, len(rows))
	for i := range rows {
		resumes = append(resumes, *rows[i].toDomain())
	}
	return resumes, nil
}

func (r *resumeRepo) Update(ctx context.Context, id int64, patch domain.ResumePatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	return updateColumns(ctx, r.db, &resumeModel{}, "update resume", id, updates)
}

// Delete removes the resume; applications that used it keep existing with
// resume_id set to NULL.
func (r *resumeRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, &resumeModel{}, "delete resume", id)
}
