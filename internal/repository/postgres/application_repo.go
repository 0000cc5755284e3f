package postgres

import (
	"context"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	m := applicationModel{
		Title:       app.Title,
		Status:      app.Status,
		SubmittedAt: app.SubmittedAt,
		UserID:      app.UserID,
		JobID:       app.JobID,
		ResumeID:    app.ResumeID,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return wrap("create application", err)
	}
	app.ID = m.ID
	return nil
}

// GetByID loads the application with a summary of its job.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var m applicationModel
	if err := conn(ctx, r.db).Preload("Job").First(&m, id).Error; err != nil {
		return nil, wrap("get application", err)
	}
	return m.toDomain(), nil
}

// ListByOwner returns the newest applications first.
func (r *applicationRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Application, error) {
	var rows []applicationModel
	err := conn(ctx, r.db).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap("list applications", err)
	}

	apps := make([]domain.Application, 0, len(rows))
	for i := range rows {
		apps = append(apps, *rows[i].toDomain())
	}
	return apps, nil
}

func (r *applicationRepo) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.SubmittedAt != nil {
		updates["submitted_at"] = patch.SubmittedAt.UTC()
	}
	if patch.JobID != nil {
		updates["job_id"] = *patch.JobID
	}
	if patch.ResumeID != nil {
		updates["resume_id"] = *patch.ResumeID
	}
	return updateColumns(ctx, r.db, &applicationModel{}, "update application", id, updates)
}

// Delete removes the application and, by cascade, its cover letters.
func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, &applicationModel{}, "delete application", id)
}
