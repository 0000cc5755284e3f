package postgres

import (
	"context"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	m := jobModel{
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		JobURL:         job.JobURL,
		Description:    job.Description,
		DatePosted:     job.DatePosted,
		Deadline:       job.Deadline,
		EmploymentType: job.EmploymentType,
		UserID:         job.UserID,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return wrap("create job", err)
	}
	job.ID = m.ID
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var m jobModel
	if err := conn(ctx, r.db).First(&m, id).Error; err != nil {
		return nil, wrap("get job", err)
	}
	return m.toDomain(), nil
}

func (r *jobRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Job, error) {
	var rows []jobModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list jobs", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, *rows[i].toDomain())
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Company != nil {
		updates["company"] = *patch.Company
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.JobURL != nil {
		updates["job_url"] = *patch.JobURL
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DatePosted != nil {
		updates["date_posted"] = patch.DatePosted.UTC()
	}
	if patch.Deadline != nil {
		updates["deadline"] = patch.Deadline.UTC()
	}
	if patch.EmploymentType != nil {
		updates["employment_type"] = *patch.EmploymentType
	}
	return updateColumns(ctx, r.db, &jobModel{}, "update job", id, updates)
}

// Delete removes the job and, by cascade, its applications.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, &jobModel{}, "delete job", id)
}
