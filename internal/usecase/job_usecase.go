package usecase

import (
	"context"
	"time"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const msgJobNotFound = "Job not found"

type jobUsecase struct {
	jobs     domain.JobRepository
	tx       domain.Transactor
	validate *validator.Validate
	gate     *authz.Gate[domain.Job]
	now      func() time.Time
}

func NewJobUsecase(jobs domain.JobRepository, tx domain.Transactor, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobs:     jobs,
		tx:       tx,
		validate: validate,
		gate:     newJobGate(jobs),
		now:      time.Now,
	}
}

func newJobGate(jobs domain.JobRepository) *authz.Gate[domain.Job] {
	return authz.NewGate[domain.Job](func(ctx context.Context, id int64) (*domain.Job, int64, error) {
		j, err := jobs.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		return j, j.UserID, nil
	}, msgJobNotFound)
}

func (u *jobUsecase) Create(ctx context.Context, input domain.JobInput) (*domain.Job, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:          input.Title,
		Company:        input.Company,
		Location:       input.Location,
		JobURL:         input.JobURL,
		Description:    input.Description,
		DatePosted:     u.now().UTC(),
		Deadline:       input.Deadline,
		EmploymentType: domain.DefaultEmploymentType,
		UserID:         actor,
	}
	if input.DatePosted != nil {
		job.DatePosted = input.DatePosted.UTC()
	}
	if et := trimmed(input.EmploymentType); et != nil && *et != "" {
		job.EmploymentType = *et
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.jobs.Create(ctx, job)
	})
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return u.reload(ctx, job.ID)
}

func (u *jobUsecase) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.gate.Authorize(ctx, actor, id)
}

func (u *jobUsecase) List(ctx context.Context) ([]domain.Job, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobs.ListByOwner(ctx, actor)
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return jobs, nil
}

func (u *jobUsecase) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, patch); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.jobs.Update(ctx, id, patch)
	})
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return u.reload(ctx, id)
}

// Delete removes the job together with its applications.
func (u *jobUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.jobs.Delete(ctx, id)
	})
	return storeError(err, msgJobNotFound)
}

func (u *jobUsecase) reload(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return job, nil
}
