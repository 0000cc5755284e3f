package usecase

import (
	"context"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const msgResumeNotFound = "Resume not found"

type resumeUsecase struct {
	resumes  domain.ResumeRepository
	tx       domain.Transactor
	validate *validator.Validate
	gate     *authz.Gate[domain.Resume]
}

func NewResumeUsecase(resumes domain.ResumeRepository, tx domain.Transactor, validate *validator.Validate) domain.ResumeUsecase {
	return &resumeUsecase{
		resumes:  resumes,
		tx:       tx,
		validate: validate,
		gate:     newResumeGate(resumes),
	}
}

func newResumeGate(resumes domain.ResumeRepository) *authz.Gate[domain.Resume] {
	return authz.NewGate[domain.Resume](func(ctx context.Context, id int64) (*domain.Resume, int64, error) {
		r, err := resumes.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		return r, r.UserID, nil
	}, msgResumeNotFound)
}

func (u *resumeUsecase) Create(ctx context.Context, input domain.ResumeInput) (*domain.Resume, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	resume := &domain.Resume{
		Title:   input.Title,
		Content: input.Content,
		UserID:  actor,
	}
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.resumes.Create(ctx, resume)
	})
	if err != nil {
		return nil, storeError(err, msgResumeNotFound)
	}
	return resume, nil
}

func (u *resumeUsecase) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.gate.Authorize(ctx, actor, id)
}

func (u *resumeUsecase) List(ctx context.Context) ([]domain.Resume, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	resumes, err := u.resumes.ListByOwner(ctx, actor)
	if err != nil {
		return nil, storeError(err, msgResumeNotFound)
	}
	return resumes, nil
}

func (u *resumeUsecase) Update(ctx context.Context, id int64, patch domain.ResumePatch) (*domain.Resume, error) {
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
		return u.resumes.Update(ctx, id, patch)
	})
	if err != nil {
		return nil, storeError(err, msgResumeNotFound)
	}

	resume, err := u.resumes.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgResumeNotFound)
	}
	return resume, nil
}

// Delete removes the resume; applications referencing it lose the link.
func (u *resumeUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.resumes.Delete(ctx, id)
	})
	return storeError(err, msgResumeNotFound)
}
