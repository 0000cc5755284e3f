package usecase

import (
	"context"
	"time"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const msgApplicationNotFound = "Application not found"

type applicationUsecase struct {
	applications domain.ApplicationRepository
	tx           domain.Transactor
	validate     *validator.Validate
	gate         *authz.Gate[domain.Application]
	jobGate      *authz.Gate[domain.Job]
	resumeGate   *authz.Gate[domain.Resume]
	now          func() time.Time
}

func NewApplicationUsecase(
	applications domain.ApplicationRepository,
	jobs domain.JobRepository,
	resumes domain.ResumeRepository,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applications: applications,
		tx:           tx,
		validate:     validate,
		gate:         newApplicationGate(applications),
		jobGate:      newJobGate(jobs),
		resumeGate:   newResumeGate(resumes),
		now:          time.Now,
	}
}

func newApplicationGate(applications domain.ApplicationRepository) *authz.Gate[domain.Application] {
	return authz.NewGate[domain.Application](func(ctx context.Context, id int64) (*domain.Application, int64, error) {
		a, err := applications.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		return a, a.UserID, nil
	}, msgApplicationNotFound)
}

func (u *applicationUsecase) Create(ctx context.Context, input domain.ApplicationInput) (*domain.Application, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	submitted := u.now().UTC()
	app := &domain.Application{
		Title:       input.Title,
		Status:      domain.DefaultApplicationStatus,
		SubmittedAt: &submitted,
		UserID:      actor,
		JobID:       input.JobID,
		ResumeID:    input.ResumeID,
	}
	if input.Status != nil {
		app.Status = *input.Status
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.checkReferences(ctx, actor, &input.JobID, input.ResumeID); err != nil {
			return err
		}
		return u.applications.Create(ctx, app)
	})
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	return u.reload(ctx, app.ID)
}

func (u *applicationUsecase) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.gate.Authorize(ctx, actor, id)
}

// List returns the caller's applications, newest first.
func (u *applicationUsecase) List(ctx context.Context) ([]domain.Application, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := u.applications.ListByOwner(ctx, actor)
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	return apps, nil
}

func (u *applicationUsecase) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
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
		if err := u.checkReferences(ctx, actor, patch.JobID, patch.ResumeID); err != nil {
			return err
		}
		return u.applications.Update(ctx, id, patch)
	})
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	return u.reload(ctx, id)
}

// Delete removes the application and its cover letters.
func (u *applicationUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.applications.Delete(ctx, id)
	})
	return storeError(err, msgApplicationNotFound)
}

// checkReferences makes sure a referenced job or resume belongs to the actor.
func (u *applicationUsecase) checkReferences(ctx context.Context, actor int64, jobID, resumeID *int64) error {
	if jobID != nil {
		if _, err := u.jobGate.Authorize(ctx, actor, *jobID); err != nil {
			return err
		}
	}
	if resumeID != nil {
		if _, err := u.resumeGate.Authorize(ctx, actor, *resumeID); err != nil {
			return err
		}
	}
	return nil
}

func (u *applicationUsecase) reload(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := u.applications.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	return app, nil
}
