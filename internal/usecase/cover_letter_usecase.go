package usecase

import (
	"context"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const msgCoverLetterNotFound = "Cover letter not found"

type coverLetterUsecase struct {
	letters  domain.CoverLetterRepository
	tx       domain.Transactor
	validate *validator.Validate
	gate     *authz.Gate[domain.CoverLetter]
	appGate  *authz.Gate[domain.Application]
}

func NewCoverLetterUsecase(
	letters domain.CoverLetterRepository,
	applications domain.ApplicationRepository,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.CoverLetterUsecase {
	return &coverLetterUsecase{
		letters:  letters,
		tx:       tx,
		validate: validate,
		gate:     newCoverLetterGate(letters),
		appGate:  newApplicationGate(applications),
	}
}

// Cover letters have no user column; the owner comes from the application.
func newCoverLetterGate(letters domain.CoverLetterRepository) *authz.Gate[domain.CoverLetter] {
	return authz.NewGate[domain.CoverLetter](func(ctx context.Context, id int64) (*domain.CoverLetter, int64, error) {
		return letters.GetByID(ctx, id)
	}, msgCoverLetterNotFound)
}

func (u *coverLetterUsecase) Create(ctx context.Context, input domain.CoverLetterInput) (*domain.CoverLetter, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	letter := &domain.CoverLetter{
		Title:         input.Title,
		Language:      input.Language,
		Content:       input.Content,
		Status:        domain.DefaultCoverLetterStatus,
		ApplicationID: input.ApplicationID,
	}
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.appGate.Authorize(ctx, actor, input.ApplicationID); err != nil {
			return err
		}
		return u.letters.Create(ctx, letter)
	})
	if err != nil {
		return nil, storeError(err, msgCoverLetterNotFound)
	}
	return letter, nil
}

func (u *coverLetterUsecase) GetByID(ctx context.Context, id int64) (*domain.CoverLetter, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.gate.Authorize(ctx, actor, id)
}

func (u *coverLetterUsecase) List(ctx context.Context) ([]domain.CoverLetter, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	letters, err := u.letters.ListByOwner(ctx, actor)
	if err != nil {
		return nil, storeError(err, msgCoverLetterNotFound)
	}
	return letters, nil
}

// Update re-validates content whenever it is supplied, so the length cap
// holds after edits as well.
func (u *coverLetterUsecase) Update(ctx context.Context, id int64, patch domain.CoverLetterPatch) (*domain.CoverLetter, error) {
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
		if patch.ApplicationID != nil {
			if _, err := u.appGate.Authorize(ctx, actor, *patch.ApplicationID); err != nil {
				return err
			}
		}
		return u.letters.Update(ctx, id, patch)
	})
	if err != nil {
		return nil, storeError(err, msgCoverLetterNotFound)
	}

	letter, _, err := u.letters.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCoverLetterNotFound)
	}
	return letter, nil
}

func (u *coverLetterUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.letters.Delete(ctx, id)
	})
	return storeError(err, msgCoverLetterNotFound)
}
