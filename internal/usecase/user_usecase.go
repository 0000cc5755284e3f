package usecase

import (
	"context"
	"errors"
	"strings"

	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

const (
	msgUserNotFound       = "User not found"
	msgEmailTaken         = "User already exists"
	msgInvalidCredentials = "Invalid username or password"
)

type userUsecase struct {
	users    domain.UserRepository
	tx       domain.Transactor
	hasher   domain.PasswordHasher
	validate *validator.Validate
	gate     *authz.Gate[domain.User]
}

func NewUserUsecase(users domain.UserRepository, tx domain.Transactor, hasher domain.PasswordHasher, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		users:    users,
		tx:       tx,
		hasher:   hasher,
		validate: validate,
		gate: authz.NewGate[domain.User](func(ctx context.Context, id int64) (*domain.User, int64, error) {
			u, err := users.GetByID(ctx, id)
			if err != nil {
				return nil, 0, err
			}
			return u, u.ID, nil
		}, msgUserNotFound),
	}
}

// Register creates an account. The e-mail check runs first; a concurrent
// registration that slips past it still fails on the unique index.
func (u *userUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	// Hashing stays outside the transaction.
	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.ensureEmailFree(ctx, input.Email, 0); err != nil {
			return err
		}
		if err := u.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return apperror.Conflict(msgEmailTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	return user, nil
}

func (u *userUsecase) Authenticate(ctx context.Context, input domain.LoginInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	user, err := u.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperror.Internal(err)
	}
	if !u.hasher.Compare(user.PasswordHash, input.Password) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	return user, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.gate.Authorize(ctx, actor, id)
}

// List only ever contains the caller.
func (u *userUsecase) List(ctx context.Context) ([]domain.User, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	user, err := u.gate.Authorize(ctx, actor, actor)
	if err != nil {
		return nil, err
	}
	return []domain.User{*user}, nil
}

func (u *userUsecase) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return nil, err
	}
	patch.Username = trimmed(patch.Username)
	patch.Email = trimmed(patch.Email)
	if err := validateInput(u.validate, patch); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.gate.Authorize(ctx, actor, id)
		if err != nil {
			return err
		}
		if patch.Email != nil && *patch.Email != current.Email {
			if err := u.ensureEmailFree(ctx, *patch.Email, current.ID); err != nil {
				return err
			}
		}
		if err := u.users.Update(ctx, id, patch); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return apperror.Conflict(msgEmailTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	return u.reload(ctx, id)
}

// Delete removes the account and everything it owns.
func (u *userUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := authz.Actor(ctx)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.gate.Authorize(ctx, actor, id); err != nil {
			return err
		}
		return u.users.Delete(ctx, id)
	})
	return storeError(err, msgUserNotFound)
}

func (u *userUsecase) ensureEmailFree(ctx context.Context, email string, self int64) error {
	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return apperror.Conflict(msgEmailTaken)
	}
	return nil
}

func (u *userUsecase) reload(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	return user, nil
}
