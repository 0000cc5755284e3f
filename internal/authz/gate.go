// Package authz decides whether the acting user may touch an entity.
package authz

import (
	"context"
	"errors"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
)

// Resolver loads an entity by id together with the id of the user owning it.
// It returns domain.ErrNotFound when the row does not exist.
type Resolver[T any] func(ctx context.Context, id int64) (*T, int64, error)

// Gate guards one entity type.
type Gate[T any] struct {
	resolve  Resolver[T]
	notFound string
}

// NewGate builds a gate; notFound is the message used for both missing and
// foreign-owned rows so callers cannot probe for existence.
func NewGate[T any](resolve Resolver[T], notFound string) *Gate[T] {
	return &Gate[T]{resolve: resolve, notFound: notFound}
}

// Authorize returns the entity when actorID owns it.
func (g *Gate[T]) Authorize(ctx context.Context, actorID, id int64) (*T, error) {
	entity, owner, err := g.resolve(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(g.notFound)
		}
		return nil, apperror.Internal(err)
	}
	if owner != actorID {
		return nil, apperror.NotFound(g.notFound)
	}
	return entity, nil
}

// Actor reads the authenticated user from ctx.
func Actor(ctx context.Context) (int64, error) {
	id, ok := domain.ActorFromContext(ctx)
	if !ok {
		return 0, apperror.Unauthorized("Unauthorized")
	}
	return id, nil
}
