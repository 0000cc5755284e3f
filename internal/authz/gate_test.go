package authz

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    int64
	Owner int64
}

func fixedResolver(rows map[int64]note) Resolver[note] {
	return func(_ context.Context, id int64) (*note, int64, error) {
		n, ok := rows[id]
		if !ok {
			return nil, 0, domain.ErrNotFound
		}
		return &n, n.Owner, nil
	}
}

func TestGateAuthorize(t *testing.T) {
	gate := NewGate(fixedResolver(map[int64]note{
		1: {ID: 1, Owner: 10},
		2: {ID: 2, Owner: 20},
	}), "Note not found")

	t.Run("Should return entity to its owner", func(t *testing.T) {
		n, err := gate.Authorize(context.Background(), 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n.ID)
	})

	t.Run("Should hide foreign rows as not found", func(t *testing.T) {
		_, err := gate.Authorize(context.Background(), 10, 2)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Note not found", appErr.Message)
	})

	t.Run("Should report missing rows with the same message", func(t *testing.T) {
		_, err := gate.Authorize(context.Background(), 10, 99)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Note not found", appErr.Message)
	})

	t.Run("Should wrap store failures as internal", func(t *testing.T) {
		boom := errors.New("connection reset")
		failing := NewGate[note](func(context.Context, int64) (*note, int64, error) {
			return nil, 0, boom
		}, "Note not found")

		_, err := failing.Authorize(context.Background(), 10, 1)
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
		assert.ErrorIs(t, err, boom)
	})
}

func TestActor(t *testing.T) {
	_, err := Actor(context.Background())
	assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))

	id, err := Actor(domain.WithActor(context.Background(), 7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
