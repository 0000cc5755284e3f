package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, resume, job, coverLetter string) (*domain.Feedback, error) {
	args := m.Called(ctx, resume, job, coverLetter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

// inlineTx runs fn directly; enough for mocked repositories.
type inlineTx struct{}

func (inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func code(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestUserRegister(t *testing.T) {
	hasher := &auth.BcryptHasher{Cost: bcrypt.MinCost}

	t.Run("Should reject duplicate e-mail before inserting", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, inlineTx{}, hasher, validation.New())
		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: 1}, nil)

		_, err := uc.Register(context.Background(), domain.RegisterInput{
			Username: "alice", Email: "alice@example.com", Password: "pw",
		})
		assert.Equal(t, http.StatusConflict, code(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a lost insert race to conflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, inlineTx{}, hasher, validation.New())
		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicate)

		_, err := uc.Register(context.Background(), domain.RegisterInput{
			Username: "alice", Email: "alice@example.com", Password: "pw",
		})
		assert.Equal(t, http.StatusConflict, code(t, err))
	})

	t.Run("Should store a hash, never the password", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, inlineTx{}, hasher, validation.New())
		repo.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotEqual(t, "secret", u.PasswordHash)
			assert.True(t, hasher.Compare(u.PasswordHash, "secret"))
			u.ID = 5
		})

		u, err := uc.Register(context.Background(), domain.RegisterInput{
			Username: "bob", Email: "bob@example.com", Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), u.ID)
	})

	t.Run("Should list every missing field", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, inlineTx{}, hasher, validation.New())

		_, err := uc.Register(context.Background(), domain.RegisterInput{Username: "   "})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.ElementsMatch(t, []string{"username", "email", "password"}, appErr.Fields)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestUserAuthenticate(t *testing.T) {
	hasher := &auth.BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(repo, inlineTx{}, hasher, validation.New())
	repo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	t.Run("Should accept correct password", func(t *testing.T) {
		u, err := uc.Authenticate(context.Background(), domain.LoginInput{Username: "alice", Password: "pw123"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("Should reject wrong password and unknown user alike", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), domain.LoginInput{Username: "alice", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, code(t, err))

		_, err2 := uc.Authenticate(context.Background(), domain.LoginInput{Username: "ghost", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, code(t, err2))
		assert.Equal(t, err.Error(), err2.Error())
	})
}

func TestJobUsecaseWithoutActor(t *testing.T) {
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, inlineTx{}, validation.New())
	ctx := context.Background()

	t.Run("Should fail safely when Context UserID is missing", func(t *testing.T) {
		_, err := uc.Create(ctx, domain.JobInput{Title: "t", Company: "c"})
		assert.Equal(t, http.StatusUnauthorized, code(t, err))

		_, err = uc.List(ctx)
		assert.Equal(t, http.StatusUnauthorized, code(t, err))

		err = uc.Delete(ctx, 1)
		assert.Equal(t, http.StatusUnauthorized, code(t, err))
	})

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestJobUsecaseForeignOwner(t *testing.T) {
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, inlineTx{}, validation.New())
	ctx := domain.WithActor(context.Background(), 2)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Job{ID: 10, UserID: 1}, nil)

	t.Run("Should not update another user's job", func(t *testing.T) {
		title := "mine now"
		_, err := uc.Update(ctx, 10, domain.JobPatch{Title: &title})
		assert.Equal(t, http.StatusNotFound, code(t, err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should force owner from context on create", func(t *testing.T) {
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			j := args.Get(1).(*domain.Job)
			assert.Equal(t, int64(2), j.UserID)
			assert.Equal(t, domain.DefaultEmploymentType, j.EmploymentType)
			j.ID = 11
		}).Once()
		repo.On("GetByID", mock.Anything, int64(11)).Return(&domain.Job{ID: 11, UserID: 2}, nil)

		job, err := uc.Create(ctx, domain.JobInput{Title: "Engineer", Company: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, int64(11), job.ID)
	})
}

func TestFeedbackUsecase(t *testing.T) {
	ctx := domain.WithActor(context.Background(), 1)

	t.Run("Should report every missing document", func(t *testing.T) {
		gen := new(MockGenerator)
		uc := usecase.NewFeedbackUsecase(gen, new(MockJobRepo), nil, nil)

		_, err := uc.Generate(ctx, domain.FeedbackRequest{Job: "Go developer"})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, []string{"resume", "cover_letter"}, appErr.Fields)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface generator failure as service error", func(t *testing.T) {
		gen := new(MockGenerator)
		uc := usecase.NewFeedbackUsecase(gen, new(MockJobRepo), nil, nil)
		gen.On("Generate", mock.Anything, "r", "j", "c").Return(nil, errors.New("rate limited"))

		_, err := uc.Generate(ctx, domain.FeedbackRequest{Resume: "r", Job: "j", CoverLetter: "c"})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadGateway, appErr.Code)
		assert.Equal(t, "AI feedback generation failed", appErr.Message)
	})

	t.Run("Should resolve a stored job through the gate", func(t *testing.T) {
		gen := new(MockGenerator)
		jobs := new(MockJobRepo)
		uc := usecase.NewFeedbackUsecase(gen, jobs, nil, nil)
		desc := "Build APIs"
		jobs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, UserID: 1, Title: "Dev", Company: "Acme", Description: &desc}, nil)
		want := &domain.Feedback{Strengths: []string{"clear"}, ToneFeedback: "confident"}
		gen.On("Generate", mock.Anything, "r", "Dev at Acme\n\nBuild APIs", "c").Return(want, nil)

		jobID := int64(3)
		got, err := uc.Generate(ctx, domain.FeedbackRequest{Resume: "r", JobID: &jobID, CoverLetter: "c"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Should hide another user's job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		uc := usecase.NewFeedbackUsecase(new(MockGenerator), jobs, nil, nil)
		jobs.On("GetByID", mock.Anything, int64(4)).Return(&domain.Job{ID: 4, UserID: 99}, nil)

		jobID := int64(4)
		_, err := uc.Generate(ctx, domain.FeedbackRequest{Resume: "r", JobID: &jobID, CoverLetter: "c"})
		assert.Equal(t, http.StatusNotFound, code(t, err))
	})
}
