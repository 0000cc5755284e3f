package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/postgres"
	"job-tracker-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	ctx          context.Context
	db           *gorm.DB
	tx           domain.Transactor
	users        domain.UserRepository
	jobs         domain.JobRepository
	resumes      domain.ResumeRepository
	applications domain.ApplicationRepository
	letters      domain.CoverLetterRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.tx = postgres.NewTransactor(s.db)
	s.users = postgres.NewUserRepository(s.db)
	s.jobs = postgres.NewJobRepository(s.db)
	s.resumes = postgres.NewResumeRepository(s.db)
	s.applications = postgres.NewApplicationRepository(s.db)
	s.letters = postgres.NewCoverLetterRepository(s.db)
}

func (s *RepositorySuite) user(name string) *domain.User {
	u := &domain.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) job(owner int64) *domain.Job {
	j := &domain.Job{
		Title:          "Backend Engineer",
		Company:        "Acme",
		DatePosted:     time.Now().UTC(),
		EmploymentType: domain.DefaultEmploymentType,
		UserID:         owner,
	}
	s.Require().NoError(s.jobs.Create(s.ctx, j))
	return j
}

func (s *RepositorySuite) resume(owner int64) *domain.Resume {
	r := &domain.Resume{Title: "CV", Content: "Go, SQL", UserID: owner}
	s.Require().NoError(s.resumes.Create(s.ctx, r))
	return r
}

func (s *RepositorySuite) application(owner, jobID int64, resumeID *int64) *domain.Application {
	a := &domain.Application{
		Title:    "Applied",
		Status:   domain.DefaultApplicationStatus,
		UserID:   owner,
		JobID:    jobID,
		ResumeID: resumeID,
	}
	s.Require().NoError(s.applications.Create(s.ctx, a))
	return a
}

func (s *RepositorySuite) letter(appID int64) *domain.CoverLetter {
	c := &domain.CoverLetter{
		Title:         "Letter",
		Content:       "Dear team",
		Status:        domain.DefaultCoverLetterStatus,
		ApplicationID: appID,
	}
	s.Require().NoError(s.letters.Create(s.ctx, c))
	return c
}

func (s *RepositorySuite) TestUserCreateAndLookup() {
	u := s.user("alice")
	s.NotZero(u.ID)
	s.False(u.CreatedAt.IsZero())

	byEmail, err := s.users.GetByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	byName, err := s.users.GetByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)

	_, err = s.users.GetByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestUserDuplicateEmail() {
	s.user("alice")

	err := s.users.Create(s.ctx, &domain.User{Username: "other", Email: "alice@example.com", PasswordHash: "x"})
	s.ErrorIs(err, domain.ErrDuplicate)
}

func (s *RepositorySuite) TestUserUpdate() {
	u := s.user("alice")
	name := "alice2"

	s.Require().NoError(s.users.Update(s.ctx, u.ID, domain.UserPatch{Username: &name}))

	got, err := s.users.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("alice2", got.Username)
	s.Equal("alice@example.com", got.Email)

	s.ErrorIs(s.users.Update(s.ctx, 999, domain.UserPatch{Username: &name}), domain.ErrNotFound)
}

func (s *RepositorySuite) TestUserDeleteCascades() {
	alice := s.user("alice")
	bob := s.user("bob")

	job := s.job(alice.ID)
	res := s.resume(alice.ID)
	app := s.application(alice.ID, job.ID, &res.ID)
	letter := s.letter(app.ID)
	bobJob := s.job(bob.ID)

	s.Require().NoError(s.users.Delete(s.ctx, alice.ID))

	_, err := s.jobs.GetByID(s.ctx, job.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.resumes.GetByID(s.ctx, res.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.applications.GetByID(s.ctx, app.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, _, err = s.letters.GetByID(s.ctx, letter.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.jobs.GetByID(s.ctx, bobJob.ID)
	s.NoError(err, "other users keep their rows")
}

func (s *RepositorySuite) TestJobDeleteCascadesToApplications() {
	alice := s.user("alice")
	job := s.job(alice.ID)
	app := s.application(alice.ID, job.ID, nil)
	letter := s.letter(app.ID)

	s.Require().NoError(s.jobs.Delete(s.ctx, job.ID))

	_, err := s.applications.GetByID(s.ctx, app.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, _, err = s.letters.GetByID(s.ctx, letter.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	s.ErrorIs(s.jobs.Delete(s.ctx, job.ID), domain.ErrNotFound)
}

func (s *RepositorySuite) TestResumeDeleteNullsApplications() {
	alice := s.user("alice")
	job := s.job(alice.ID)
	res := s.resume(alice.ID)
	app := s.application(alice.ID, job.ID, &res.ID)

	s.Require().NoError(s.resumes.Delete(s.ctx, res.ID))

	got, err := s.applications.GetByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Nil(got.ResumeID)
}

func (s *RepositorySuite) TestApplicationDeleteCascadesToLetters() {
	alice := s.user("alice")
	job := s.job(alice.ID)
	app := s.application(alice.ID, job.ID, nil)
	letter := s.letter(app.ID)

	s.Require().NoError(s.applications.Delete(s.ctx, app.ID))

	_, _, err := s.letters.GetByID(s.ctx, letter.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestApplicationListEmbedsJobNewestFirst() {
	alice := s.user("alice")
	job := s.job(alice.ID)
	first := s.application(alice.ID, job.ID, nil)
	second := s.application(alice.ID, job.ID, nil)

	apps, err := s.applications.ListByOwner(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(apps, 2)
	s.Equal(second.ID, apps[0].ID)
	s.Equal(first.ID, apps[1].ID)
	s.Require().NotNil(apps[0].Job)
	s.Equal("Acme", apps[0].Job.Company)
}

func (s *RepositorySuite) TestCoverLetterOwnerResolvedThroughApplication() {
	alice := s.user("alice")
	bob := s.user("bob")
	app := s.application(alice.ID, s.job(alice.ID).ID, nil)
	letter := s.letter(app.ID)
	s.letter(s.application(bob.ID, s.job(bob.ID).ID, nil).ID)

	got, owner, err := s.letters.GetByID(s.ctx, letter.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, owner)
	s.Equal("Dear team", got.Content)
	s.Equal(domain.DefaultCoverLetterStatus, got.Status)

	list, err := s.letters.ListByOwner(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(letter.ID, list[0].ID)
}

func (s *RepositorySuite) TestJobPatchTouchesOnlySuppliedFields() {
	alice := s.user("alice")
	job := s.job(alice.ID)
	loc := "Berlin"

	s.Require().NoError(s.jobs.Update(s.ctx, job.ID, domain.JobPatch{Location: &loc}))

	got, err := s.jobs.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal("Backend Engineer", got.Title)
	s.Require().NotNil(got.Location)
	s.Equal("Berlin", *got.Location)
}

func (s *RepositorySuite) TestTransactionRollsBack() {
	alice := s.user("alice")
	boom := errors.New("boom")

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.jobs.Create(ctx, &domain.Job{
			Title: "t", Company: "c", DatePosted: time.Now(), EmploymentType: "Full-time", UserID: alice.ID,
		}))
		return boom
	})
	s.ErrorIs(err, boom)

	jobs, err := s.jobs.ListByOwner(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(jobs)
}

func TestNestedTransactionReusesOuter(t *testing.T) {
	db := testutil.NewDB(t)
	tx := postgres.NewTransactor(db)
	users := postgres.NewUserRepository(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return users.Create(ctx, &domain.User{Username: "n", Email: "n@example.com", PasswordHash: "h"})
		})
	})
	require.NoError(t, err)

	_, err = users.GetByEmail(ctx, "n@example.com")
	assert.NoError(t, err)
}
