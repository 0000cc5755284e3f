package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/postgres"
	"job-tracker-backend/internal/testutil"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/validation"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// StoreSuite drives the usecases against a real SQLite store.
type StoreSuite struct {
	suite.Suite
	users        domain.UserUsecase
	jobs         domain.JobUsecase
	resumes      domain.ResumeUsecase
	applications domain.ApplicationUsecase
	letters      domain.CoverLetterUsecase

	alice, bob context.Context
	aliceID    int64
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	db := testutil.NewDB(s.T())
	tx := postgres.NewTransactor(db)
	v := validation.New()

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	appRepo := postgres.NewApplicationRepository(db)
	letterRepo := postgres.NewCoverLetterRepository(db)

	s.users = usecase.NewUserUsecase(userRepo, tx, &auth.BcryptHasher{Cost: bcrypt.MinCost}, v)
	s.jobs = usecase.NewJobUsecase(jobRepo, tx, v)
	s.resumes = usecase.NewResumeUsecase(resumeRepo, tx, v)
	s.applications = usecase.NewApplicationUsecase(appRepo, jobRepo, resumeRepo, tx, v)
	s.letters = usecase.NewCoverLetterUsecase(letterRepo, appRepo, tx, v)

	alice := s.register("alice")
	bob := s.register("bob")
	s.aliceID = alice.ID
	s.alice = domain.WithActor(context.Background(), alice.ID)
	s.bob = domain.WithActor(context.Background(), bob.ID)
}

func (s *StoreSuite) register(name string) *domain.User {
	u, err := s.users.Register(context.Background(), domain.RegisterInput{
		Username: name, Email: name + "@x.io", Password: "pw",
	})
	s.Require().NoError(err)
	return u
}

func (s *StoreSuite) requireCode(err error, code int) {
	s.T().Helper()
	s.Require().Error(err)
	s.Equal(code, apperror.CodeOf(err), err.Error())
}

func (s *StoreSuite) job(ctx context.Context) *domain.Job {
	j, err := s.jobs.Create(ctx, domain.JobInput{Title: "Engineer", Company: "Acme"})
	s.Require().NoError(err)
	return j
}

func (s *StoreSuite) application(ctx context.Context, jobID int64, resumeID *int64) *domain.Application {
	a, err := s.applications.Create(ctx, domain.ApplicationInput{Title: "App", JobID: jobID, ResumeID: resumeID})
	s.Require().NoError(err)
	return a
}

func (s *StoreSuite) TestDuplicateRegistration() {
	_, err := s.users.Register(context.Background(), domain.RegisterInput{
		Username: "alice2", Email: "alice@x.io", Password: "pw",
	})
	s.requireCode(err, http.StatusConflict)
}

func (s *StoreSuite) TestCreateThenGet() {
	job := s.job(s.alice)
	s.Equal(domain.DefaultEmploymentType, job.EmploymentType)
	s.False(job.DatePosted.IsZero())

	gotJob, err := s.jobs.GetByID(s.alice, job.ID)
	s.Require().NoError(err)
	s.Equal("Engineer", gotJob.Title)
	s.Equal("Acme", gotJob.Company)

	res, err := s.resumes.Create(s.alice, domain.ResumeInput{Title: "CV", Content: "Go, SQL"})
	s.Require().NoError(err)
	gotResume, err := s.resumes.GetByID(s.alice, res.ID)
	s.Require().NoError(err)
	s.Equal("CV", gotResume.Title)
	s.Equal("Go, SQL", gotResume.Content)
	s.Equal(s.aliceID, gotResume.UserID)

	app := s.application(s.alice, job.ID, &res.ID)
	gotApp, err := s.applications.GetByID(s.alice, app.ID)
	s.Require().NoError(err)
	s.Equal("App", gotApp.Title)
	s.Equal(job.ID, gotApp.JobID)
	s.Require().NotNil(gotApp.ResumeID)
	s.Equal(res.ID, *gotApp.ResumeID)

	lang := "en"
	letter, err := s.letters.Create(s.alice, domain.CoverLetterInput{
		Title: "Intro", Language: &lang, Content: "Dear team", ApplicationID: app.ID,
	})
	s.Require().NoError(err)
	gotLetter, err := s.letters.GetByID(s.alice, letter.ID)
	s.Require().NoError(err)
	s.Equal("Intro", gotLetter.Title)
	s.Require().NotNil(gotLetter.Language)
	s.Equal("en", *gotLetter.Language)
	s.Equal(domain.DefaultCoverLetterStatus, gotLetter.Status)
	s.Equal(app.ID, gotLetter.ApplicationID)
}

func (s *StoreSuite) TestRegisterRejectsPasswordOverBcryptLimit() {
	// 40 characters but 80 bytes
	_, err := s.users.Register(context.Background(), domain.RegisterInput{
		Username: "carol", Email: "carol@x.io", Password: strings.Repeat("é", 40),
	})
	s.requireCode(err, http.StatusBadRequest)

	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal([]string{"password"}, appErr.Fields)

	_, err = s.users.Register(context.Background(), domain.RegisterInput{
		Username: "carol", Email: "carol@x.io", Password: strings.Repeat("é", 36),
	})
	s.NoError(err)
}

func (s *StoreSuite) TestApplicationDefaultsAndEmbeddedJob() {
	job := s.job(s.alice)
	app := s.application(s.alice, job.ID, nil)

	s.Equal("Pending", app.Status)
	s.NotNil(app.SubmittedAt)
	s.Require().NotNil(app.Job)
	s.Equal("Acme", app.Job.Company)
}

func (s *StoreSuite) TestCrossActorAccessIsNotFound() {
	job := s.job(s.alice)
	res, err := s.resumes.Create(s.alice, domain.ResumeInput{Title: "CV", Content: "Go"})
	s.Require().NoError(err)
	app := s.application(s.alice, job.ID, &res.ID)
	letter, err := s.letters.Create(s.alice, domain.CoverLetterInput{Title: "L", Content: "Hi", ApplicationID: app.ID})
	s.Require().NoError(err)

	title := "stolen"

	_, err = s.jobs.GetByID(s.bob, job.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.jobs.Update(s.bob, job.ID, domain.JobPatch{Title: &title})
	s.requireCode(err, http.StatusNotFound)
	s.requireCode(s.jobs.Delete(s.bob, job.ID), http.StatusNotFound)

	_, err = s.resumes.GetByID(s.bob, res.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.resumes.Update(s.bob, res.ID, domain.ResumePatch{Title: &title})
	s.requireCode(err, http.StatusNotFound)
	s.requireCode(s.resumes.Delete(s.bob, res.ID), http.StatusNotFound)

	_, err = s.applications.GetByID(s.bob, app.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.applications.Update(s.bob, app.ID, domain.ApplicationPatch{Title: &title})
	s.requireCode(err, http.StatusNotFound)
	s.requireCode(s.applications.Delete(s.bob, app.ID), http.StatusNotFound)

	_, err = s.letters.GetByID(s.bob, letter.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.letters.Update(s.bob, letter.ID, domain.CoverLetterPatch{Title: &title})
	s.requireCode(err, http.StatusNotFound)
	s.requireCode(s.letters.Delete(s.bob, letter.ID), http.StatusNotFound)

	_, err = s.users.GetByID(s.bob, s.aliceID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.users.Update(s.bob, s.aliceID, domain.UserPatch{Username: &title})
	s.requireCode(err, http.StatusNotFound)
	s.requireCode(s.users.Delete(s.bob, s.aliceID), http.StatusNotFound)

	// nothing changed for the owner
	got, err := s.jobs.GetByID(s.alice, job.ID)
	s.Require().NoError(err)
	s.Equal("Engineer", got.Title)

	list, err := s.jobs.List(s.bob)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *StoreSuite) TestApplicationReferencingForeignJob() {
	aliceJob := s.job(s.alice)

	_, err := s.applications.Create(s.bob, domain.ApplicationInput{Title: "x", JobID: aliceJob.ID})
	s.requireCode(err, http.StatusNotFound)

	bobJob := s.job(s.bob)
	aliceRes, err := s.resumes.Create(s.alice, domain.ResumeInput{Title: "CV", Content: "Go"})
	s.Require().NoError(err)
	_, err = s.applications.Create(s.bob, domain.ApplicationInput{Title: "x", JobID: bobJob.ID, ResumeID: &aliceRes.ID})
	s.requireCode(err, http.StatusNotFound)

	apps, err := s.applications.List(s.bob)
	s.Require().NoError(err)
	s.Empty(apps)
}

func (s *StoreSuite) TestCoverLetterOnForeignApplication() {
	app := s.application(s.alice, s.job(s.alice).ID, nil)

	_, err := s.letters.Create(s.bob, domain.CoverLetterInput{Title: "L", Content: "Hi", ApplicationID: app.ID})
	s.requireCode(err, http.StatusNotFound)
}

func (s *StoreSuite) TestDeleteTwice() {
	job := s.job(s.alice)

	s.Require().NoError(s.jobs.Delete(s.alice, job.ID))
	s.requireCode(s.jobs.Delete(s.alice, job.ID), http.StatusNotFound)
}

func (s *StoreSuite) TestUserDeleteCascades() {
	job := s.job(s.alice)
	app := s.application(s.alice, job.ID, nil)
	letter, err := s.letters.Create(s.alice, domain.CoverLetterInput{Title: "L", Content: "Hi", ApplicationID: app.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.users.Delete(s.alice, s.aliceID))

	// a fresh account sees none of the old rows
	carol := domain.WithActor(context.Background(), s.register("carol").ID)
	_, err = s.jobs.GetByID(carol, job.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.letters.GetByID(carol, letter.ID)
	s.requireCode(err, http.StatusNotFound)

	// and the deleted actor can no longer read its own rows
	_, err = s.jobs.GetByID(s.alice, job.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.applications.GetByID(s.alice, app.ID)
	s.requireCode(err, http.StatusNotFound)
	_, err = s.users.GetByID(s.alice, s.aliceID)
	s.requireCode(err, http.StatusNotFound)
}

func (s *StoreSuite) TestResumeDeleteKeepsApplication() {
	job := s.job(s.alice)
	res, err := s.resumes.Create(s.alice, domain.ResumeInput{Title: "CV", Content: "Go"})
	s.Require().NoError(err)
	app := s.application(s.alice, job.ID, &res.ID)
	s.Require().NotNil(app.ResumeID)

	s.Require().NoError(s.resumes.Delete(s.alice, res.ID))

	got, err := s.applications.GetByID(s.alice, app.ID)
	s.Require().NoError(err)
	s.Nil(got.ResumeID)
}

func (s *StoreSuite) TestCoverLetterLengthBoundary() {
	app := s.application(s.alice, s.job(s.alice).ID, nil)

	// multi-byte characters count once each
	exact := strings.Repeat("é", validation.MaxCoverLetterLength)
	letter, err := s.letters.Create(s.alice, domain.CoverLetterInput{Title: "L", Content: exact, ApplicationID: app.ID})
	s.Require().NoError(err)
	s.Equal("Draft", letter.Status)

	tooLong := exact + "x"
	_, err = s.letters.Create(s.alice, domain.CoverLetterInput{Title: "L", Content: tooLong, ApplicationID: app.ID})
	s.requireCode(err, http.StatusBadRequest)

	_, err = s.letters.Update(s.alice, letter.ID, domain.CoverLetterPatch{Content: &tooLong})
	s.requireCode(err, http.StatusBadRequest)

	blank := "   "
	_, err = s.letters.Update(s.alice, letter.ID, domain.CoverLetterPatch{Content: &blank})
	s.requireCode(err, http.StatusBadRequest)

	got, err := s.letters.GetByID(s.alice, letter.ID)
	s.Require().NoError(err)
	s.Equal(exact, got.Content)
}

func (s *StoreSuite) TestUserUpdate() {
	name := "alicia"
	u, err := s.users.Update(s.alice, s.aliceID, domain.UserPatch{Username: &name})
	s.Require().NoError(err)
	s.Equal("alicia", u.Username)

	taken := "bob@x.io"
	_, err = s.users.Update(s.alice, s.aliceID, domain.UserPatch{Email: &taken})
	s.requireCode(err, http.StatusConflict)

	list, err := s.users.List(s.alice)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(s.aliceID, list[0].ID)
}

func (s *StoreSuite) TestMissingActor() {
	_, err := s.jobs.List(context.Background())
	s.requireCode(err, http.StatusUnauthorized)
	_, err = s.letters.List(context.Background())
	s.requireCode(err, http.StatusUnauthorized)
}

func (s *StoreSuite) TestInputTrimming() {
	blank := "   "
	job, err := s.jobs.Create(s.alice, domain.JobInput{Title: "SRE", Company: "Acme", EmploymentType: &blank})
	s.Require().NoError(err)
	s.Equal(domain.DefaultEmploymentType, job.EmploymentType)

	name := "  alicia  "
	u, err := s.users.Update(s.alice, s.aliceID, domain.UserPatch{Username: &name})
	s.Require().NoError(err)
	s.Equal("alicia", u.Username)

	_, err = s.users.Update(s.alice, s.aliceID, domain.UserPatch{Username: &blank})
	s.requireCode(err, http.StatusBadRequest)
}
