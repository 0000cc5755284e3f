package postgres

import (
	"fmt"
	"time"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
)

// Foreign keys are declared on the child side only; the delete rules below
// are what keep ownership consistent when a parent row goes away.

type userModel struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type jobModel struct {
	ID             int64     `gorm:"primaryKey"`
	Title          string    `gorm:"size:255;not null"`
	Company        string    `gorm:"size:255;not null"`
	Location       *string   `gorm:"size:255"`
	JobURL         *string   `gorm:"column:job_url;size:500"`
	Description    *string   `gorm:"type:text"`
	DatePosted     time.Time `gorm:"not null"`
	Deadline       *time.Time
	EmploymentType string     `gorm:"size:100;not null"`
	UserID         int64      `gorm:"not null;index"`
	User           *userModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (jobModel) TableName() string { return "jobs" }

type resumeModel struct {
	ID        int64      `gorm:"primaryKey"`
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null"`
	UserID    int64      `gorm:"not null;index"`
	User      *userModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (resumeModel) TableName() string { return "resumes" }

type applicationModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Status      string `gorm:"size:100;not null"`
	SubmittedAt *time.Time
	UserID      int64        `gorm:"not null;index"`
	JobID       int64        `gorm:"not null;index"`
	ResumeID    *int64       `gorm:"index"`
	User        *userModel   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Job         *jobModel    `gorm:"foreignKey:JobID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Resume      *resumeModel `gorm:"foreignKey:ResumeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (applicationModel) TableName() string { return "applications" }

type coverLetterModel struct {
	ID            int64             `gorm:"primaryKey"`
	Title         string            `gorm:"size:255;not null"`
	Language      *string           `gorm:"size:50"`
	Content       string            `gorm:"type:text"`
	Status        string            `gorm:"size:100;not null"`
	CreatedAt     time.Time         `gorm:"not null"`
	ApplicationID int64             `gorm:"not null;index"`
	Application   *applicationModel `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (coverLetterModel) TableName() string { return "coverletters" }

// AutoMigrate creates or updates the five tables and their constraints.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&jobModel{},
		&resumeModel{},
		&applicationModel{},
		&coverLetterModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func (m *jobModel) toDomain() *domain.Job {
	return &domain.Job{
		ID:             m.ID,
		Title:          m.Title,
		Company:        m.Company,
		Location:       m.Location,
		JobURL:         m.JobURL,
		Description:    m.Description,
		DatePosted:     m.DatePosted,
		Deadline:       m.Deadline,
		EmploymentType: m.EmploymentType,
		UserID:         m.UserID,
	}
}

func (m *resumeModel) toDomain() *domain.Resume {
	return &domain.Resume{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UserID:    m.UserID,
	}
}

func (m *applicationModel) toDomain() *domain.Application {
	app := &domain.Application{
		ID:          m.ID,
		Title:       m.Title,
		Status:      m.Status,
		SubmittedAt: m.SubmittedAt,
		UserID:      m.UserID,
		JobID:       m.JobID,
		ResumeID:    m.ResumeID,
	}
	if m.Job != nil {
		app.Job = &domain.JobSummary{
			ID:             m.Job.ID,
			Title:          m.Job.Title,
			Company:        m.Job.Company,
			Description:    m.Job.Description,
			Location:       m.Job.Location,
			EmploymentType: m.Job.EmploymentType,
			JobURL:         m.Job.JobURL,
			Deadline:       m.Job.Deadline,
		}
	}
	return app
}
