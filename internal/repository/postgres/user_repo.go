package postgres

import (
	"context"

	"job-tracker-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	m := userModel{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return wrap("create user", err)
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "get user by id", "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "get user by email", "email = ?", email)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "get user by username", "username = ?", username)
}

func (r *userRepo) first(ctx context.Context, op, query string, arg interface{}) (*domain.User, error) {
	var m userModel
	if err := conn(ctx, r.db).Where(query, arg).Order("id").First(&m).Error; err != nil {
		return nil, wrap(op, err)
	}
	return m.toDomain(), nil
}

func (r *userRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) error {
	updates := map[string]interface{}{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	return updateColumns(ctx, r.db, &userModel{}, "update user", id, updates)
}

// Delete removes the user; jobs, resumes, applications and their cover
// letters go with it through ON DELETE CASCADE.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, &userModel{}, "delete user", id)
}

func updateColumns(ctx context.Context, db *gorm.DB, model interface{}, op string, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := conn(ctx, db).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return wrap(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteRow(ctx context.Context, db *gorm.DB, model interface{}, op string, id int64) error {
	res := conn(ctx, db).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return wrap(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
