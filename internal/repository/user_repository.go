package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = fmt.Errorf("user: %w", common.ErrNotFound)

// ErrEmailExists возвращается при попытке зарегистрировать занятый email.
var ErrEmailExists = fmt.Errorf("email: %w", common.ErrAlreadyExists)

const userColumns = `id, name, email, password_hash, bio, location, profile_picture, role, is_active, created_at, updated_at`

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := r.db.Rebind(`
		INSERT INTO users (id, name, email, password_hash, bio, location, profile_picture, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if _, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Bio, user.Location, user.ProfilePicture,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	); err != nil {
		if common.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, ErrUserNotFound)
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

// UpdateProfile обновляет имя, описание и город пользователя.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`UPDATE users SET name = ?, bio = ?, location = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Bio, user.Location, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("user repository: update profile %w", err)
	}

	return requireAffected(result, ErrUserNotFound)
}

// UpdateProfilePicture сохраняет относительный путь к фото профиля.
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id uuid.UUID, path *string) error {
	query := r.db.Rebind(`UPDATE users SET profile_picture = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, path, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("user repository: update profile picture %w", err)
	}

	return requireAffected(result, ErrUserNotFound)
}

// List возвращает пользователей постранично и их общее количество.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("user repository: count %w", err)
	}

	users := []models.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("user repository: list %w", err)
	}

	return users, total, nil
}

// Delete удаляет пользователя. Навыки, обмены и уведомления удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("user repository: delete %w", err)
	}

	return requireAffected(result, ErrUserNotFound)
}

// requireAffected возвращает notFound, если запрос не затронул ни одной строки.
func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
