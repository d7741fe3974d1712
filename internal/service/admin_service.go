package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/skillswapper-backend/internal/config"
	"github.com/ignatzorin/skillswapper-backend/internal/logger"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

// AdminUserRepository операции над пользователями, доступные администратору.
type AdminUserRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.User, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminService вход администратора и управление пользователями.
type AdminService struct {
	cfg          config.AdminConfig
	users        AdminUserRepository
	tokenManager *TokenManager
}

// NewAdminService создаёт сервис администратора.
func NewAdminService(cfg config.AdminConfig, users AdminUserRepository, tokenManager *TokenManager) *AdminService {
	return &AdminService{cfg: cfg, users: users, tokenManager: tokenManager}
}

// AdminSubject детерминированный идентификатор администратора для JWT.
func AdminSubject(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("skillswapper-admin:"+normalizeEmail(email)))
}

// Login сверяет учётные данные с конфигурацией и выпускает access токен с ролью admin.
func (s *AdminService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if !s.cfg.Enabled() {
		return nil, apperror.ErrAdminLoginUnavailable
	}

	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(s.cfg.Email)) == 1
	// bcrypt сравниваем всегда, чтобы время ответа не выдавало верный email.
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !emailOK || passErr != nil {
		logger.L().WithFields(logrus.Fields{"email": email}).Warn("admin service: неудачная попытка входа")
		return nil, apperror.ErrInvalidCredentials
	}

	return s.tokenManager.GenerateAccess(AdminSubject(s.cfg.Email), models.RoleAdmin)
}

// ListUsers возвращает пользователей постранично.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// DeleteUser удаляет пользователя вместе с навыками, обменами и уведомлениями.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}

	logger.L().WithFields(logrus.Fields{"user_id": id}).Info("admin service: пользователь удалён")
	return nil
}
