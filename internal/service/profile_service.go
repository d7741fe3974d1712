package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswapper-backend/internal/logger"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
	"github.com/ignatzorin/skillswapper-backend/internal/storage"
	"github.com/ignatzorin/skillswapper-backend/internal/validation"
)

// ProfileRepository описывает хранилище профилей.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, path *string) error
}

// UserSkillLister возвращает навыки пользователя.
type UserSkillLister interface {
	ListHave(ctx context.Context, userID uuid.UUID) ([]models.HaveSkill, error)
	ListWant(ctx context.Context, userID uuid.UUID) ([]models.WantSkill, error)
}

// PictureStorage хранилище фотографий профиля.
type PictureStorage interface {
	Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
}

// ProfileService работает с профилем текущего пользователя и публичными профилями.
type ProfileService struct {
	users   ProfileRepository
	skills  UserSkillLister
	storage PictureStorage
}

// UpdateProfileInput частичное обновление профиля.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Location *string
}

// ProfileView профиль пользователя вместе с навыками.
type ProfileView struct {
	*models.User
	SkillsHave []models.HaveSkill `json:"skills_have"`
	SkillsWant []models.WantSkill `json:"skills_want"`
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(users ProfileRepository, skills UserSkillLister, storage PictureStorage) *ProfileService {
	return &ProfileService{users: users, skills: skills, storage: storage}
}

// GetMe возвращает собственный профиль с email и навыками.
func (s *ProfileService) GetMe(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	have, want, err := s.loadSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{User: user, SkillsHave: have, SkillsWant: want}, nil
}

// GetPublicProfile возвращает профиль без контактных данных.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.ErrUserNotFound
	}

	have, want, err := s.loadSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	return models.NewPublicProfile(user, have, want), nil
}

// UpdateMe обновляет переданные поля профиля. Пустые bio и location очищают значение.
func (s *ProfileService) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Bio = optionalString(*in.Bio)
	}
	if in.Location != nil {
		if err := validation.ValidateLocation(in.Location); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Location = optionalString(*in.Location)
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, mapUserErr(err)
	}

	return user, nil
}

// UploadPicture сохраняет новое фото профиля и удаляет предыдущее.
func (s *ProfileService) UploadPicture(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	relative, _, err := s.storage.Save(ctx, userID, originalName, r)
	if err != nil {
		if isUploadRejection(err) {
			return "", apperror.Validation(err.Error())
		}
		return "", err
	}

	if err := s.users.UpdateProfilePicture(ctx, userID, &relative); err != nil {
		_ = s.storage.Delete(ctx, relative)
		return "", mapUserErr(err)
	}

	if user.ProfilePicture != nil && *user.ProfilePicture != "" {
		if err := s.storage.Delete(ctx, *user.ProfilePicture); err != nil {
			logger.L().WithFields(logrus.Fields{
				"user_id": userID,
				"path":    *user.ProfilePicture,
				"error":   err.Error(),
			}).Warn("profile service: не удалось удалить старое фото")
		}
	}

	return relative, nil
}

func (s *ProfileService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

func (s *ProfileService) loadSkills(ctx context.Context, userID uuid.UUID) ([]models.HaveSkill, []models.WantSkill, error) {
	have, err := s.skills.ListHave(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	want, err := s.skills.ListWant(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return have, want, nil
}

func isUploadRejection(err error) bool {
	return errors.Is(err, storage.ErrUnsupportedType) ||
		errors.Is(err, storage.ErrExtensionMismatch) ||
		errors.Is(err, storage.ErrTooLarge) ||
		errors.Is(err, storage.ErrEmptyFile)
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperror.ErrUserNotFound
	}
	return err
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
