package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
	"github.com/ignatzorin/skillswapper-backend/internal/validation"
)

const skillSearchLimit = 100

// SkillRepository описывает хранилище навыков.
type SkillRepository interface {
	List(ctx context.Context, search string, limit int) ([]models.Skill, error)
	AddHaveSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error
	AddWantSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error
	RemoveHaveSkill(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveWantSkill(ctx context.Context, userID, skillID uuid.UUID) error
	ListHave(ctx context.Context, userID uuid.UUID) ([]models.HaveSkill, error)
	ListWant(ctx context.Context, userID uuid.UUID) ([]models.WantSkill, error)
}

// SkillService управляет справочником навыков и навыками пользователя.
type SkillService struct {
	repo SkillRepository
}

// NewSkillService создаёт сервис навыков.
func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{repo: repo}
}

// ListSkills возвращает навыки справочника по подстроке.
func (s *SkillService) ListSkills(ctx context.Context, search string) ([]models.Skill, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), skillSearchLimit)
}

// ListUserSkills возвращает навыки пользователя обоих направлений.
func (s *SkillService) ListUserSkills(ctx context.Context, userID uuid.UUID) (*models.UserSkills, error) {
	have, err := s.repo.ListHave(ctx, userID)
	if err != nil {
		return nil, err
	}
	want, err := s.repo.ListWant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserSkills{Have: have, Want: want}, nil
}

// AddHaveSkills добавляет навыки "умею". Уровень по умолчанию intermediate.
func (s *SkillService) AddHaveSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) (*models.UserSkills, error) {
	normalized, err := validation.ValidateSkillInputs(inputs, models.ValidProficiencyLevels, models.ProficiencyIntermediate)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := s.repo.AddHaveSkills(ctx, userID, normalized); err != nil {
		return nil, err
	}

	return s.ListUserSkills(ctx, userID)
}

// AddWantSkills добавляет навыки "хочу изучить". Срочность по умолчанию medium.
func (s *SkillService) AddWantSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) (*models.UserSkills, error) {
	normalized, err := validation.ValidateSkillInputs(inputs, models.ValidUrgencyLevels, models.UrgencyMedium)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := s.repo.AddWantSkills(ctx, userID, normalized); err != nil {
		return nil, err
	}

	return s.ListUserSkills(ctx, userID)
}

// RemoveHaveSkill удаляет навык из списка "умею".
func (s *SkillService) RemoveHaveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return mapSkillErr(s.repo.RemoveHaveSkill(ctx, userID, skillID))
}

// RemoveWantSkill удаляет навык из списка "хочу изучить".
func (s *SkillService) RemoveWantSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return mapSkillErr(s.repo.RemoveWantSkill(ctx, userID, skillID))
}

func mapSkillErr(err error) error {
	if errors.Is(err, repository.ErrSkillNotFound) {
		return apperror.ErrSkillNotFound
	}
	return err
}
