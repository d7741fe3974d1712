package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

type mockSkillRepo struct {
	mock.Mock
}

func (m *mockSkillRepo) List(ctx context.Context, search string, limit int) ([]models.Skill, error) {
	args := m.Called(ctx, search, limit)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockSkillRepo) AddHaveSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error {
	return m.Called(ctx, userID, inputs).Error(0)
}

func (m *mockSkillRepo) AddWantSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error {
	return m.Called(ctx, userID, inputs).Error(0)
}

func (m *mockSkillRepo) RemoveHaveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return m.Called(ctx, userID, skillID).Error(0)
}

func (m *mockSkillRepo) RemoveWantSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return m.Called(ctx, userID, skillID).Error(0)
}

func (m *mockSkillRepo) ListHave(ctx context.Context, userID uuid.UUID) ([]models.HaveSkill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.HaveSkill), args.Error(1)
}

func (m *mockSkillRepo) ListWant(ctx context.Context, userID uuid.UUID) ([]models.WantSkill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.WantSkill), args.Error(1)
}

func TestSkillService_AddHaveSkills_Defaults(t *testing.T) {
	repo := new(mockSkillRepo)
	service := NewSkillService(repo)
	userID := uuid.New()

	expected := []models.SkillInput{
		{Name: "Guitar", Level: models.ProficiencyIntermediate},
		{Name: "Python", Level: models.ProficiencyExpert},
	}
	repo.On("AddHaveSkills", mock.Anything, userID, expected).Return(nil)
	repo.On("ListHave", mock.Anything, userID).Return([]models.HaveSkill{{Name: "Guitar"}, {Name: "Python"}}, nil)
	repo.On("ListWant", mock.Anything, userID).Return([]models.WantSkill{}, nil)

	skills, err := service.AddHaveSkills(context.Background(), userID, []models.SkillInput{
		{Name: " Guitar "},
		{Name: "Python", Level: "EXPERT"},
	})
	require.NoError(t, err)
	assert.Len(t, skills.Have, 2)
	repo.AssertExpectations(t)
}

func TestSkillService_AddWantSkills_InvalidUrgency(t *testing.T) {
	repo := new(mockSkillRepo)
	service := NewSkillService(repo)

	_, err := service.AddWantSkills(context.Background(), uuid.New(), []models.SkillInput{{Name: "Go", Level: "expert"}})
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "AddWantSkills", mock.Anything, mock.Anything, mock.Anything)
}

func TestSkillService_AddWantSkills_DefaultUrgency(t *testing.T) {
	repo := new(mockSkillRepo)
	service := NewSkillService(repo)
	userID := uuid.New()

	repo.On("AddWantSkills", mock.Anything, userID, []models.SkillInput{{Name: "Go", Level: models.UrgencyMedium}}).Return(nil)
	repo.On("ListHave", mock.Anything, userID).Return([]models.HaveSkill{}, nil)
	repo.On("ListWant", mock.Anything, userID).Return([]models.WantSkill{{Name: "Go", UrgencyLevel: models.UrgencyMedium}}, nil)

	skills, err := service.AddWantSkills(context.Background(), userID, []models.SkillInput{{Name: "Go"}})
	require.NoError(t, err)
	require.Len(t, skills.Want, 1)
	assert.Equal(t, models.UrgencyMedium, skills.Want[0].UrgencyLevel)
}

func TestSkillService_RemoveMissingSkill(t *testing.T) {
	repo := new(mockSkillRepo)
	service := NewSkillService(repo)
	userID, skillID := uuid.New(), uuid.New()

	repo.On("RemoveHaveSkill", mock.Anything, userID, skillID).Return(repository.ErrSkillNotFound)
	repo.On("RemoveWantSkill", mock.Anything, userID, skillID).Return(nil)

	assert.ErrorIs(t, service.RemoveHaveSkill(context.Background(), userID, skillID), apperror.ErrSkillNotFound)
	assert.NoError(t, service.RemoveWantSkill(context.Background(), userID, skillID))
}

func TestSkillService_ListSkillsTrimsSearch(t *testing.T) {
	repo := new(mockSkillRepo)
	service := NewSkillService(repo)

	repo.On("List", mock.Anything, "gui", skillSearchLimit).Return([]models.Skill{{Name: "Guitar"}}, nil)

	skills, err := service.ListSkills(context.Background(), "  gui ")
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}
