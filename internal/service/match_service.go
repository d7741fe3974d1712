package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/matching"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

// CandidateRepository отбирает пользователей со встречным пересечением навыков.
type CandidateRepository interface {
	FindReciprocalCandidates(ctx context.Context, requesterID uuid.UUID, location string) ([]models.User, error)
}

// UserGetter возвращает пользователя по идентификатору.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SkillNameLoader загружает имена навыков для набора пользователей.
type SkillNameLoader interface {
	NamesByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]repository.SkillNames, error)
}

// MatchService подбирает кандидатов для обмена и строит детальный анализ пары.
type MatchService struct {
	candidates CandidateRepository
	users      UserGetter
	skills     SkillNameLoader
}

// NewMatchService создаёт сервис подбора.
func NewMatchService(candidates CandidateRepository, users UserGetter, skills SkillNameLoader) *MatchService {
	return &MatchService{candidates: candidates, users: users, skills: skills}
}

// FindCandidates возвращает страницу кандидатов, общее число и применённые фильтры.
// Операция только читает данные.
func (s *MatchService) FindCandidates(ctx context.Context, requesterID uuid.UUID, filters matching.Filters) ([]matching.Candidate, int, matching.Filters, error) {
	filters = filters.Normalize()

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, 0, filters, mapUserErr(err)
	}

	users, err := s.candidates.FindReciprocalCandidates(ctx, requesterID, filters.Location)
	if err != nil {
		return nil, 0, filters, err
	}
	if len(users) == 0 {
		return []matching.Candidate{}, 0, filters, nil
	}

	all := make([]models.User, 0, len(users)+1)
	all = append(all, *requester)
	all = append(all, users...)

	profiles, err := loadProfiles(ctx, s.skills, all)
	if err != nil {
		return nil, 0, filters, err
	}

	page, total := matching.FindCandidates(profiles[0], profiles[1:], filters)
	return page, total, filters, nil
}

// AnalyzeMatch строит детальный анализ пары requester/target.
func (s *MatchService) AnalyzeMatch(ctx context.Context, requesterID, targetID uuid.UUID) (*matching.Analysis, error) {
	if targetID == uuid.Nil {
		return nil, apperror.ErrTargetRequired
	}
	if requesterID == targetID {
		return nil, apperror.ErrSelfMatch
	}

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	profiles, err := loadProfiles(ctx, s.skills, []models.User{*requester, *target})
	if err != nil {
		return nil, err
	}

	analysis := matching.Analyze(profiles[0], profiles[1])
	return &analysis, nil
}

// loadProfiles собирает профили для алгоритма подбора в том же порядке, что и users.
func loadProfiles(ctx context.Context, loader SkillNameLoader, users []models.User) ([]matching.Profile, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	names, err := loader.NamesByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]matching.Profile, 0, len(users))
	for i := range users {
		u := &users[i]
		profiles = append(profiles, matching.Profile{
			UserID:         u.ID,
			Name:           u.Name,
			Bio:            u.Bio,
			Location:       u.LocationOrEmpty(),
			ProfilePicture: u.ProfilePicture,
			Have:           names[u.ID].Have,
			Want:           names[u.ID].Want,
		})
	}

	return profiles, nil
}
