package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/repository/common"
)

// ErrMatchNotFound возвращается, когда обмен для пары не найден
// или не находится в ожидаемом статусе.
var ErrMatchNotFound = fmt.Errorf("match: %w", common.ErrNotFound)

// MatchRepository отвечает за поиск кандидатов и хранение запросов на обмен.
type MatchRepository struct {
	db      *sqlx.DB
	dialect common.Dialect
}

// NewMatchRepository создаёт экземпляр репозитория.
func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db, dialect: common.NewDialect(db.DriverName())}
}

// FindReciprocalCandidates возвращает активных пользователей, с которыми у requester
// есть встречное пересечение навыков в обе стороны. Окончательный расчёт и ранжирование
// выполняет пакет matching.
func (r *MatchRepository) FindReciprocalCandidates(ctx context.Context, requesterID uuid.UUID, location string) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users u
		WHERE u.id <> ? AND u.is_active = TRUE
		AND EXISTS (
			SELECT 1 FROM user_skills_have rh
			JOIN user_skills_want uw ON uw.skill_id = rh.skill_id
			WHERE rh.user_id = ? AND uw.user_id = u.id
		)
		AND EXISTS (
			SELECT 1 FROM user_skills_have uh
			JOIN user_skills_want rw ON rw.skill_id = uh.skill_id
			WHERE uh.user_id = u.id AND rw.user_id = ?
		)
	`
	args := []interface{}{requesterID, requesterID, requesterID}

	if location != "" {
		query += " AND " + r.dialect.ContainsLike("COALESCE(u.location, '')")
		args = append(args, common.LikePattern(location))
	}

	query += " ORDER BY u.name ASC"

	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("match repository: find candidates %w", err)
	}

	return users, nil
}

// upsertProposalQuery при конфликте по pair_key обновляет только снимок и updated_at.
func upsertProposalQuery(d common.Dialect) string {
	return d.Upsert("matches",
		[]string{"id", "user1_id", "user2_id", "pair_key", "matched_skills", "status", "created_at", "updated_at"},
		[]string{"pair_key"},
		[]string{"matched_skills", "updated_at"},
	)
}

// UpsertProposal создаёт запрос на обмен для пары или обновляет снимок навыков
// существующего. Статус и инициатор существующей записи не меняются.
// skills передаётся в формате хранения (см. models.StoredSkillsFor).
func (r *MatchRepository) UpsertProposal(ctx context.Context, initiatorID, targetID uuid.UUID, skills models.MatchedSkills) (*models.Match, error) {
	now := time.Now().UTC()
	pairKey := models.PairKey(initiatorID, targetID)

	query := upsertProposalQuery(r.dialect)

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		uuid.New(), initiatorID, targetID, pairKey, skills, models.MatchStatusPending, now, now,
	); err != nil {
		return nil, fmt.Errorf("match repository: upsert proposal %w", err)
	}

	return r.GetByPair(ctx, initiatorID, targetID)
}

// GetByPair возвращает обмен для неупорядоченной пары пользователей.
func (r *MatchRepository) GetByPair(ctx context.Context, a, b uuid.UUID) (*models.Match, error) {
	var match models.Match
	query := r.db.Rebind(`SELECT * FROM matches WHERE pair_key = ?`)
	if err := r.db.GetContext(ctx, &match, query, models.PairKey(a, b)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("match repository: get by pair %w", err)
	}

	return &match, nil
}

// TransitionPending переводит ожидающий обмен пары в новый статус.
// Если ожидающей записи нет (в том числе после предыдущего решения), возвращает ErrMatchNotFound.
// Гонка accept/decline разрешается условием status = 'pending' в UPDATE.
func (r *MatchRepository) TransitionPending(ctx context.Context, a, b uuid.UUID, status string) (*models.Match, error) {
	query := r.db.Rebind(`UPDATE matches SET status = ?, updated_at = ? WHERE pair_key = ? AND status = ?`)
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), models.PairKey(a, b), models.MatchStatusPending)
	if err != nil {
		return nil, fmt.Errorf("match repository: transition %w", err)
	}

	if err := requireAffected(result, ErrMatchNotFound); err != nil {
		return nil, err
	}

	return r.GetByPair(ctx, a, b)
}

// ListForUser возвращает обмены, в которых участвует пользователь, вместе с данными второй стороны.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]models.SavedMatch, error) {
	query := `
		SELECT m.id, m.user1_id, m.user2_id, m.pair_key, m.matched_skills, m.status, m.created_at, m.updated_at,
			u.id AS other_user_id,
			u.name AS other_user_name,
			u.location AS other_user_location,
			u.profile_picture AS other_user_profile_picture
		FROM matches m
		JOIN users u ON u.id = CASE WHEN m.user1_id = ? THEN m.user2_id ELSE m.user1_id END
		WHERE (m.user1_id = ? OR m.user2_id = ?)
	`
	args := []interface{}{userID, userID, userID}

	if status != "" {
		query += " AND m.status = ?"
		args = append(args, status)
	}

	query += " ORDER BY m.updated_at DESC, m.id DESC"

	matches := []models.SavedMatch{}
	if err := r.db.SelectContext(ctx, &matches, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("match repository: list for user %w", err)
	}

	for i := range matches {
		matches[i].IsInitiator = matches[i].UserID1 == userID
	}

	return matches, nil
}
