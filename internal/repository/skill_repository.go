package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/repository/common"
)

// ErrSkillNotFound возвращается, когда навык не привязан к пользователю.
var ErrSkillNotFound = fmt.Errorf("skill: %w", common.ErrNotFound)

const (
	haveTable = "user_skills_have"
	wantTable = "user_skills_want"
)

// SkillRepository отвечает за справочник навыков и навыки пользователей.
type SkillRepository struct {
	db      *sqlx.DB
	dialect common.Dialect
}

// NewSkillRepository создаёт экземпляр репозитория.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db, dialect: common.NewDialect(db.DriverName())}
}

// List возвращает навыки из справочника, опционально по подстроке имени.
func (r *SkillRepository) List(ctx context.Context, search string, limit int) ([]models.Skill, error) {
	query := `SELECT id, name, created_at FROM skills`
	args := []interface{}{}

	if search != "" {
		query += " WHERE " + r.dialect.ContainsLike("name")
		args = append(args, common.LikePattern(search))
	}

	query += " ORDER BY name ASC LIMIT ?"
	args = append(args, limit)

	skills := []models.Skill{}
	if err := r.db.SelectContext(ctx, &skills, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("skill repository: list %w", err)
	}

	return skills, nil
}

// AddHaveSkills добавляет или обновляет навыки, которыми владеет пользователь.
func (r *SkillRepository) AddHaveSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error {
	return r.addUserSkills(ctx, haveTable, "proficiency_level", userID, inputs)
}

// AddWantSkills добавляет или обновляет навыки, которые пользователь хочет изучить.
func (r *SkillRepository) AddWantSkills(ctx context.Context, userID uuid.UUID, inputs []models.SkillInput) error {
	return r.addUserSkills(ctx, wantTable, "urgency_level", userID, inputs)
}

func (r *SkillRepository) addUserSkills(ctx context.Context, table, levelColumn string, userID uuid.UUID, inputs []models.SkillInput) error {
	upsert := r.dialect.Upsert(table,
		[]string{"user_id", "skill_id", levelColumn, "created_at", "updated_at"},
		[]string{"user_id", "skill_id"},
		[]string{levelColumn, "updated_at"},
	)

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		for _, input := range inputs {
			skillID, err := r.ensureSkill(ctx, tx, input.Name, now)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(upsert), userID, skillID, input.Level, now, now); err != nil {
				return fmt.Errorf("skill repository: upsert %s %w", table, err)
			}
		}
		return nil
	})
}

// ensureSkill возвращает идентификатор канонического навыка, создавая его при необходимости.
// Уникальность имени без учёта регистра обеспечивается индексом в БД.
func (r *SkillRepository) ensureSkill(ctx context.Context, tx *sqlx.Tx, name string, now time.Time) (uuid.UUID, error) {
	insert := r.dialect.InsertIgnore("skills", "id", "name", "created_at")
	if _, err := tx.ExecContext(ctx, tx.Rebind(insert), uuid.New(), name, now); err != nil {
		return uuid.Nil, fmt.Errorf("skill repository: ensure skill %w", err)
	}

	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM skills WHERE LOWER(name) = LOWER(?)`), name); err != nil {
		return uuid.Nil, fmt.Errorf("skill repository: select skill %w", err)
	}

	return id, nil
}

// RemoveHaveSkill отвязывает навык из списка "умею".
func (r *SkillRepository) RemoveHaveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.removeUserSkill(ctx, haveTable, userID, skillID)
}

// RemoveWantSkill отвязывает навык из списка "хочу изучить".
func (r *SkillRepository) RemoveWantSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.removeUserSkill(ctx, wantTable, userID, skillID)
}

func (r *SkillRepository) removeUserSkill(ctx context.Context, table string, userID, skillID uuid.UUID) error {
	query := r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND skill_id = ?`, table))
	result, err := r.db.ExecContext(ctx, query, userID, skillID)
	if err != nil {
		return fmt.Errorf("skill repository: remove from %s %w", table, err)
	}

	return requireAffected(result, ErrSkillNotFound)
}

// ListHave возвращает навыки, которыми владеет пользователь.
func (r *SkillRepository) ListHave(ctx context.Context, userID uuid.UUID) ([]models.HaveSkill, error) {
	query := r.db.Rebind(`
		SELECT h.user_id, h.skill_id, s.name, h.proficiency_level, h.created_at, h.updated_at
		FROM user_skills_have h
		JOIN skills s ON s.id = h.skill_id
		WHERE h.user_id = ?
		ORDER BY s.name ASC
	`)

	skills := []models.HaveSkill{}
	if err := r.db.SelectContext(ctx, &skills, query, userID); err != nil {
		return nil, fmt.Errorf("skill repository: list have %w", err)
	}

	return skills, nil
}

// ListWant возвращает навыки, которые пользователь хочет изучить.
func (r *SkillRepository) ListWant(ctx context.Context, userID uuid.UUID) ([]models.WantSkill, error) {
	query := r.db.Rebind(`
		SELECT w.user_id, w.skill_id, s.name, w.urgency_level, w.created_at, w.updated_at
		FROM user_skills_want w
		JOIN skills s ON s.id = w.skill_id
		WHERE w.user_id = ?
		ORDER BY s.name ASC
	`)

	skills := []models.WantSkill{}
	if err := r.db.SelectContext(ctx, &skills, query, userID); err != nil {
		return nil, fmt.Errorf("skill repository: list want %w", err)
	}

	return skills, nil
}

// SkillNames имена навыков пользователя, сгруппированные по направлению.
type SkillNames struct {
	Have []string
	Want []string
}

type userSkillName struct {
	UserID uuid.UUID `db:"user_id"`
	Name   string    `db:"name"`
}

// NamesByUsers загружает имена have/want навыков сразу для набора пользователей.
func (r *SkillRepository) NamesByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]SkillNames, error) {
	result := make(map[uuid.UUID]SkillNames, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	have, err := r.namesFrom(ctx, haveTable, userIDs)
	if err != nil {
		return nil, err
	}
	want, err := r.namesFrom(ctx, wantTable, userIDs)
	if err != nil {
		return nil, err
	}

	for _, row := range have {
		names := result[row.UserID]
		names.Have = append(names.Have, row.Name)
		result[row.UserID] = names
	}
	for _, row := range want {
		names := result[row.UserID]
		names.Want = append(names.Want, row.Name)
		result[row.UserID] = names
	}

	return result, nil
}

func (r *SkillRepository) namesFrom(ctx context.Context, table string, userIDs []uuid.UUID) ([]userSkillName, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT t.user_id, s.name
		FROM %s t
		JOIN skills s ON s.id = t.skill_id
		WHERE t.user_id IN (?)
		ORDER BY s.name ASC
	`, table), userIDs)
	if err != nil {
		return nil, fmt.Errorf("skill repository: build names query %w", err)
	}

	rows := []userSkillName{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("skill repository: names from %s %w", table, err)
	}

	return rows, nil
}
