package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill канонический навык. Имя уникально без учёта регистра.
type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HaveSkill навык, которым пользователь владеет и может обучить.
type HaveSkill struct {
	UserID           uuid.UUID `db:"user_id" json:"-"`
	SkillID          uuid.UUID `db:"skill_id" json:"skill_id"`
	Name             string    `db:"name" json:"name"`
	ProficiencyLevel string    `db:"proficiency_level" json:"proficiency_level"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// WantSkill навык, который пользователь хочет изучить.
type WantSkill struct {
	UserID       uuid.UUID `db:"user_id" json:"-"`
	SkillID      uuid.UUID `db:"skill_id" json:"skill_id"`
	Name         string    `db:"name" json:"name"`
	UrgencyLevel string    `db:"urgency_level" json:"urgency_level"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserSkills полный набор навыков пользователя.
type UserSkills struct {
	Have []HaveSkill `json:"skills_have"`
	Want []WantSkill `json:"skills_want"`
}

// SkillInput каноническая форма навыка, пришедшего от клиента.
// Level означает уровень владения для have-навыков и срочность для want-навыков.
type SkillInput struct {
	Name  string
	Level string
}
