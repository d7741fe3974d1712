package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User описывает пользователя платформы обмена навыками.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	Location       *string   `db:"location" json:"location,omitempty"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	Role           string    `db:"role" json:"role"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// LocationOrEmpty возвращает город пользователя или пустую строку.
func (u *User) LocationOrEmpty() string {
	if u == nil || u.Location == nil {
		return ""
	}
	return *u.Location
}

// PublicProfile публичное представление пользователя без контактных данных.
type PublicProfile struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Bio            *string     `json:"bio,omitempty"`
	Location       *string     `json:"location,omitempty"`
	ProfilePicture *string     `json:"profile_picture,omitempty"`
	SkillsHave     []HaveSkill `json:"skills_have"`
	SkillsWant     []WantSkill `json:"skills_want"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewPublicProfile собирает публичный профиль из пользователя и его навыков.
func NewPublicProfile(u *User, have []HaveSkill, want []WantSkill) *PublicProfile {
	if have == nil {
		have = []HaveSkill{}
	}
	if want == nil {
		want = []WantSkill{}
	}
	return &PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		Bio:            u.Bio,
		Location:       u.Location,
		ProfilePicture: u.ProfilePicture,
		SkillsHave:     have,
		SkillsWant:     want,
		CreatedAt:      u.CreatedAt,
	}
}
