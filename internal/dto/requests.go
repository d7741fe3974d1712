package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}

// SaveMatchRequest represents a connection proposal
type SaveMatchRequest struct {
	User2ID string `json:"user2Id" binding:"omitempty,uuid"`
}

// RespondMatchRequest represents an accept/decline of a pending connection
type RespondMatchRequest struct {
	UserID string `json:"userId" binding:"omitempty,uuid"`
}

// ParseTarget returns the target id or uuid.Nil when it is missing.
func (r *SaveMatchRequest) ParseTarget() uuid.UUID {
	return parseOptionalUUID(r.User2ID)
}

// ParseRequester returns the requester id or uuid.Nil when it is missing.
func (r *RespondMatchRequest) ParseRequester() uuid.UUID {
	return parseOptionalUUID(r.UserID)
}

// AddSkillsRequest represents a batch of have/want skills
type AddSkillsRequest struct {
	Skills []SkillInputJSON `json:"skills" binding:"required,min=1,max=50,dive"`
}

// ToModels resolves the tagged inputs into canonical skill inputs.
func (r *AddSkillsRequest) ToModels() []models.SkillInput {
	out := make([]models.SkillInput, 0, len(r.Skills))
	for _, s := range r.Skills {
		out = append(out, s.SkillInput())
	}
	return out
}

// SkillInputJSON accepts either a bare skill name or an object with a level.
//
//	"Guitar"
//	{"name": "Guitar", "level": "expert"}
//	{"name": "Python", "urgency": "high"}
type SkillInputJSON struct {
	Name  string
	Level string
}

type skillInputObject struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Urgency string `json:"urgency"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillInputJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("skill: пустое значение")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("skill: %w", err)
		}
		*s = SkillInputJSON{Name: name}
		return nil
	case '{':
		var obj skillInputObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("skill: %w", err)
		}
		level := obj.Level
		if level == "" {
			level = obj.Urgency
		}
		*s = SkillInputJSON{Name: obj.Name, Level: level}
		return nil
	default:
		return fmt.Errorf("skill: ожидается строка или объект {name, level}")
	}
}

// SkillInput converts the wire value into the canonical form.
func (s SkillInputJSON) SkillInput() models.SkillInput {
	return models.SkillInput{Name: s.Name, Level: s.Level}
}

func parseOptionalUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
