package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MatchedSkills снимок совпавших навыков на момент запроса.
// Хранится в JSON колонке, но в бизнес-логике всегда типизирован.
// В таблице matches снимок записан с точки зрения первого участника pair_key
// (см. PairFirst), наружу отдаётся через Match.SkillsFor.
type MatchedSkills struct {
	YouCanTeach  []string `json:"skillsYouCanTeachThem"`
	TheyCanTeach []string `json:"skillsTheyCanTeachYou"`
}

// Mirror возвращает снимок с точки зрения второй стороны.
func (m MatchedSkills) Mirror() MatchedSkills {
	return MatchedSkills{YouCanTeach: m.TheyCanTeach, TheyCanTeach: m.YouCanTeach}
}

// Value реализует driver.Valuer.
func (m MatchedSkills) Value() (driver.Value, error) {
	if m.YouCanTeach == nil {
		m.YouCanTeach = []string{}
	}
	if m.TheyCanTeach == nil {
		m.TheyCanTeach = []string{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("matched skills: marshal %w", err)
	}
	return string(raw), nil
}

// Scan реализует sql.Scanner.
func (m *MatchedSkills) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = MatchedSkills{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("matched skills: неподдерживаемый тип %T", src)
	}

	var out MatchedSkills
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("matched skills: unmarshal %w", err)
	}
	*m = out
	return nil
}

// Match запрос на обмен навыками между двумя пользователями (таблица matches).
// UserID1 инициатор, UserID2 адресат. PairKey уникален для неупорядоченной пары.
// Направление MatchedSkills не зависит от того, кто инициатор.
type Match struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	UserID1       uuid.UUID     `db:"user1_id" json:"user1_id"`
	UserID2       uuid.UUID     `db:"user2_id" json:"user2_id"`
	PairKey       string        `db:"pair_key" json:"-"`
	MatchedSkills MatchedSkills `db:"matched_skills" json:"matched_skills"`
	Status        string        `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Involves проверяет, участвует ли пользователь в обмене.
func (m *Match) Involves(userID uuid.UUID) bool {
	return m.UserID1 == userID || m.UserID2 == userID
}

// Counterpart возвращает идентификатор второй стороны.
func (m *Match) Counterpart(userID uuid.UUID) uuid.UUID {
	if m.UserID1 == userID {
		return m.UserID2
	}
	return m.UserID1
}

// SkillsFor возвращает снимок навыков с точки зрения указанного пользователя.
func (m *Match) SkillsFor(userID uuid.UUID) MatchedSkills {
	return StoredSkillsFor(userID, m.Counterpart(userID), m.MatchedSkills)
}

// StoredSkillsFor разворачивает снимок в формате хранения к пользователю viewerID.
// Та же функция переводит снимок viewerID в формат хранения: Mirror обратим.
func StoredSkillsFor(viewerID, otherID uuid.UUID, skills MatchedSkills) MatchedSkills {
	if PairFirst(viewerID, otherID) == viewerID {
		return skills
	}
	return skills.Mirror()
}

// PairFirst возвращает участника, который стоит первым в ключе пары.
func PairFirst(a, b uuid.UUID) uuid.UUID {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b
	}
	return a
}

// PairKey строит ключ неупорядоченной пары пользователей.
func PairKey(a, b uuid.UUID) string {
	x, y := a.String(), b.String()
	if strings.Compare(x, y) > 0 {
		x, y = y, x
	}
	return x + ":" + y
}

// SavedMatch запрос на обмен вместе с данными второй стороны.
// После ListSaved MatchedSkills уже развёрнут к запросившему пользователю.
type SavedMatch struct {
	Match
	OtherUserID             uuid.UUID `db:"other_user_id" json:"other_user_id"`
	OtherUserName           string    `db:"other_user_name" json:"other_user_name"`
	OtherUserLocation       *string   `db:"other_user_location" json:"other_user_location,omitempty"`
	OtherUserProfilePicture *string   `db:"other_user_profile_picture" json:"other_user_profile_picture,omitempty"`
	IsInitiator             bool      `db:"-" json:"is_initiator"`
}
