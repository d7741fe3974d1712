package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationData произвольные данные уведомления, хранятся в JSON колонке.
type NotificationData map[string]interface{}

// Value реализует driver.Valuer.
func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("notification data: marshal %w", err)
	}
	return string(raw), nil
}

// Scan реализует sql.Scanner.
func (d *NotificationData) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = NotificationData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("notification data: неподдерживаемый тип %T", src)
	}

	out := NotificationData{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("notification data: unmarshal %w", err)
	}
	*d = out
	return nil
}

// Notification описывает событие, адресованное пользователю.
type Notification struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	UserID     uuid.UUID        `db:"user_id" json:"user_id"`
	FromUserID *uuid.UUID       `db:"from_user_id" json:"from_user_id,omitempty"`
	Type       string           `db:"type" json:"type"`
	Title      string           `db:"title" json:"title"`
	Message    string           `db:"message" json:"message"`
	Data       NotificationData `db:"data" json:"data"`
	IsRead     bool             `db:"is_read" json:"is_read"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}
