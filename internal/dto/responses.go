package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/matching"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
)

// Pagination describes a page of a list response
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// MatchListResponse represents a page of matcher candidates
type MatchListResponse struct {
	Matches []matching.Candidate `json:"matches"`
	Pagination
}

// MatchResponse represents a connection as seen by one of its parties
type MatchResponse struct {
	ID            uuid.UUID            `json:"id"`
	UserID1       uuid.UUID            `json:"user1_id"`
	UserID2       uuid.UUID            `json:"user2_id"`
	OtherUserID   uuid.UUID            `json:"other_user_id"`
	MatchedSkills models.MatchedSkills `json:"matched_skills"`
	Status        string               `json:"status"`
	IsInitiator   bool                 `json:"is_initiator"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewMatchResponse разворачивает обмен к участнику viewerID.
func NewMatchResponse(m *models.Match, viewerID uuid.UUID) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		UserID1:       m.UserID1,
		UserID2:       m.UserID2,
		OtherUserID:   m.Counterpart(viewerID),
		MatchedSkills: m.SkillsFor(viewerID),
		Status:        m.Status,
		IsInitiator:   m.UserID1 == viewerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SavedMatchesResponse represents the connections involving the current user
type SavedMatchesResponse struct {
	Matches []models.SavedMatch `json:"matches"`
}

// NotificationListResponse represents a page of notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}

// UnreadCountResponse represents the unread notifications counter
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// UserListResponse represents a page of users for admin tooling
type UserListResponse struct {
	Users []models.User `json:"users"`
	Pagination
}

// ProfilePictureResponse represents an uploaded profile picture
type ProfilePictureResponse struct {
	ProfilePicture string `json:"profile_picture"`
	URL            string `json:"url"`
}
