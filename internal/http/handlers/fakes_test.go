package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

// fakeStore in-memory реализация репозиториев, достаточная для HTTP сценариев.
type fakeStore struct {
	users         map[uuid.UUID]*models.User
	skills        map[uuid.UUID]repository.SkillNames
	matches       map[string]*models.Match
	notifications map[uuid.UUID]*models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*models.User),
		skills:        make(map[uuid.UUID]repository.SkillNames),
		matches:       make(map[string]*models.Match),
		notifications: make(map[uuid.UUID]*models.Notification),
	}
}

func (s *fakeStore) addUser(name string, have, want []string) *models.User {
	u := &models.User{ID: uuid.New(), Name: name, Email: name + "@example.com", IsActive: true, Role: models.RoleUser}
	s.users[u.ID] = u
	s.skills[u.ID] = repository.SkillNames{Have: have, Want: want}
	return u
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeStore) FindReciprocalCandidates(ctx context.Context, requesterID uuid.UUID, location string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		if u.ID != requesterID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeStore) NamesByUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.SkillNames, error) {
	out := make(map[uuid.UUID]repository.SkillNames, len(ids))
	for _, id := range ids {
		out[id] = s.skills[id]
	}
	return out, nil
}

func (s *fakeStore) GetByPair(ctx context.Context, a, b uuid.UUID) (*models.Match, error) {
	if m, ok := s.matches[models.PairKey(a, b)]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, repository.ErrMatchNotFound
}

func (s *fakeStore) UpsertProposal(ctx context.Context, initiatorID, targetID uuid.UUID, skills models.MatchedSkills) (*models.Match, error) {
	key := models.PairKey(initiatorID, targetID)
	if m, ok := s.matches[key]; ok {
		m.MatchedSkills = skills
	} else {
		s.matches[key] = &models.Match{
			ID: uuid.New(), UserID1: initiatorID, UserID2: targetID, PairKey: key,
			MatchedSkills: skills, Status: models.MatchStatusPending,
		}
	}
	return s.GetByPair(ctx, initiatorID, targetID)
}

func (s *fakeStore) TransitionPending(ctx context.Context, a, b uuid.UUID, status string) (*models.Match, error) {
	m, ok := s.matches[models.PairKey(a, b)]
	if !ok || m.Status != models.MatchStatusPending {
		return nil, repository.ErrMatchNotFound
	}
	m.Status = status
	return s.GetByPair(ctx, a, b)
}

func (s *fakeStore) ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]models.SavedMatch, error) {
	out := []models.SavedMatch{}
	for _, m := range s.matches {
		if m.Involves(userID) && (status == "" || m.Status == status) {
			out = append(out, models.SavedMatch{Match: *m, OtherUserID: m.Counterpart(userID), IsInitiator: m.UserID1 == userID})
		}
	}
	return out, nil
}

// fakeNotifications реализует service.NotificationRepository.
type fakeNotifications struct {
	items map[uuid.UUID]*models.Notification
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{items: make(map[uuid.UUID]*models.Notification)}
}

func (f *fakeNotifications) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNotifications) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if n, ok := f.items[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, repository.ErrNotificationNotFound
}

func (f *fakeNotifications) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	n, ok := f.items[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotifications) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	var updated int64
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotifications) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotificationNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeNotifications) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// withUser подставляет userID в контекст, как это делает AuthMiddleware.
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextRoleKey, models.RoleUser)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var env struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Response
}
