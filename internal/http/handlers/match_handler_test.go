package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/dto"
	"github.com/ignatzorin/skillswapper-backend/internal/email"
	"github.com/ignatzorin/skillswapper-backend/internal/goroutine"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

type matchFixture struct {
	store         *fakeStore
	notifications *fakeNotifications
	handler       *MatchHandler
	alice, bob    *models.User
}

func newMatchFixture() *matchFixture {
	store := newFakeStore()
	notifications := newFakeNotifications()
	notifier := service.NewNotificationService(notifications)

	connections := service.NewConnectionService(store, store, store, notifier, email.LogSender{},
		service.WithRunner(goroutine.Sync))

	f := &matchFixture{
		store:         store,
		notifications: notifications,
		handler:       NewMatchHandler(service.NewMatchService(store, store, store), connections),
	}
	f.alice = store.addUser("alice", []string{"Guitar"}, []string{"Python"})
	f.bob = store.addUser("bob", []string{"Python"}, []string{"Guitar"})
	return f
}

func (f *matchFixture) routerFor(userID uuid.UUID) *gin.Engine {
	r := newTestRouter()
	g := r.Group("/api/matches", withUser(userID))
	g.GET("", f.handler.FindMatches)
	g.GET("/detailed/:userId", f.handler.Detailed)
	g.POST("/save", f.handler.Save)
	g.POST("/accept", f.handler.Accept)
	g.POST("/decline", f.handler.Decline)
	g.GET("/saved", f.handler.Saved)
	return r
}

func TestMatchHandler_Unauthorized(t *testing.T) {
	r := newTestRouter()
	handler := &MatchHandler{}
	r.GET("/api/matches", handler.FindMatches)
	r.POST("/api/matches/save", handler.Save)

	w := doJSON(r, http.MethodGet, "/api/matches", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/matches/save", `{"user2Id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMatchHandler_FindMatches(t *testing.T) {
	f := newMatchFixture()
	r := f.routerFor(f.alice.ID)

	w := doJSON(r, http.MethodGet, "/api/matches?limit=500&minOverlap=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data dto.MatchListResponse
	env := decode(t, w, &data)
	assert.True(t, env.Success)
	assert.Equal(t, 1, data.Total)
	assert.Equal(t, 20, data.Limit)
	require.Len(t, data.Matches, 1)
	assert.Equal(t, f.bob.ID, data.Matches[0].UserID)
	assert.Equal(t, []string{"Guitar"}, data.Matches[0].SkillsYouCanTeachThem)
	assert.Equal(t, []string{"Python"}, data.Matches[0].SkillsTheyCanTeachYou)
	assert.Equal(t, 2, data.Matches[0].MatchScore)
}

func TestMatchHandler_Detailed(t *testing.T) {
	f := newMatchFixture()
	r := f.routerFor(f.alice.ID)

	w := doJSON(r, http.MethodGet, "/api/matches/detailed/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/matches/detailed/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/matches/detailed/"+f.bob.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isValidMatch":true`)
}

func TestMatchHandler_SaveValidation(t *testing.T) {
	f := newMatchFixture()
	r := f.routerFor(f.alice.ID)

	w := doJSON(r, http.MethodPost, "/api/matches/save", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "не указан пользователь", env.Message)

	w = doJSON(r, http.MethodPost, "/api/matches/save", `{"user2Id":"`+f.alice.ID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/matches/save", `{"user2Id":"garbage"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/matches/save", `{"user2Id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, f.store.matches)
}

func TestMatchHandler_Workflow(t *testing.T) {
	f := newMatchFixture()
	asAlice := f.routerFor(f.alice.ID)
	asBob := f.routerFor(f.bob.ID)

	w := doJSON(asBob, http.MethodPost, "/api/matches/accept", `{"userId":"`+f.alice.ID.String()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(asAlice, http.MethodPost, "/api/matches/save", `{"user2Id":"`+f.bob.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var proposed dto.MatchResponse
	decode(t, w, &proposed)
	assert.True(t, proposed.IsInitiator)
	assert.Equal(t, f.bob.ID, proposed.OtherUserID)
	assert.Equal(t, []string{"Guitar"}, proposed.MatchedSkills.YouCanTeach)
	assert.Equal(t, []string{"Python"}, proposed.MatchedSkills.TheyCanTeach)

	var saved dto.SavedMatchesResponse
	w = doJSON(asBob, http.MethodGet, "/api/matches/saved?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &saved)
	require.Len(t, saved.Matches, 1)
	assert.False(t, saved.Matches[0].IsInitiator)

	w = doJSON(asBob, http.MethodPost, "/api/matches/accept", `{"userId":"`+f.alice.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var match dto.MatchResponse
	decode(t, w, &match)
	assert.Equal(t, models.MatchStatusAccepted, match.Status)
	assert.False(t, match.IsInitiator)
	assert.Equal(t, f.alice.ID, match.OtherUserID)
	assert.Equal(t, []string{"Python"}, match.MatchedSkills.YouCanTeach)
	assert.Equal(t, []string{"Guitar"}, match.MatchedSkills.TheyCanTeach)

	w = doJSON(asBob, http.MethodPost, "/api/matches/decline", `{"userId":"`+f.alice.ID.String()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(asBob, http.MethodGet, "/api/matches/saved?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var types []string
	for _, n := range f.notifications.items {
		types = append(types, n.Type)
	}
	assert.ElementsMatch(t, []string{models.NotificationConnectionRequest, models.NotificationConnectionAccepted}, types)
}
