package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/matching"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
)

// FindReciprocalCandidates грубый отбор: все активные пользователи кроме запрашивающего.
func (m *memoryStore) FindReciprocalCandidates(ctx context.Context, requesterID uuid.UUID, location string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.users {
		if u.ID == requesterID || !u.IsActive {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(u.LocationOrEmpty()), strings.ToLower(location)) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

type failingCandidates struct{}

func (failingCandidates) FindReciprocalCandidates(ctx context.Context, requesterID uuid.UUID, location string) ([]models.User, error) {
	return nil, errors.New("db down")
}

func TestMatchService_FindCandidates(t *testing.T) {
	store := newMemoryStore()
	alice := store.addUser("alice", []string{"Guitar"}, []string{"Python"})
	bob := store.addUser("bob", []string{"Python"}, []string{"Guitar"})
	store.addUser("carol", []string{"Python"}, nil)
	store.addUser("dave", nil, nil)

	svc := NewMatchService(store, store, store)

	got, total, filters, err := svc.FindCandidates(context.Background(), alice.ID, matching.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 20, filters.Limit)
	assert.Equal(t, 1, filters.MinOverlap)
	require.Len(t, got, 1)
	assert.Equal(t, bob.ID, got[0].UserID)
	assert.Equal(t, []string{"Guitar"}, got[0].SkillsYouCanTeachThem)
	assert.Equal(t, []string{"Python"}, got[0].SkillsTheyCanTeachYou)
	assert.Equal(t, 2, got[0].MatchScore)

	// пустой профиль не получает кандидатов и сам не попадает в выдачу
	empty := store.addUser("empty", nil, nil)
	got, total, _, err = svc.FindCandidates(context.Background(), empty.ID, matching.Filters{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)
}

func TestMatchService_FindCandidatesLocationFilter(t *testing.T) {
	store := newMemoryStore()
	alice := store.addUser("alice", []string{"Guitar"}, []string{"Python"})
	bob := store.addUser("bob", []string{"Python"}, []string{"Guitar"})
	berlin := "Berlin"
	bob.Location = &berlin

	svc := NewMatchService(store, store, store)

	got, total, _, err := svc.FindCandidates(context.Background(), alice.ID, matching.Filters{Location: "paris"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, _, _, err = svc.FindCandidates(context.Background(), alice.ID, matching.Filters{Location: "BER"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMatchService_FindCandidatesErrors(t *testing.T) {
	store := newMemoryStore()
	alice := store.addUser("alice", []string{"Guitar"}, []string{"Python"})

	svc := NewMatchService(store, store, store)
	_, _, _, err := svc.FindCandidates(context.Background(), uuid.New(), matching.Filters{})
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)

	svc = NewMatchService(failingCandidates{}, store, store)
	_, _, _, err = svc.FindCandidates(context.Background(), alice.ID, matching.Filters{})
	assert.EqualError(t, err, "db down")
}

func TestMatchService_AnalyzeMatch(t *testing.T) {
	store := newMemoryStore()
	alice := store.addUser("alice", []string{"Guitar"}, []string{"Python"})
	bob := store.addUser("bob", []string{"Python"}, []string{"Guitar"})

	svc := NewMatchService(store, store, store)

	res, err := svc.AnalyzeMatch(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.IsValidMatch)
	assert.Equal(t, bob.ID, res.TargetID)
	assert.Equal(t, 2, res.MatchScore)
	assert.NotEmpty(t, res.Recommendations)

	_, err = svc.AnalyzeMatch(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperror.ErrSelfMatch)

	_, err = svc.AnalyzeMatch(context.Background(), alice.ID, uuid.Nil)
	assert.ErrorIs(t, err, apperror.ErrTargetRequired)

	_, err = svc.AnalyzeMatch(context.Background(), alice.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}
