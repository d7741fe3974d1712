package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		n.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit, offset, unreadOnly)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func TestNotificationService_Notify(t *testing.T) {
	repo := new(mockNotificationRepo)
	service := NewNotificationService(repo)

	userID, fromID := uuid.New(), uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == userID && *n.FromUserID == fromID && n.Type == models.NotificationConnectionRequest && !n.IsRead
	})).Return(nil)

	n, err := service.Notify(context.Background(), NotifyInput{
		UserID:     userID,
		FromUserID: &fromID,
		Type:       models.NotificationConnectionRequest,
		Title:      "t",
		Message:    "m",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, n.ID)
	repo.AssertExpectations(t)
}

func TestNotificationService_ListClampsPagination(t *testing.T) {
	repo := new(mockNotificationRepo)
	service := NewNotificationService(repo)
	userID := uuid.New()

	repo.On("List", mock.Anything, userID, 20, 0, true).Return([]models.Notification{}, nil)

	_, err := service.ListNotifications(context.Background(), userID, 500, -1, true)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkAsRead_Ownership(t *testing.T) {
	repo := new(mockNotificationRepo)
	service := NewNotificationService(repo)

	ownerID, otherID, id := uuid.New(), uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Notification{ID: id, UserID: ownerID}, nil)
	repo.On("MarkAsRead", mock.Anything, id).Return(nil)

	err := service.MarkAsRead(context.Background(), id, otherID)
	assert.ErrorIs(t, err, apperror.ErrNotificationForbidden)
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, id)

	require.NoError(t, service.MarkAsRead(context.Background(), id, ownerID))
	repo.AssertCalled(t, "MarkAsRead", mock.Anything, id)
}

func TestNotificationService_Delete_NotFound(t *testing.T) {
	repo := new(mockNotificationRepo)
	service := NewNotificationService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotificationNotFound)

	err := service.DeleteNotification(context.Background(), id, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotificationNotFound)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNotificationService_MarkAllAndCount(t *testing.T) {
	repo := new(mockNotificationRepo)
	service := NewNotificationService(repo)
	userID := uuid.New()

	repo.On("MarkAllAsRead", mock.Anything, userID).Return(int64(3), nil)
	repo.On("CountUnread", mock.Anything, userID).Return(0, nil)

	updated, err := service.MarkAllAsRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	count, err := service.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
