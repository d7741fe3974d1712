package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationService содержит бизнес-логику работы с уведомлениями.
type NotificationService struct {
	repo NotificationRepository
}

// NewNotificationService создаёт новый сервис уведомлений.
func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// NotifyInput данные нового уведомления.
type NotifyInput struct {
	UserID     uuid.UUID
	FromUserID *uuid.UUID
	Type       string
	Title      string
	Message    string
	Data       models.NotificationData
}

// Notify создаёт новое уведомление.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:     in.UserID,
		FromUserID: in.FromUserID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Data:       in.Data,
		IsRead:     false,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, userID, limit, offset, unreadOnly)
}

// MarkAsRead отмечает уведомление как прочитанное.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return err
	}

	return mapNotificationErr(s.repo.MarkAsRead(ctx, id))
}

// MarkAllAsRead отмечает все уведомления пользователя как прочитанные.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// DeleteNotification удаляет уведомление.
func (s *NotificationService) DeleteNotification(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.checkOwner(ctx, id, userID); err != nil {
		return err
	}

	return mapNotificationErr(s.repo.Delete(ctx, id))
}

// CountUnread возвращает количество непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) checkOwner(ctx context.Context, id, userID uuid.UUID) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapNotificationErr(err)
	}

	if notification.UserID != userID {
		return apperror.ErrNotificationForbidden
	}

	return nil
}

func mapNotificationErr(err error) error {
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return apperror.ErrNotificationNotFound
	}
	return err
}
