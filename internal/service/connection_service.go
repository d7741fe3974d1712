package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswapper-backend/internal/email"
	"github.com/ignatzorin/skillswapper-backend/internal/goroutine"
	"github.com/ignatzorin/skillswapper-backend/internal/logger"
	"github.com/ignatzorin/skillswapper-backend/internal/matching"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
)

const emailSendTimeout = 30 * time.Second

// ConnectionRepository хранит запросы на обмен.
type ConnectionRepository interface {
	UpsertProposal(ctx context.Context, initiatorID, targetID uuid.UUID, skills models.MatchedSkills) (*models.Match, error)
	TransitionPending(ctx context.Context, a, b uuid.UUID, status string) (*models.Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]models.SavedMatch, error)
}

// Notifier создаёт уведомления.
type Notifier interface {
	Notify(ctx context.Context, in NotifyInput) (*models.Notification, error)
}

// ConnectionService реализует жизненный цикл запроса на обмен:
// pending -> accepted и pending -> declined.
type ConnectionService struct {
	repo     ConnectionRepository
	users    UserGetter
	skills   SkillNameLoader
	notifier Notifier
	mailer   email.Sender
	run      goroutine.Runner
	baseURL  string
}

// ConnectionOption настраивает ConnectionService.
type ConnectionOption func(*ConnectionService)

// WithRunner задаёт способ запуска фоновых писем.
func WithRunner(run goroutine.Runner) ConnectionOption {
	return func(s *ConnectionService) { s.run = run }
}

// WithBaseURL задаёт адрес фронтенда для ссылок в письмах.
func WithBaseURL(baseURL string) ConnectionOption {
	return func(s *ConnectionService) { s.baseURL = strings.TrimRight(baseURL, "/") }
}

// NewConnectionService создаёт сервис обменов.
func NewConnectionService(repo ConnectionRepository, users UserGetter, skills SkillNameLoader, notifier Notifier, mailer email.Sender, opts ...ConnectionOption) *ConnectionService {
	s := &ConnectionService{
		repo:     repo,
		users:    users,
		skills:   skills,
		notifier: notifier,
		mailer:   mailer,
		run:      goroutine.SafeGo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Propose создаёт запрос на обмен или обновляет снимок навыков существующего.
// Статус существующей записи не меняется.
func (s *ConnectionService) Propose(ctx context.Context, initiatorID, targetID uuid.UUID) (*models.Match, error) {
	if err := checkPair(initiatorID, targetID); err != nil {
		return nil, err
	}

	initiator, err := s.users.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	profiles, err := loadProfiles(ctx, s.skills, []models.User{*initiator, *target})
	if err != nil {
		return nil, err
	}
	teach, learn := matching.Pair(profiles[0], profiles[1])
	snapshot := models.MatchedSkills{YouCanTeach: nonNil(teach), TheyCanTeach: nonNil(learn)}

	// Снимок хранится в порядке pair_key, а не с точки зрения инициатора.
	stored := models.StoredSkillsFor(initiatorID, targetID, snapshot)

	match, err := s.repo.UpsertProposal(ctx, initiatorID, targetID, stored)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, NotifyInput{
		UserID:     targetID,
		FromUserID: &initiatorID,
		Type:       models.NotificationConnectionRequest,
		Title:      "Новый запрос на обмен навыками",
		Message:    fmt.Sprintf("%s хочет обменяться с вами навыками", initiator.Name),
		Data: models.NotificationData{
			"match_id":              match.ID.String(),
			"skillsYouCanTeachThem": match.SkillsFor(targetID).YouCanTeach,
			"skillsTheyCanTeachYou": match.SkillsFor(targetID).TheyCanTeach,
		},
	})

	logger.L().WithFields(logrus.Fields{
		"match_id":  match.ID,
		"initiator": initiatorID,
		"target":    targetID,
		"status":    match.Status,
	}).Info("connection service: запрос на обмен сохранён")

	return match, nil
}

// Accept переводит ожидающий обмен пары в accepted, уведомляет requesterID
// и отправляет по письму каждой стороне. Принять может любой участник пары,
// уведомление получает тот, кого указал принявший, даже если это адресат запроса.
func (s *ConnectionService) Accept(ctx context.Context, accepterID, requesterID uuid.UUID) (*models.Match, error) {
	match, accepter, requester, err := s.transition(ctx, accepterID, requesterID, models.MatchStatusAccepted)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, NotifyInput{
		UserID:     requesterID,
		FromUserID: &accepterID,
		Type:       models.NotificationConnectionAccepted,
		Title:      "Запрос на обмен принят",
		Message:    fmt.Sprintf("%s принял(а) ваш запрос на обмен навыками", accepter.Name),
		Data:       models.NotificationData{"match_id": match.ID.String()},
	})

	s.sendAcceptedEmails(match, accepter, requester)

	return match, nil
}

// Decline переводит ожидающий обмен пары в declined и уведомляет инициатора. Письма не отправляются.
func (s *ConnectionService) Decline(ctx context.Context, declinerID, requesterID uuid.UUID) (*models.Match, error) {
	match, decliner, _, err := s.transition(ctx, declinerID, requesterID, models.MatchStatusDeclined)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, NotifyInput{
		UserID:     requesterID,
		FromUserID: &declinerID,
		Type:       models.NotificationConnectionDeclined,
		Title:      "Запрос на обмен отклонён",
		Message:    fmt.Sprintf("%s отклонил(а) ваш запрос на обмен навыками", decliner.Name),
		Data:       models.NotificationData{"match_id": match.ID.String()},
	})

	return match, nil
}

// ListSaved возвращает обмены пользователя, снимок навыков развёрнут к нему.
func (s *ConnectionService) ListSaved(ctx context.Context, userID uuid.UUID, status string) ([]models.SavedMatch, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" {
		if _, ok := models.ValidMatchStatuses[status]; !ok {
			return nil, apperror.Validation(fmt.Sprintf("неизвестный статус %q", status))
		}
	}

	matches, err := s.repo.ListForUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		matches[i].MatchedSkills = matches[i].SkillsFor(userID)
	}

	return matches, nil
}

func (s *ConnectionService) transition(ctx context.Context, actorID, requesterID uuid.UUID, status string) (*models.Match, *models.User, *models.User, error) {
	if err := checkPair(actorID, requesterID); err != nil {
		return nil, nil, nil, err
	}

	// Пользователи загружаются до смены статуса.
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, nil, mapUserErr(err)
	}
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, nil, nil, mapUserErr(err)
	}

	match, err := s.repo.TransitionPending(ctx, actorID, requesterID, status)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, nil, nil, apperror.ErrPendingMatchNotFound
		}
		return nil, nil, nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"match_id":  match.ID,
		"actor":     actorID,
		"requester": requesterID,
		"status":    status,
	}).Info("connection service: статус обмена изменён")

	return match, actor, requester, nil
}

// notify создаёт уведомление после изменения состояния. Ошибка только логируется:
// состояние обмена уже зафиксировано.
func (s *ConnectionService) notify(ctx context.Context, in NotifyInput) {
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		logger.L().WithFields(logrus.Fields{
			"user_id": in.UserID,
			"type":    in.Type,
			"error":   err.Error(),
		}).Error("connection service: не удалось создать уведомление")
	}
}

// sendAcceptedEmails отправляет два письма, каждой стороне контакты другой.
func (s *ConnectionService) sendAcceptedEmails(match *models.Match, accepter, requester *models.User) {
	for _, pair := range [][2]*models.User{{requester, accepter}, {accepter, requester}} {
		recipient, counterpart := pair[0], pair[1]
		skills := match.SkillsFor(recipient.ID)

		subject, body, err := email.RenderConnectionAccepted(email.ConnectionAcceptedData{
			RecipientName:       recipient.Name,
			CounterpartName:     counterpart.Name,
			CounterpartEmail:    counterpart.Email,
			CounterpartLocation: counterpart.LocationOrEmpty(),
			YouCanTeach:         skills.YouCanTeach,
			TheyCanTeach:        skills.TheyCanTeach,
			ProfileURL:          s.profileURL(counterpart.ID),
		})
		if err != nil {
			logger.L().WithError(err).Error("connection service: не удалось подготовить письмо")
			continue
		}

		msg := email.Message{To: recipient.Email, Subject: subject, HTML: body}
		matchID := match.ID
		s.run(func() {
			ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
			defer cancel()

			if err := s.mailer.Send(ctx, msg); err != nil {
				logger.L().WithFields(logrus.Fields{
					"match_id": matchID,
					"to":       msg.To,
					"error":    err.Error(),
				}).Error("connection service: письмо не отправлено")
			}
		})
	}
}

func (s *ConnectionService) profileURL(userID uuid.UUID) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/users/" + userID.String()
}

func checkPair(selfID, otherID uuid.UUID) error {
	if otherID == uuid.Nil {
		return apperror.ErrTargetRequired
	}
	if selfID == otherID {
		return apperror.ErrSelfMatch
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
