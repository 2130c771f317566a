package service

import (
	"context"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID string) ([]models.Notification, error)
	DeleteAll(ctx context.Context, userID string) error
	DeleteOne(ctx context.Context, notificationID, userID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// List возвращает уведомления пользователя и помечает их прочитанными
func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *notificationService) DeleteAll(ctx context.Context, userID string) error {
	return s.notificationRepo.DeleteAllByRecipient(ctx, userID)
}

// DeleteOne удаляет уведомление, только если оно адресовано пользователю
func (s *notificationService) DeleteOne(ctx context.Context, notificationID, userID string) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.ToID != userID {
		return ErrNotAddressee
	}

	return s.notificationRepo.Delete(ctx, notificationID)
}
