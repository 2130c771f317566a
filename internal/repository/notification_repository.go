package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"socialCPT/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotificationNotFound = errors.New("уведомление не найдено")

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (notification_id, from_id, to_id, type, read, created_at)
		VALUES (:notification_id, :from_id, :to_id, :type, :read, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	var notification models.Notification

	query := `SELECT * FROM notifications WHERE notification_id = $1`

	err := r.db.GetContext(ctx, &notification, query, notificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("ошибка при получении уведомления: %w", err)
	}

	return &notification, nil
}

// GetByRecipient возвращает уведомления пользователя вместе
// с публичным профилем отправителя
func (r *notificationRepository) GetByRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `SELECT * FROM notifications WHERE to_id = $1 ORDER BY created_at DESC`

	notifications := []models.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	senders := make(map[string]*models.PublicProfile)
	for i := range notifications {
		fromID := notifications[i].FromID
		if sender, ok := senders[fromID]; ok {
			notifications[i].From = sender
			continue
		}

		var sender models.PublicProfile
		err := r.db.GetContext(ctx, &sender,
			`SELECT user_id, username, full_name, bio, profile_img FROM users WHERE user_id = $1`,
			fromID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue // отправитель удален, уведомление отдаем без профиля
			}
			return nil, fmt.Errorf("ошибка при получении отправителя: %w", err)
		}

		senders[fromID] = &sender
		notifications[i].From = &sender
	}

	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE to_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при отметке уведомлений прочитанными: %w", err)
	}

	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE notification_id = $1`, notificationID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении уведомления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) DeleteAllByRecipient(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE to_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении уведомлений: %w", err)
	}

	return nil
}
