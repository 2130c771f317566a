package repository

import (
	"context"
	"socialCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	CheckPassword(ctx context.Context, userID, password string) error
	GetSuggestedUsers(ctx context.Context, userID string, limit int) ([]models.PublicProfile, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Delete(ctx context.Context, postID string) error
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
	GetFollowingFeed(ctx context.Context, userID string) ([]models.Post, error)
	GetLikedBy(ctx context.Context, userID string) ([]models.Post, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	Like(ctx context.Context, postID, userID, postAuthorID string) error
	Unlike(ctx context.Context, postID, userID string) error
	GetLikes(ctx context.Context, postID string) ([]models.PublicProfile, error)
	AddComment(ctx context.Context, comment *models.Comment, postAuthorID string) error
	GetComments(ctx context.Context, postID string) ([]models.Comment, error)
	Populate(ctx context.Context, posts []models.Post) ([]models.Post, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, notificationID string) (*models.Notification, error)
	GetByRecipient(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID string) error
	DeleteAllByRecipient(ctx context.Context, userID string) error
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountPosts(ctx context.Context) (int, error)
	CountNotifications(ctx context.Context) (int, error)
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Notification NotificationRepository
	Stats        StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Notification: NewNotificationRepository(db),
		Stats:        NewStatsRepository(db),
	}
}
