package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"socialCPT/internal/models"
	"time"
)

var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrWrongPassword = errors.New("неверный пароль")
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	// create user id
	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, username, email, full_name, password_hash, bio, link, profile_img, cover_img, created_at, updated_at)
		VALUES (:user_id, :username, :email, :full_name, :password_hash, :bio, :link, :profile_img, :cover_img, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	user.Followers = []string{}
	user.Following = []string{}
	user.LikedPosts = []string{}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	if err := r.loadSets(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по username: %w", err)
	}

	if err := r.loadSets(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

// loadSets заполняет подписчиков, подписки и лайкнутые посты пользователя
func (r *userRepository) loadSets(ctx context.Context, user *models.User) error {
	followers := []string{}
	err := r.db.SelectContext(ctx, &followers,
		`SELECT follower_id FROM follows WHERE following_id = $1`, user.UserID)
	if err != nil {
		return fmt.Errorf("ошибка при получении подписчиков: %w", err)
	}

	following := []string{}
	err = r.db.SelectContext(ctx, &following,
		`SELECT following_id FROM follows WHERE follower_id = $1`, user.UserID)
	if err != nil {
		return fmt.Errorf("ошибка при получении подписок: %w", err)
	}

	likedPosts := []string{}
	err = r.db.SelectContext(ctx, &likedPosts,
		`SELECT post_id FROM post_likes WHERE user_id = $1`, user.UserID)
	if err != nil {
		return fmt.Errorf("ошибка при получении лайкнутых постов: %w", err)
	}

	user.Followers = followers
	user.Following = following
	user.LikedPosts = likedPosts

	return nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

func (r *userRepository) CheckPassword(ctx context.Context, userID, password string) error {
	var passwordHash string

	err := r.db.GetContext(ctx, &passwordHash,
		`SELECT password_hash FROM users WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	return nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET username = :username, email = :email, full_name = :full_name, bio = :bio,
		    link = :link, profile_img = :profile_img, cover_img = :cover_img, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), time.Now(), userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пароля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetSuggestedUsers возвращает случайную выборку пользователей,
// исключая самого пользователя и тех, на кого он уже подписан
func (r *userRepository) GetSuggestedUsers(ctx context.Context, userID string, limit int) ([]models.PublicProfile, error) {
	query := `
		SELECT user_id, username, full_name, bio, profile_img
		FROM users
		WHERE user_id != $1
		AND user_id NOT IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY RANDOM()
		LIMIT $2
	`

	users := []models.PublicProfile{}
	err := r.db.SelectContext(ctx, &users, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении рекомендаций: %w", err)
	}

	return users, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return exists, nil
}

// Follow добавляет подписку и уведомление в одной транзакции
func (r *userRepository) Follow(ctx context.Context, followerID, followingID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO follows (follower_id, following_id, created_at) VALUES ($1, $2, $3)`,
		followerID, followingID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notifications (notification_id, from_id, to_id, type, read, created_at)
		 VALUES ($1, $2, $3, $4, false, $5)`,
		uuid.New().String(), followerID, followingID, models.NotificationFollow, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	return nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}
