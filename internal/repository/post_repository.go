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

var ErrPostNotFound = errors.New("пост не найден")

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts (post_id, author_id, text, img, created_at, updated_at)
        VALUES (:post_id, :author_id, :text, :img, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	post.Likes = []models.PublicProfile{}
	post.Comments = []models.Comment{}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return r.Populate(ctx, posts)
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return r.Populate(ctx, posts)
}

// GetFollowingFeed возвращает посты авторов, на которых подписан пользователь
func (r *PostRepositoryImpl) GetFollowingFeed(ctx context.Context, userID string) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE author_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
        ORDER BY created_at DESC
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты подписок: %w", err)
	}

	return r.Populate(ctx, posts)
}

func (r *PostRepositoryImpl) GetLikedBy(ctx context.Context, userID string) ([]models.Post, error) {
	query := `
        SELECT p.* FROM posts p
        JOIN post_likes pl ON pl.post_id = p.post_id
        WHERE pl.user_id = $1
        ORDER BY p.created_at DESC
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайкнутых постов: %w", err)
	}

	return r.Populate(ctx, posts)
}

func (r *PostRepositoryImpl) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	return exists, nil
}

// Like добавляет лайк и уведомление автору поста в одной транзакции
func (r *PostRepositoryImpl) Like(ctx context.Context, postID, userID, postAuthorID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, $3)`,
		postID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notifications (notification_id, from_id, to_id, type, read, created_at)
		 VALUES ($1, $2, $3, $4, false, $5)`,
		uuid.New().String(), userID, postAuthorID, models.NotificationLike, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Unlike(ctx context.Context, postID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetLikes(ctx context.Context, postID string) ([]models.PublicProfile, error) {
	query := `
        SELECT u.user_id, u.username, u.full_name, u.bio, u.profile_img
        FROM post_likes pl
        JOIN users u ON u.user_id = pl.user_id
        WHERE pl.post_id = $1
        ORDER BY pl.created_at
    `

	likes := []models.PublicProfile{}
	err := r.db.SelectContext(ctx, &likes, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайков: %w", err)
	}

	return likes, nil
}

// AddComment добавляет комментарий; если комментирует не автор поста,
// в той же транзакции создается уведомление
func (r *PostRepositoryImpl) AddComment(ctx context.Context, comment *models.Comment, postAuthorID string) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO comments (comment_id, post_id, author_id, text, created_at)
		VALUES (:comment_id, :post_id, :author_id, :text, :created_at)
	`, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	if comment.AuthorID != postAuthorID {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO notifications (notification_id, from_id, to_id, type, read, created_at)
			 VALUES ($1, $2, $3, $4, false, $5)`,
			uuid.New().String(), comment.AuthorID, postAuthorID, models.NotificationComment, time.Now())
		if err != nil {
			return fmt.Errorf("ошибка при создании уведомления: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

// Populate прикрепляет к постам автора, лайкнувших и комментарии
// с публичными профилями авторов
func (r *PostRepositoryImpl) Populate(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return []models.Post{}, nil
	}

	// кешируем профили, чтобы не запрашивать одного автора дважды
	profiles := make(map[string]*models.PublicProfile)

	getProfile := func(userID string) (*models.PublicProfile, error) {
		if profile, ok := profiles[userID]; ok {
			return profile, nil
		}

		var profile models.PublicProfile
		err := r.db.GetContext(ctx, &profile,
			`SELECT user_id, username, full_name, bio, profile_img FROM users WHERE user_id = $1`,
			userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
		}

		profiles[userID] = &profile
		return &profile, nil
	}

	for i := range posts {
		author, err := getProfile(posts[i].AuthorID)
		if err != nil {
			return nil, err
		}
		posts[i].Author = author

		likes, err := r.GetLikes(ctx, posts[i].PostID)
		if err != nil {
			return nil, err
		}
		posts[i].Likes = likes

		comments, err := r.GetComments(ctx, posts[i].PostID)
		if err != nil {
			return nil, err
		}

		for j := range comments {
			commentAuthor, err := getProfile(comments[j].AuthorID)
			if err != nil {
				return nil, err
			}
			comments[j].Author = commentAuthor
		}
		posts[i].Comments = comments
	}

	return posts, nil
}
