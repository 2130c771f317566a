package service

import (
	"context"
	"fmt"
	"socialCPT/internal/config"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"socialCPT/internal/storage"
	"strings"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID string, req repository.CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	LikeUnlike(ctx context.Context, postID, userID string) (bool, []models.PublicProfile, error)
	Comment(ctx context.Context, postID, userID, text string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetFollowingPosts(ctx context.Context, userID string) ([]models.Post, error)
	GetUserPosts(ctx context.Context, username string) ([]models.Post, error)
	GetLikedPosts(ctx context.Context, userID string) ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID string, req repository.CreatePostRequest) (*models.Post, error) {
	// автор должен существовать
	if _, err := p.userRepo.GetUserByID(ctx, authorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Text) == "" && req.Img == "" {
		return nil, ErrEmptyPost
	}

	imageURL := ""
	if req.Img != "" {
		data, contentType, err := storage.DecodeBase64Image(req.Img)
		if err != nil {
			return nil, fmt.Errorf("неверный формат изображения: %w", err)
		}

		_, imageURL, err = p.storage.UploadImage(ctx, "posts", data, contentType)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
	}

	post := &models.Post{
		AuthorID: authorID,
		Text:     req.Text,
		Img:      imageURL,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost удаляет пост автора; изображение освобождается
// из хранилища до удаления записи
func (p *postService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return ErrNotPostOwner
	}

	if post.Img != "" {
		objectName := storage.ObjectNameFromURL(post.Img, p.cfg.MinIO.BucketName)
		if err := p.storage.DeleteImage(ctx, objectName); err != nil {
			return fmt.Errorf("не удалось удалить изображение поста: %w", err)
		}
	}

	return p.postRepo.Delete(ctx, postID)
}

// LikeUnlike переключает лайк. Возвращает true если лайк поставлен
// и актуальный список лайкнувших
func (p *postService) LikeUnlike(ctx context.Context, postID, userID string) (bool, []models.PublicProfile, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, nil, err
	}

	if post.AuthorID == userID {
		return false, nil, ErrSelfLike
	}

	hasLiked, err := p.postRepo.HasLiked(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}

	if hasLiked {
		if err := p.postRepo.Unlike(ctx, postID, userID); err != nil {
			return false, nil, err
		}
	} else {
		if err := p.postRepo.Like(ctx, postID, userID, post.AuthorID); err != nil {
			return false, nil, err
		}
	}

	likes, err := p.postRepo.GetLikes(ctx, postID)
	if err != nil {
		return false, nil, err
	}

	return !hasLiked, likes, nil
}

func (p *postService) Comment(ctx context.Context, postID, userID, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}

	if err := p.postRepo.AddComment(ctx, comment, post.AuthorID); err != nil {
		return nil, err
	}

	populated, err := p.postRepo.Populate(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}

	return &populated[0], nil
}

func (p *postService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetFollowingPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return p.postRepo.GetFollowingFeed(ctx, userID)
}

func (p *postService) GetUserPosts(ctx context.Context, username string) ([]models.Post, error) {
	user, err := p.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return p.postRepo.GetByAuthorID(ctx, user.UserID)
}

func (p *postService) GetLikedPosts(ctx context.Context, userID string) ([]models.Post, error) {
	if _, err := p.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	return p.postRepo.GetLikedBy(ctx, userID)
}
