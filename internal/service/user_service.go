package service

import (
	"context"
	"fmt"
	"socialCPT/internal/config"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"socialCPT/internal/storage"
	"unicode/utf8"
)

const suggestedUsersLimit = 4

type UpdateProfileRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UserService interface {
	GetProfile(ctx context.Context, username string) (*models.User, error)
	GetSuggestedUsers(ctx context.Context, userID string) ([]models.PublicProfile, error)
	FollowUnfollow(ctx context.Context, followerID, targetID string) (bool, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *userService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *userService) GetSuggestedUsers(ctx context.Context, userID string) ([]models.PublicProfile, error) {
	return s.userRepo.GetSuggestedUsers(ctx, userID, suggestedUsersLimit)
}

// FollowUnfollow переключает подписку. Возвращает true, если подписка
// была создана, и false, если удалена
func (s *userService) FollowUnfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, ErrSelfFollow
	}

	// цель должна существовать
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return false, err
	}

	isFollowing, err := s.userRepo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	if isFollowing {
		if err := s.userRepo.Unfollow(ctx, followerID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.userRepo.Follow(ctx, followerID, targetID); err != nil {
		return false, err
	}

	return true, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// смена пароля требует оба поля
	if (req.NewPassword == "") != (req.CurrentPassword == "") {
		return nil, ErrPasswordPair
	}

	if req.NewPassword != "" {
		if err := s.userRepo.CheckPassword(ctx, userID, req.CurrentPassword); err != nil {
			return nil, err
		}

		if utf8.RuneCountInString(req.NewPassword) < s.cfg.PasswordMinLength {
			return nil, ErrPasswordTooShort
		}

		if err := s.userRepo.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
			return nil, err
		}
	}

	if req.ProfileImg != "" {
		newURL, err := s.replaceImage(ctx, user.ProfileImg, req.ProfileImg, "profile")
		if err != nil {
			return nil, err
		}
		user.ProfileImg = newURL
	}

	if req.CoverImg != "" {
		newURL, err := s.replaceImage(ctx, user.CoverImg, req.CoverImg, "cover")
		if err != nil {
			return nil, err
		}
		user.CoverImg = newURL
	}

	// пустые поля сохраняют прежние значения
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// replaceImage удаляет старый объект из хранилища (если был)
// и загружает новый
func (s *userService) replaceImage(ctx context.Context, oldURL, payload, folder string) (string, error) {
	if oldURL != "" {
		objectName := storage.ObjectNameFromURL(oldURL, s.cfg.MinIO.BucketName)
		if err := s.storage.DeleteImage(ctx, objectName); err != nil {
			return "", fmt.Errorf("не удалось удалить старое изображение: %w", err)
		}
	}

	data, contentType, err := storage.DecodeBase64Image(payload)
	if err != nil {
		return "", fmt.Errorf("неверный формат изображения: %w", err)
	}

	_, imageURL, err := s.storage.UploadImage(ctx, folder, data, contentType)
	if err != nil {
		return "", err
	}

	return imageURL, nil
}
