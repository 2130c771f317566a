package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"socialCPT/internal/config"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"time"
	"unicode/utf8"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenString string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	if utf8.RuneCountInString(req.Password) < s.cfg.PasswordMinLength {
		return nil, ErrPasswordTooShort
	}

	// проверяем уникальность username и email
	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err == nil && existingUser != nil {
		return nil, ErrUsernameTaken
	}

	existingEmail, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingEmail != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		// не раскрываем, что именно не совпало
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	return user, nil
}

func (s *authService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// ValidateToken проверяет подпись и срок действия токена
// и возвращает userId из claims
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return "", fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("неверный формат claims")
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("в токене отсутствует userId")
	}

	return userID, nil
}
