package service

import (
	"errors"
	"socialCPT/internal/config"
	"socialCPT/internal/repository"
	"socialCPT/internal/storage"
)

// Ошибки бизнес-логики, хендлеры сопоставляют их HTTP-статусам
var (
	ErrUsernameTaken    = errors.New("username уже занят")
	ErrEmailTaken       = errors.New("email уже занят")
	ErrInvalidPassword  = errors.New("неверный логин или пароль")
	ErrSelfFollow       = errors.New("нельзя подписаться на самого себя")
	ErrSelfLike         = errors.New("нельзя лайкать собственный пост")
	ErrEmptyPost        = errors.New("пост не может быть пустым")
	ErrEmptyComment     = errors.New("текст комментария обязателен")
	ErrNotPostOwner     = errors.New("пост принадлежит другому пользователю")
	ErrNotAddressee     = errors.New("уведомление адресовано другому пользователю")
	ErrPasswordPair     = errors.New("нужно указать и текущий, и новый пароль")
	ErrPasswordTooShort = errors.New("пароль слишком короткий")
)

type Service struct {
	Auth         AuthService
	User         UserService
	Post         PostService
	Notification NotificationService
	Stats        StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User, storage, cfg),
		Post:         NewPostService(rep.Post, rep.User, storage, cfg),
		Notification: NewNotificationService(rep.Notification),
		Stats:        NewStatsService(rep.Stats),
	}
}
