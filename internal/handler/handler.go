package handlers

import (
	"github.com/go-playground/validator/v10"
	"socialCPT/internal/config"
	"socialCPT/internal/repository"
	"socialCPT/internal/service"
)

// SessionCookieName - имя cookie с JWT токеном сессии
const SessionCookieName = "jwt"

type Handlers struct {
	AuthService         service.AuthService
	UserService         service.UserService
	PostService         service.PostService
	NotificationService service.NotificationService
	StatsService        service.StatsService
	UserRepo            repository.UserRepository
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:         service.Auth,
		UserService:         service.User,
		PostService:         service.Post,
		NotificationService: service.Notification,
		StatsService:        service.Stats,
		UserRepo:            repo.User,
		Cfg:                 config,
		Validate:            validator.New(),
	}
}
