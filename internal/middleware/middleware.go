package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	handlers "socialCPT/internal/handler"
	"socialCPT/internal/repository"
	"socialCPT/internal/service"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware проверяет JWT из cookie и кладет пользователя в контекст
func AuthMiddleware(authService service.AuthService, userRepo repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Публичные эндпоинты пропускаем
			publicPaths := []string{
				"/",
				"/api/health",
				"/api/auth/signup",
				"/api/auth/login",
				"/api/auth/logout",
				"/api/auth/health",
				"/api/users/health",
				"/api/posts/health",
				"/api/notifications/health",
			}

			for _, path := range publicPaths {
				if r.URL.Path == path {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Токен сессии живет в http-only cookie
			cookie, err := r.Cookie(handlers.SessionCookieName)
			if err != nil || cookie.Value == "" {
				handlers.WriteError(w, "Требуется авторизация: токен отсутствует", http.StatusUnauthorized)
				return
			}

			userID, err := authService.ValidateToken(cookie.Value)
			if err != nil {
				handlers.WriteError(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			// Токен может пережить аккаунт
			user, err := userRepo.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					handlers.WriteError(w, "Пользователь не найден", http.StatusNotFound)
				} else {
					log.Printf("Ошибка при загрузке пользователя из токена: %v", err)
					handlers.WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				}
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, "userID", user.UserID)
			ctx = context.WithValue(ctx, "user", user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Method: %s, URL: %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
