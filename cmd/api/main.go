package main

import (
	"fmt"
	"log"
	"net/http"
	"socialCPT/cmd/app"
	"socialCPT/internal/config"
	handlers "socialCPT/internal/handler"
	"socialCPT/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/health", handlers.DBHealthHandler(db)).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", handler.StatsHandler).Methods(http.MethodGet)

	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	auth.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", handler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/me", handler.GetMe).Methods(http.MethodGet)

	users := router.PathPrefix("/api/users").Subrouter()
	users.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	users.HandleFunc("/profile/{username}", handler.GetUserProfile).Methods(http.MethodGet)
	users.HandleFunc("/suggested", handler.GetSuggestedUsers).Methods(http.MethodGet)
	users.HandleFunc("/follow/{id}", handler.FollowUser).Methods(http.MethodPost)
	users.HandleFunc("/update", handler.UpdateProfile).Methods(http.MethodPost)

	posts := router.PathPrefix("/api/posts").Subrouter()
	posts.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	posts.HandleFunc("/all", handler.GetAllPosts).Methods(http.MethodGet)
	posts.HandleFunc("/following", handler.GetFollowingPosts).Methods(http.MethodGet)
	posts.HandleFunc("/user/{username}", handler.GetUserPosts).Methods(http.MethodGet)
	posts.HandleFunc("/likes/{id}", handler.GetLikedPosts).Methods(http.MethodGet)
	posts.HandleFunc("/create", handler.CreatePost).Methods(http.MethodPost)
	posts.HandleFunc("/like/{id}", handler.LikePost).Methods(http.MethodPost)
	posts.HandleFunc("/comment/{id}", handler.CommentPost).Methods(http.MethodPost)
	posts.HandleFunc("/{id}", handler.DeletePost).Methods(http.MethodDelete)

	notifications := router.PathPrefix("/api/notifications").Subrouter()
	notifications.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	notifications.HandleFunc("", handler.GetNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("", handler.DeleteNotifications).Methods(http.MethodDelete)
	notifications.HandleFunc("/{id}", handler.DeleteNotification).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(services.Auth, repo.User),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
