package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"socialCPT/internal/config"
	handlers "socialCPT/internal/handler"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"socialCPT/internal/service"
)

type testMocks struct {
	auth         *MockAuthService
	user         *MockUserService
	post         *MockPostService
	notification *MockNotificationService
	stats        *MockStatsService
	userRepo     *MockUserRepository
}

func createTestHandler() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		auth:         new(MockAuthService),
		user:         new(MockUserService),
		post:         new(MockPostService),
		notification: new(MockNotificationService),
		stats:        new(MockStatsService),
		userRepo:     new(MockUserRepository),
	}

	cfg := &config.Config{
		JWTSecretKey:      "test-secret-key",
		ServerPort:        8080,
		Environment:       "development",
		TokenDuration:     360 * time.Hour,
		PasswordMinLength: 6,
		MaxUploadSize:     10 * 1024 * 1024,
	}

	handler := &handlers.Handlers{
		AuthService:         mocks.auth,
		UserService:         mocks.user,
		PostService:         mocks.post,
		NotificationService: mocks.notification,
		StatsService:        mocks.stats,
		UserRepo:            mocks.userRepo,
		Cfg:                 cfg,
		Validate:            validator.New(),
	}

	return handler, mocks
}

// withSessionUser кладет пользователя в контекст так же, как auth middleware
func withSessionUser(req *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(req.Context(), "user", user)
	ctx = context.WithValue(ctx, "userID", user.UserID)
	return req.WithContext(ctx)
}

func sessionUser() *models.User {
	return &models.User{
		UserID:     "user-123",
		Username:   "ivan",
		Email:      "ivan@example.com",
		FullName:   "Иван Петров",
		Followers:  []string{},
		Following:  []string{},
		LikedPosts: []string{},
	}
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

// assertJSONSuccess checks the successful JSON response
func assertJSONSuccess(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == handlers.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestNewHandlers(t *testing.T) {
	// create mock object
	mockAuthService := new(MockAuthService)
	mockUserService := new(MockUserService)
	mockPostService := new(MockPostService)
	mockNotificationService := new(MockNotificationService)
	mockStatsService := new(MockStatsService)
	mockUserRepo := new(MockUserRepository)
	cfg := &config.Config{}

	repo := &repository.Repository{
		User: mockUserRepo,
	}

	service := &service.Service{
		Auth:         mockAuthService,
		User:         mockUserService,
		Post:         mockPostService,
		Notification: mockNotificationService,
		Stats:        mockStatsService,
	}

	handler := handlers.NewHandlers(repo, service, cfg)

	assert.NotNil(t, handler.AuthService)
	assert.NotNil(t, handler.UserService)
	assert.NotNil(t, handler.PostService)
	assert.NotNil(t, handler.NotificationService)
	assert.NotNil(t, handler.StatsService)
	assert.NotNil(t, handler.UserRepo)
	assert.NotNil(t, handler.Cfg)
	assert.NotNil(t, handler.Validate)
}

// go test ./internal/handler/test... -v
