package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	handlers "socialCPT/internal/handler"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"socialCPT/internal/service"
)

func TestCreatePostHandler_Success(t *testing.T) {
	// Arrange
	handler, mocks := createTestHandler()
	user := sessionUser()

	createReq := repository.CreatePostRequest{Text: "Первый пост"}
	mocks.post.On("CreatePost", mock.Anything, user.UserID, createReq).
		Return(&models.Post{
			PostID:    "post-1",
			AuthorID:  user.UserID,
			Text:      "Первый пост",
			CreatedAt: time.Now(),
		}, nil)

	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.CreatePost(rr, req)

	// Assert
	assertJSONSuccess(t, rr, http.StatusCreated)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "post-1", response["postId"])
	assert.Equal(t, "Первый пост", response["text"])

	mocks.post.AssertExpectations(t)
}

func TestCreatePostHandler_Empty(t *testing.T) {
	// пост без текста и картинки отклоняется
	handler, mocks := createTestHandler()
	user := sessionUser()

	createReq := repository.CreatePostRequest{}
	mocks.post.On("CreatePost", mock.Anything, user.UserID, createReq).
		Return((*models.Post)(nil), service.ErrEmptyPost)

	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.CreatePost(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusBadRequest, "Пост не может быть пустым")
	mocks.post.AssertExpectations(t)
}

func TestCreatePostHandler_BodyTooLarge(t *testing.T) {
	// base64-картинка приходит в теле запроса, поэтому лимит загрузки
	// гейтит размер тела целиком
	handler, mocks := createTestHandler()
	handler.Cfg.MaxUploadSize = 64
	user := sessionUser()

	createReq := repository.CreatePostRequest{Img: strings.Repeat("QUFB", 100)}
	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.CreatePost(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusRequestEntityTooLarge, "Тело запроса слишком большое")
	mocks.post.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePostHandler(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockPostService)
		expectedStatus int
	}{
		{
			name: "владелец удаляет пост",
			mockSetup: func(postService *MockPostService) {
				postService.On("DeletePost", mock.Anything, "post-1", "user-123").
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "чужой пост удалить нельзя",
			mockSetup: func(postService *MockPostService) {
				postService.On("DeletePost", mock.Anything, "post-1", "user-123").
					Return(service.ErrNotPostOwner)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "пост не найден",
			mockSetup: func(postService *MockPostService) {
				postService.On("DeletePost", mock.Anything, "post-1", "user-123").
					Return(repository.ErrPostNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := createTestHandler()
			tt.mockSetup(mocks.post)

			req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
			req = withSessionUser(req, sessionUser())
			rr := httptest.NewRecorder()

			handler.DeletePost(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mocks.post.AssertExpectations(t)
		})
	}
}

func TestLikePostHandler(t *testing.T) {
	tests := []struct {
		name            string
		mockSetup       func(*MockPostService)
		expectedStatus  int
		expectedMessage string
		expectedLikes   int
	}{
		{
			name: "лайк поставлен",
			mockSetup: func(postService *MockPostService) {
				postService.On("LikeUnlike", mock.Anything, "post-1", "user-123").
					Return(true, []models.PublicProfile{{UserID: "user-123", Username: "ivan"}}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Лайк поставлен",
			expectedLikes:   1,
		},
		{
			name: "повторный запрос убирает лайк",
			mockSetup: func(postService *MockPostService) {
				postService.On("LikeUnlike", mock.Anything, "post-1", "user-123").
					Return(false, []models.PublicProfile{}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Лайк убран",
			expectedLikes:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := createTestHandler()
			tt.mockSetup(mocks.post)

			req := httptest.NewRequest(http.MethodPost, "/api/posts/like/post-1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
			req = withSessionUser(req, sessionUser())
			rr := httptest.NewRecorder()

			handler.LikePost(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var response handlers.LikesResponse
			err := json.Unmarshal(rr.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedMessage, response.Message)
			assert.Len(t, response.Likes, tt.expectedLikes)

			mocks.post.AssertExpectations(t)
		})
	}
}

func TestLikePostHandler_SelfLike(t *testing.T) {
	// Arrange
	handler, mocks := createTestHandler()
	user := sessionUser()

	mocks.post.On("LikeUnlike", mock.Anything, "post-1", user.UserID).
		Return(false, ([]models.PublicProfile)(nil), service.ErrSelfLike)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/like/post-1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.LikePost(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusBadRequest, "Нельзя лайкать собственный пост")
	mocks.post.AssertExpectations(t)
}

func TestCommentPostHandler_Success(t *testing.T) {
	// Arrange
	handler, mocks := createTestHandler()
	user := sessionUser()

	mocks.post.On("Comment", mock.Anything, "post-1", user.UserID, "Отличный пост").
		Return(&models.Post{
			PostID:   "post-1",
			AuthorID: "user-456",
			Text:     "Первый пост",
			Comments: []models.Comment{
				{CommentID: "comment-1", PostID: "post-1", AuthorID: user.UserID, Text: "Отличный пост"},
			},
		}, nil)

	body, _ := json.Marshal(map[string]string{"text": "Отличный пост"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts/comment/post-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.CommentPost(rr, req)

	// Assert
	assertJSONSuccess(t, rr, http.StatusOK)

	var response models.Post
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Comments, 1)
	assert.Equal(t, "Отличный пост", response.Comments[0].Text)

	mocks.post.AssertExpectations(t)
}

func TestCommentPostHandler_EmptyText(t *testing.T) {
	// Arrange
	handler, mocks := createTestHandler()
	user := sessionUser()

	mocks.post.On("Comment", mock.Anything, "post-1", user.UserID, "").
		Return((*models.Post)(nil), service.ErrEmptyComment)

	body, _ := json.Marshal(map[string]string{"text": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/posts/comment/post-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = withSessionUser(req, user)
	rr := httptest.NewRecorder()

	// Act
	handler.CommentPost(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusBadRequest, "Текст комментария обязателен")
	mocks.post.AssertExpectations(t)
}

func TestFeedHandlers(t *testing.T) {
	feed := []models.Post{
		{PostID: "post-1", AuthorID: "user-456", Text: "Пост подписки"},
	}

	tests := []struct {
		name      string
		urlVars   map[string]string
		mockSetup func(*MockPostService)
	}{
		{
			name: "общая лента",
			mockSetup: func(postService *MockPostService) {
				postService.On("GetAllPosts", mock.Anything).Return(feed, nil)
			},
		},
		{
			name: "лента подписок",
			mockSetup: func(postService *MockPostService) {
				postService.On("GetFollowingPosts", mock.Anything, "user-123").Return(feed, nil)
			},
		},
		{
			name:    "посты пользователя",
			urlVars: map[string]string{"username": "maria"},
			mockSetup: func(postService *MockPostService) {
				postService.On("GetUserPosts", mock.Anything, "maria").Return(feed, nil)
			},
		},
		{
			name:    "лайкнутые посты",
			urlVars: map[string]string{"id": "user-456"},
			mockSetup: func(postService *MockPostService) {
				postService.On("GetLikedPosts", mock.Anything, "user-456").Return(feed, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := createTestHandler()
			tt.mockSetup(mocks.post)

			req := httptest.NewRequest(http.MethodGet, "/api/posts/all", nil)
			if tt.urlVars != nil {
				req = mux.SetURLVars(req, tt.urlVars)
			}
			req = withSessionUser(req, sessionUser())
			rr := httptest.NewRecorder()

			switch tt.name {
			case "общая лента":
				handler.GetAllPosts(rr, req)
			case "лента подписок":
				handler.GetFollowingPosts(rr, req)
			case "посты пользователя":
				handler.GetUserPosts(rr, req)
			case "лайкнутые посты":
				handler.GetLikedPosts(rr, req)
			}

			assertJSONSuccess(t, rr, http.StatusOK)

			var response []models.Post
			err := json.Unmarshal(rr.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Len(t, response, 1)

			mocks.post.AssertExpectations(t)
		})
	}
}
