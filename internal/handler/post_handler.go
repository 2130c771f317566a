package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"socialCPT/internal/models"
	"socialCPT/internal/repository"
)

type LikesResponse struct {
	Message string                 `json:"message"`
	Likes   []models.PublicProfile `json:"likes"`
}

func (h *Handlers) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetAllPosts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetFollowingPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.GetFollowingPosts(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetUserPosts(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetLikedPosts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if userID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetLikedPosts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.CreatePostRequest
	if !decodeLimitedBody(w, r, h.Cfg.MaxUploadSize, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), user.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, user.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост удален"}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	liked, likes, err := h.PostService.LikeUnlike(r.Context(), postID, user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Лайк убран"
	if liked {
		message = "Лайк поставлен"
	}

	WriteSuccess(w, LikesResponse{Message: message, Likes: likes}, http.StatusOK)
}

func (h *Handlers) CommentPost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	var req repository.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Comment(r.Context(), postID, user.UserID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}
