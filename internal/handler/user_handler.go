package handlers

import (
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"socialCPT/internal/service"
)

func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetSuggestedUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	suggested, err := h.UserService.GetSuggestedUsers(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, suggested, http.StatusOK)
}

func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	followed, err := h.UserService.FollowUnfollow(r.Context(), user.UserID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Подписка отменена"
	if followed {
		message = "Подписка оформлена"
	}

	WriteSuccess(w, MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req service.UpdateProfileRequest
	if !decodeLimitedBody(w, r, h.Cfg.MaxUploadSize, &req) {
		return
	}

	// email verification (если передан)
	if req.Email != "" {
		patternEmail := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
		matched, err := regexp.MatchString(patternEmail, req.Email)
		if err != nil || !matched {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
			return
		}
	}

	updated, err := h.UserService.UpdateProfile(r.Context(), user.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, updated, http.StatusOK)
}
