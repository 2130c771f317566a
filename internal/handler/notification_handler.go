package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	// листинг помечает все уведомления прочитанными
	notifications, err := h.NotificationService.List(r.Context(), user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, notifications, http.StatusOK)
}

func (h *Handlers) DeleteNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.NotificationService.DeleteAll(r.Context(), user.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Уведомления удалены"}, http.StatusOK)
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	notificationID := mux.Vars(r)["id"]
	if notificationID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.NotificationService.DeleteOne(r.Context(), notificationID, user.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Уведомление удалено"}, http.StatusOK)
}
