package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialCPT/internal/models"
	"socialCPT/internal/repository"
	"socialCPT/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// decodeLimitedBody разбирает JSON-тело запроса, ограничивая его размер
// limit байтами. Картинки приходят в теле base64-строкой, поэтому лимит
// гейтит и размер загружаемого изображения
func decodeLimitedBody(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, "Тело запроса слишком большое", http.StatusRequestEntityTooLarge)
			return false
		}
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return false
	}

	return true
}

// writeServiceError сопоставляет ошибки бизнес-логики HTTP-статусам.
// Неожиданные ошибки логируются и уходят клиенту как 500 без деталей
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		WriteError(w, "Пользователь не найден", http.StatusNotFound)
	case errors.Is(err, repository.ErrPostNotFound):
		WriteError(w, "Пост не найден", http.StatusNotFound)
	case errors.Is(err, repository.ErrNotificationNotFound):
		WriteError(w, "Уведомление не найдено", http.StatusNotFound)
	case errors.Is(err, repository.ErrWrongPassword):
		WriteError(w, "Текущий пароль неверен", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidPassword):
		WriteError(w, "Неверный логин или пароль", http.StatusBadRequest)
	case errors.Is(err, service.ErrUsernameTaken):
		WriteError(w, "Username уже занят", http.StatusBadRequest)
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, "Email уже занят", http.StatusBadRequest)
	case errors.Is(err, service.ErrSelfFollow):
		WriteError(w, "Нельзя подписаться на самого себя", http.StatusBadRequest)
	case errors.Is(err, service.ErrSelfLike):
		WriteError(w, "Нельзя лайкать собственный пост", http.StatusBadRequest)
	case errors.Is(err, service.ErrEmptyPost):
		WriteError(w, "Пост не может быть пустым", http.StatusBadRequest)
	case errors.Is(err, service.ErrEmptyComment):
		WriteError(w, "Текст комментария обязателен", http.StatusBadRequest)
	case errors.Is(err, service.ErrPasswordPair):
		WriteError(w, "Нужно указать и текущий, и новый пароль", http.StatusBadRequest)
	case errors.Is(err, service.ErrPasswordTooShort):
		WriteError(w, "Пароль слишком короткий", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotPostOwner):
		WriteError(w, "Нет прав для удаления этого поста", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotAddressee):
		WriteError(w, "Нет прав для удаления этого уведомления", http.StatusForbidden)
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// currentUser достает пользователя, положенного в контекст auth middleware
func currentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value("user").(*models.User)
	return user, ok
}
