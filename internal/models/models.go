package models

import (
	"time"
)

// Типы уведомлений
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Bio          string    `json:"bio" db:"bio"`
	Link         string    `json:"link" db:"link"`
	ProfileImg   string    `json:"profileImg" db:"profile_img"`
	CoverImg     string    `json:"coverImg" db:"cover_img"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// множества связей, заполняются отдельными запросами
	Followers  []string `json:"followers" db:"-"`
	Following  []string `json:"following" db:"-"`
	LikedPosts []string `json:"likedPosts" db:"-"`
}

// PublicProfile - публичные поля пользователя для вложенных ответов
// (автор поста, лайкнувшие, отправитель уведомления)
type PublicProfile struct {
	UserID     string `json:"userId" db:"user_id"`
	Username   string `json:"username" db:"username"`
	FullName   string `json:"fullName" db:"full_name"`
	Bio        string `json:"bio" db:"bio"`
	ProfileImg string `json:"profileImg" db:"profile_img"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	Img       string    `json:"img" db:"img"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Author   *PublicProfile  `json:"author,omitempty" db:"-"`
	Likes    []PublicProfile `json:"likes" db:"-"`
	Comments []Comment       `json:"comments" db:"-"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *PublicProfile `json:"author,omitempty" db:"-"`
}

type Notification struct {
	NotificationID string    `json:"notificationId" db:"notification_id"`
	FromID         string    `json:"fromId" db:"from_id"`
	ToID           string    `json:"toId" db:"to_id"`
	Type           string    `json:"type" db:"type"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	From *PublicProfile `json:"from,omitempty" db:"-"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		UserID:     u.UserID,
		Username:   u.Username,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfileImg: u.ProfileImg,
	}
}
