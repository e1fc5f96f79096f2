package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Email        string    `gorm:"size:255;not null;index"`
	Nickname     string    `gorm:"size:32;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	ImageURL     string    `gorm:"size:255"`
	Posts        []Post    `gorm:"foreignkey:UserID"`
	Comments     []Comment `gorm:"foreignkey:UserID"`
}

// Session - строка опознавательного токена (cookie session_id).
// Токен непрозрачный (UUID), удаляется при logout и при удалении аккаунта.
type Session struct {
	Token     string    `gorm:"primary_key;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type Post struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	Title    string `gorm:"size:64;not null"`
	Content  string `gorm:"type:text"`
	ImageURL string `gorm:"size:255"`

	// Денормализованные счетчики - поддерживаются транзакционно вместе
	// со строками comments/likes/views
	ViewsCount    int `gorm:"not null;default:0"`
	LikesCount    int `gorm:"not null;default:0"`
	CommentsCount int `gorm:"not null;default:0"`

	Comments []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"index;not null"`
	UserID  uint   `gorm:"index;not null"`
	Content string `gorm:"size:1000;not null"`
}

// Like и View - строки-отметки без мягкого удаления: уникальный составной
// индекс (user_id, post_id) страхует от гонки двойной вставки, а мягко
// удаленная строка мешала бы повторной вставке под этим индексом.
type Like struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_likes_user_post;not null"`
	PostID    uint `gorm:"unique_index:idx_likes_user_post;not null"`
	CreatedAt time.Time
}

type View struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_views_user_post;not null"`
	PostID    uint `gorm:"unique_index:idx_views_user_post;not null"`
	CreatedAt time.Time
}
