// Package memory - реализация хранилищ на мапах под одним мьютексом.
// Используется как dev-режим (-storage memory) и как дублер в тестах
// HTTP-обработчиков. Счетчики и строки-отметки живут в одном Store,
// поэтому согласованность обеспечивается общей блокировкой.
package memory

import (
	"sync"
	"time"
)

type userRec struct {
	id           uint
	email        string
	nickname     string
	passwordHash string
	imageURL     string
	createdAt    time.Time
	deleted      bool
}

type postRec struct {
	id            uint
	userID        uint
	title         string
	content       string
	imageURL      string
	viewsCount    int
	likesCount    int
	commentsCount int
	createdAt     time.Time
	deleted       bool
}

type commentRec struct {
	id        uint
	postID    uint
	userID    uint
	content   string
	createdAt time.Time
	deleted   bool
}

type sessionRec struct {
	userID    uint
	expiresAt time.Time
}

// ключ строк-отметок: не больше одной на пару (user, post)
type pairKey struct {
	userID uint
	postID uint
}

type Store struct {
	mu sync.Mutex

	users      map[uint]*userRec
	nextUserID uint

	sessions map[string]*sessionRec

	posts      map[uint]*postRec
	nextPostID uint

	comments      map[uint]*commentRec
	nextCommentID uint

	likes map[pairKey]bool
	views map[pairKey]bool
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uint]*userRec),
		nextUserID:    1,
		sessions:      make(map[string]*sessionRec),
		posts:         make(map[uint]*postRec),
		nextPostID:    1,
		comments:      make(map[uint]*commentRec),
		nextCommentID: 1,
		likes:         make(map[pairKey]bool),
		views:         make(map[pairKey]bool),
	}
}

// livePost возвращает не удаленный пост (вызывать под mu)
func (s *Store) livePost(id uint) (*postRec, bool) {
	p, ok := s.posts[id]
	if !ok || p.deleted {
		return nil, false
	}
	return p, true
}

// liveUser возвращает не удаленного пользователя (вызывать под mu)
func (s *Store) liveUser(id uint) (*userRec, bool) {
	u, ok := s.users[id]
	if !ok || u.deleted {
		return nil, false
	}
	return u, true
}
