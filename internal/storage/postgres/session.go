package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"community/internal/apperr"
	"community/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type SessionPostgresStorage struct{}

func NewSessionPostgresStorage() *SessionPostgresStorage {
	return &SessionPostgresStorage{}
}

func (s *SessionPostgresStorage) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	sess := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := DB.Create(sess).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sess.Token, nil
}

func (s *SessionPostgresStorage) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, apperr.ErrUnauthenticated
	}

	var sess models.Session
	err := DB.Where("token = ?", token).First(&sess).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, apperr.ErrUnauthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find session: %w", err)
	}

	// срок истек - строку удаляем лениво, фонового клинера нет
	if time.Now().After(sess.ExpiresAt) {
		if err := DB.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
			log.Printf("failed to delete expired session: %v", err)
		}
		return 0, apperr.ErrUnauthenticated
	}

	// пользователь мог быть удален после выпуска токена
	var u models.User
	err = DB.First(&u, sess.UserID).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, apperr.ErrUnauthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find session user: %w", err)
	}

	return sess.UserID, nil
}

func (s *SessionPostgresStorage) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := DB.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionPostgresStorage) DeleteByUser(ctx context.Context, userID uint) error {
	if err := DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
