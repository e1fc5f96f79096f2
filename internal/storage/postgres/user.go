package postgres

import (
	"context"
	"fmt"

	"community/internal/apperr"
	"community/internal/user"
	"community/models"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct {
	bcryptCost int
}

// NewUserPostgresStorage: cost <= 0 означает bcrypt.DefaultCost
func NewUserPostgresStorage(bcryptCost int) *UserPostgresStorage {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserPostgresStorage{bcryptCost: bcryptCost}
}

func toProfile(u *models.User) *user.Profile {
	return &user.Profile{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func (s *UserPostgresStorage) RegisterUser(ctx context.Context, email, password, nickname, imageURL string) (*user.Profile, error) {
	tx := DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	// email уникален только среди не удаленных пользователей
	// (gorm сам добавляет deleted_at IS NULL)
	var count int
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, apperr.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hashedPassword),
		ImageURL:     imageURL,
	}
	if err := tx.Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return toProfile(u), nil
}

func (s *UserPostgresStorage) LoginUser(ctx context.Context, email, password string) (*user.Profile, error) {
	var u models.User
	err := DB.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		// ответ тот же, что и при неверном пароле - не раскрываем,
		// существует ли email
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return toProfile(&u), nil
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id uint) (*user.Profile, error) {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toProfile(&u), nil
}

func (s *UserPostgresStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (s *UserPostgresStorage) UpdateNickname(ctx context.Context, id uint, nickname string) error {
	res := DB.Model(&models.User{}).Where("id = ?", id).Update("nickname", nickname)
	if res.Error != nil {
		return fmt.Errorf("failed to update nickname: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *UserPostgresStorage) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", string(hashedPassword))
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteUser - мягкое удаление: исторические посты и комментарии остаются.
// Сессии снимает вызывающий через SessionStorage.DeleteByUser; даже если
// сессия уцелеет, Resolve отвергнет ее по удаленному пользователю.
func (s *UserPostgresStorage) DeleteUser(ctx context.Context, id uint) error {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := DB.Delete(&u).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
