package memory

import (
	"context"
	"fmt"
	"time"

	"community/internal/apperr"
	"community/internal/user"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	store      *Store
	bcryptCost int
}

func NewUserMemoryStorage(store *Store, bcryptCost int) *UserMemoryStorage {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserMemoryStorage{store: store, bcryptCost: bcryptCost}
}

func (u *userRec) profile() *user.Profile {
	return &user.Profile{
		ID:        u.id,
		Email:     u.email,
		Nickname:  u.nickname,
		ImageURL:  u.imageURL,
		CreatedAt: u.createdAt,
	}
}

func (s *UserMemoryStorage) RegisterUser(ctx context.Context, email, password, nickname, imageURL string) (*user.Profile, error) {
	// хешируем до захвата мьютекса - bcrypt дорогой
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, u := range st.users {
		if !u.deleted && u.email == email {
			return nil, apperr.ErrEmailTaken
		}
	}

	u := &userRec{
		id:           st.nextUserID,
		email:        email,
		nickname:     nickname,
		passwordHash: string(hashedPassword),
		imageURL:     imageURL,
		createdAt:    time.Now(),
	}
	st.nextUserID++
	st.users[u.id] = u

	return u.profile(), nil
}

func (s *UserMemoryStorage) LoginUser(ctx context.Context, email, password string) (*user.Profile, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, u := range st.users {
		if !u.deleted && u.email == email {
			if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
				return nil, apperr.ErrInvalidCredentials
			}
			return u.profile(), nil
		}
	}
	// неизвестный email и неверный пароль неразличимы снаружи
	return nil, apperr.ErrInvalidCredentials
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id uint) (*user.Profile, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	u, ok := st.liveUser(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u.profile(), nil
}

func (s *UserMemoryStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, u := range st.users {
		if !u.deleted && u.email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserMemoryStorage) UpdateNickname(ctx context.Context, id uint, nickname string) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	u, ok := st.liveUser(id)
	if !ok {
		return apperr.ErrNotFound
	}
	u.nickname = nickname
	return nil
}

func (s *UserMemoryStorage) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	u, ok := st.liveUser(id)
	if !ok {
		return apperr.ErrNotFound
	}
	u.passwordHash = string(hashedPassword)
	return nil
}

func (s *UserMemoryStorage) DeleteUser(ctx context.Context, id uint) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	u, ok := st.liveUser(id)
	if !ok {
		return apperr.ErrNotFound
	}
	u.deleted = true
	return nil
}
