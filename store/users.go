package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/neuronstudy/backend/models"
)

type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return users, nil
}
