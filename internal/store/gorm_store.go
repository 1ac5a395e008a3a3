package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ghiblify_backend/internal/model"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

type GormGenerationStore struct {
	db *gorm.DB
}

func NewGenerationStore(db *gorm.DB) *GormGenerationStore {
	return &GormGenerationStore{db: db}
}

func (s *GormGenerationStore) Create(ctx context.Context, gen *model.Generation) error {
	return s.db.WithContext(ctx).Create(gen).Error
}

func (s *GormGenerationStore) ListByUser(ctx context.Context, userID uint) ([]model.Generation, error) {
	var gens []model.Generation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&gens).Error
	return gens, err
}
