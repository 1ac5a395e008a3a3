package store

import (
	"context"
	"errors"

	"ghiblify_backend/internal/model"
)

var ErrNotFound = errors.New("record not found")

// UserStore kalıcı kullanıcı kayıtlarına erişim. Abonelik alanları sadece
// webhook handler'ın UpdateFields çağrılarıyla değişir.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}

// GenerationStore üretim kayıtları; append-only, update/delete yolu yok
type GenerationStore interface {
	Create(ctx context.Context, gen *model.Generation) error
	ListByUser(ctx context.Context, userID uint) ([]model.Generation, error)
}
