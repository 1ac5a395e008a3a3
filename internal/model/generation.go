package model

import (
	"time"

	"gorm.io/datatypes"
)

// Generation bir kaynak fotoğraf ile üretilen Ghibli versiyonunu eşler.
// Kayıtlar oluşturulduktan sonra değiştirilmez.
type Generation struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	OriginalURL  string         `json:"original_url" gorm:"not null"`
	GeneratedURL string         `json:"generated_url" gorm:"not null"`
	Prompt       string         `json:"prompt"`
	ModelVersion string         `json:"model_version"`
	Input        datatypes.JSON `json:"input"` // Replicate'e gönderilen ham girdi
	CreatedAt    time.Time      `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
