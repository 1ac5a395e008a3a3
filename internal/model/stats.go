package model

import (
	"time"

	"gorm.io/gorm"
)

// GenerationStats günlük üretim istatistikleri
type GenerationStats struct {
	gorm.Model
	Date             time.Time `json:"date" gorm:"uniqueIndex"`
	TotalGenerations int64     `json:"total_generations"` // O gün oluşturulan kayıt sayısı
	ActiveUsers      int64     `json:"active_users"`      // O gün üretim yapan kullanıcı sayısı
	SubscribedUsers  int64     `json:"subscribed_users"`  // Aktif abone sayısı (gün sonu)
	TrialUsers       int64     `json:"trial_users"`       // Deneme süresi devam eden kullanıcı sayısı
}
