// pkg/cron/generation_stats.go
package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ghiblify_backend/internal/model"
	"ghiblify_backend/pkg/access"
)

func InitGenerationStatsCron(db *gorm.DB) {
	c := cron.New()

	// Her gece 00:10'da bir önceki günün istatistikleri
	_, err := c.AddFunc("10 0 * * *", func() {
		recordDailyGenerationStats(db)
	})

	if err != nil {
		log.Printf("Could not initialize generation stats cron: %v", err)
		return
	}

	c.Start()
}

func recordDailyGenerationStats(db *gorm.DB) {
	now := time.Now()
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayStart := dayEnd.Add(-24 * time.Hour)

	var totalGenerations int64
	if err := db.Model(&model.Generation{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&totalGenerations).Error; err != nil {
		log.Printf("Error counting generations: %v", err)
		return
	}

	var activeUsers int64
	if err := db.Model(&model.Generation{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Distinct("user_id").
		Count(&activeUsers).Error; err != nil {
		log.Printf("Error counting active users: %v", err)
		return
	}

	var subscribedUsers int64
	db.Model(&model.User{}).Where("is_subscribed = ?", true).Count(&subscribedUsers)

	var trialUsers int64
	trialCutoff := now.Add(-time.Duration(access.TrialDays) * 24 * time.Hour)
	db.Model(&model.User{}).
		Where("is_subscribed = ? AND created_at > ?", false, trialCutoff).
		Count(&trialUsers)

	stats := model.GenerationStats{Date: dayStart}
	db.FirstOrCreate(&stats, model.GenerationStats{Date: dayStart})

	err := db.Model(&stats).Updates(map[string]interface{}{
		"total_generations": totalGenerations,
		"active_users":      activeUsers,
		"subscribed_users":  subscribedUsers,
		"trial_users":       trialUsers,
	}).Error
	if err != nil {
		log.Printf("Error saving generation stats: %v", err)
		return
	}

	log.Printf("Daily stats for %s: %d generations by %d users (%d subscribed, %d on trial)",
		dayStart.Format("2006-01-02"), totalGenerations, activeUsers, subscribedUsers, trialUsers)
}
