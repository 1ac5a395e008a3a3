package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ghiblify_backend/internal/model"
	"ghiblify_backend/pkg/access"
	"ghiblify_backend/pkg/email"
)

func InitTrialExpiryCron(db *gorm.DB, emailService *email.EmailService) {
	c := cron.New()

	// Her gün saat 9'da
	_, err := c.AddFunc("0 9 * * *", func() {
		checkExpiringTrials(db, emailService)
	})

	if err != nil {
		log.Printf("Could not initialize trial expiry cron: %v", err)
		return
	}

	c.Start()
}

func checkExpiringTrials(db *gorm.DB, emailService *email.EmailService) {
	log.Println("Checking for expiring trials...")

	// Deneme süresi 2 gün sonra biten ve bugün biten kullanıcılar
	warningDays := []int{2, 0}
	now := time.Now()

	for _, daysLeft := range warningDays {
		// Deneme bitişi = created_at + TrialDays * 24h
		elapsed := time.Duration(access.TrialDays-daysLeft) * 24 * time.Hour
		windowEnd := now.Add(-elapsed)
		windowStart := windowEnd.Add(-24 * time.Hour)

		var users []model.User
		err := db.Where("is_subscribed = ? AND created_at BETWEEN ? AND ?", false, windowStart, windowEnd).
			Find(&users).Error
		if err != nil {
			log.Printf("Error fetching expiring trials: %v", err)
			continue
		}

		log.Printf("Found %d trials expiring in %d days", len(users), daysLeft)

		if emailService == nil {
			continue
		}

		for _, user := range users {
			if err := emailService.SendTrialEndingEmail(user.Email, user.Username, daysLeft); err != nil {
				log.Printf("Error sending trial warning to %s: %v", user.Email, err)
			} else {
				log.Printf("Sent trial warning to %s (%d days left)", user.Email, daysLeft)
			}
		}
	}
}
