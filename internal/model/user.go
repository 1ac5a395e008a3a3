package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`

	// Abonelik durumu: sadece Stripe webhook handler'ları günceller
	IsSubscribed         bool       `json:"is_subscribed" gorm:"default:false"`
	SubscriptionStatus   string     `json:"subscription_status" gorm:"default:'none'"`
	StripeCustomerID     string     `json:"stripe_customer_id"`
	StripeSubscriptionID string     `json:"stripe_subscription_id"`
	SubscriptionStart    *time.Time `json:"subscription_start_date"`
	SubscriptionEnd      *time.Time `json:"subscription_end_date"`

	// İlişkiler
	Generations []Generation `json:"-"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                  u.ID,
		"email":               u.Email,
		"username":            u.Username,
		"is_subscribed":       u.IsSubscribed,
		"subscription_status": u.SubscriptionStatus,
		"created_at":          u.CreatedAt,
	}
}
