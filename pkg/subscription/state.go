package subscription

import "time"

// İşlenen Stripe event tipleri. Listede olmayan tipler no-op olarak
// acknowledge edilir.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

const (
	StatusNone     = "none"
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// MetadataUserKey checkout session oluşturulurken metadata'ya yazılan anahtar.
// Webhook event'leri bu anahtar üzerinden kullanıcıya bağlanır.
const MetadataUserKey = "userId"

// CheckoutSession checkout.session.completed gövdesinin kullanılan alanları
type CheckoutSession struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

func (s *CheckoutSession) UserID() string { return s.Metadata[MetadataUserKey] }

// Subscription customer.subscription.* gövdesinin kullanılan alanları.
// Zaman alanları unix saniye, event'te yoksa sıfır kalır.
type Subscription struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
	CancelAt int64             `json:"cancel_at"`
	TrialEnd int64             `json:"trial_end"`
	EndedAt  int64             `json:"ended_at"`
}

func (s *Subscription) UserID() string { return s.Metadata[MetadataUserKey] }

// CheckoutCompletedFields checkout tamamlandığında user kaydına yazılacak alanlar
func CheckoutCompletedFields(s *CheckoutSession, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"is_subscribed":          true,
		"subscription_status":    StatusActive,
		"stripe_customer_id":     s.Customer,
		"stripe_subscription_id": s.Subscription,
		"subscription_start":     now,
	}
}

// UpdatedFields provider'ın status string'ini olduğu gibi taşır. Event'te
// bitiş tarihi yoksa subscription_end NULL olarak üzerine yazılır.
func UpdatedFields(s *Subscription) map[string]interface{} {
	return map[string]interface{}{
		"subscription_status": s.Status,
		"subscription_end":    EndDate(s),
	}
}

// DeletedFields abonelik silindiğinde yazılacak alanlar
func DeletedFields(s *Subscription) map[string]interface{} {
	return map[string]interface{}{
		"is_subscribed":       false,
		"subscription_status": StatusCanceled,
		"subscription_end":    EndDate(s),
	}
}

// EndDate cancel_at, trial_end, ended_at alanlarından ilk dolu olanı döndürür
func EndDate(s *Subscription) *time.Time {
	for _, ts := range []int64{s.CancelAt, s.TrialEnd, s.EndedAt} {
		if ts > 0 {
			t := time.Unix(ts, 0).UTC()
			return &t
		}
	}
	return nil
}
