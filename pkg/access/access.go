package access

import "time"

// TrialDays ücretsiz deneme süresi (gün)
const TrialDays = 7

type Decision struct {
	Allowed       bool `json:"allowed"`
	DaysRemaining int  `json:"days_remaining"`
}

// Evaluate kullanıcının üretim yapıp yapamayacağını hesaplar.
// Deneme süresi takvim günü değil, kayıttan itibaren geçen 86400 saniyelik
// dilimler üzerinden hesaplanır. 7. gün dahildir.
func Evaluate(createdAt time.Time, isSubscribed bool, now time.Time) Decision {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		// Clock skew / ileri tarihli kayıt, erişimi kapatma
		elapsed = 0
	}

	daysSinceSignUp := int(elapsed / (24 * time.Hour))

	daysRemaining := TrialDays - daysSinceSignUp
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return Decision{
		Allowed:       isSubscribed || elapsed <= TrialDays*24*time.Hour,
		DaysRemaining: daysRemaining,
	}
}
