package controller_test

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"ghiblify_backend/internal/model"
	"ghiblify_backend/internal/store"
	"ghiblify_backend/pkg/utils/jwt"
)

// withClaims auth middleware'in yerine test claims'i koyar
func withClaims(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Claims{UserID: userID, Email: fmt.Sprintf("user%d@example.com", userID)})
		return c.Next()
	}
}

// fakeUserStore test için in-memory UserStore
type fakeUserStore struct {
	users   map[uint]*model.User
	updates []map[string]interface{}
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = uint(len(s.users) + 1)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

// UpdateFields GORM'un map tabanlı Updates davranışını taklit eder:
// eşleşen kayıt yoksa hata dönmez, alanlar sabit atama olarak uygulanır.
func (s *fakeUserStore) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	s.updates = append(s.updates, fields)

	user, ok := s.users[id]
	if !ok {
		return nil
	}

	for k, v := range fields {
		switch k {
		case "is_subscribed":
			user.IsSubscribed = v.(bool)
		case "subscription_status":
			user.SubscriptionStatus = v.(string)
		case "stripe_customer_id":
			user.StripeCustomerID = v.(string)
		case "stripe_subscription_id":
			user.StripeSubscriptionID = v.(string)
		case "subscription_start":
			t := v.(time.Time)
			user.SubscriptionStart = &t
		case "subscription_end":
			user.SubscriptionEnd = v.(*time.Time)
		}
	}
	return nil
}

// fakeGenerationStore test için in-memory GenerationStore
type fakeGenerationStore struct {
	created []model.Generation
}

func (s *fakeGenerationStore) Create(_ context.Context, gen *model.Generation) error {
	gen.ID = uint(len(s.created) + 1)
	gen.CreatedAt = time.Now()
	s.created = append(s.created, *gen)
	return nil
}

func (s *fakeGenerationStore) ListByUser(_ context.Context, userID uint) ([]model.Generation, error) {
	var gens []model.Generation
	for i := len(s.created) - 1; i >= 0; i-- {
		if s.created[i].UserID == userID {
			gens = append(gens, s.created[i])
		}
	}
	return gens, nil
}

// fakeGenerator dış üretim servisini taklit eder
type fakeGenerator struct {
	resultURL   string
	generateErr error
	downloadErr error

	generateCalls int
	lastImageURL  string
	lastPrompt    string
}

func (g *fakeGenerator) Model() string {
	return "test/ghibli-model"
}

func (g *fakeGenerator) Generate(_ context.Context, imageURL, prompt string) (string, error) {
	g.generateCalls++
	g.lastImageURL = imageURL
	g.lastPrompt = prompt
	if g.generateErr != nil {
		return "", g.generateErr
	}
	return g.resultURL, nil
}

func (g *fakeGenerator) Download(_ context.Context, url string) ([]byte, string, error) {
	if g.downloadErr != nil {
		return nil, "", g.downloadErr
	}
	return []byte("fake-png-bytes"), "image/png", nil
}

// fakeStorage obje deposunu taklit eder
type fakeStorage struct {
	saveErr   error
	savedKeys []string
	savedData [][]byte
}

func (s *fakeStorage) SaveBytes(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.savedKeys = append(s.savedKeys, key)
	s.savedData = append(s.savedData, data)
	return "https://cdn.test/" + key, nil
}

func (s *fakeStorage) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://cdn.test/%s?signature=test", key), nil
}
