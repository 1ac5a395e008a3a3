package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	stripeclient "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"ghiblify_backend/internal/store"
	"ghiblify_backend/pkg/config"
	"ghiblify_backend/pkg/email"
	"ghiblify_backend/pkg/subscription"
	"ghiblify_backend/pkg/utils/jwt"
)

type SubscriptionController struct {
	users   store.UserStore
	mailer  *email.EmailService
	stripe  *stripeclient.API
	cfg     config.StripeConfig
	baseURL string
}

func NewSubscriptionController(users store.UserStore, mailer *email.EmailService, cfg config.StripeConfig, baseURL string) *SubscriptionController {
	return &SubscriptionController{
		users:   users,
		mailer:  mailer,
		stripe:  stripeclient.New(cfg.SecretKey, nil),
		cfg:     cfg,
		baseURL: baseURL,
	}
}

// CreateCheckoutSession Stripe hosted checkout sayfası için session açar.
// Kullanıcı ID'si metadata'ya yazılır; webhook event'leri bu ID üzerinden
// kullanıcıya bağlanır.
func (sc *SubscriptionController) CreateCheckoutSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	user, err := sc.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(sc.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(sc.baseURL + "/dashboard?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(sc.baseURL + "/dashboard"),
		CustomerEmail: stripe.String(user.Email),
	}
	params.AddMetadata(subscription.MetadataUserKey, strconv.FormatUint(uint64(user.ID), 10))

	session, err := sc.stripe.CheckoutSessions.New(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}

// GetMySubscription kayıttaki abonelik durumunu olduğu gibi döndürür
func (sc *SubscriptionController) GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	user, err := sc.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	return c.JSON(fiber.Map{
		"is_subscribed":       user.IsSubscribed,
		"subscription_status": user.SubscriptionStatus,
	})
}

// HandleStripeWebhook Stripe'tan gelen event'leri doğrular ve abonelik
// durumunu günceller. Kullanıcı alanları sadece burada mutate edilir.
func (sc *SubscriptionController) HandleStripeWebhook(c *fiber.Ctx) error {
	// İmza ham gövde üzerinden doğrulanır; body parse edilmeden önce alınmalı
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, sc.cfg.WebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	switch event.Type {
	case subscription.EventCheckoutCompleted:
		var session subscription.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Malformed event payload",
			})
		}

		userID, ok := parseUserID(session.UserID())
		if !ok {
			// Metadata'da userId yok; event acknowledge edilir, kayıt değişmez
			log.Printf("checkout.session.completed %s has no userId metadata", session.ID)
			break
		}

		fields := subscription.CheckoutCompletedFields(&session, timeNow())
		if err := sc.users.UpdateFields(c.Context(), userID, fields); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription status",
			})
		}

		log.Printf("Subscription activated for user %d (sub %s)", userID, session.Subscription)
		sc.notifySubscriptionStarted(c, userID)

	case subscription.EventSubscriptionUpdated:
		var sub subscription.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Malformed event payload",
			})
		}

		userID, ok := parseUserID(sub.UserID())
		if !ok {
			log.Printf("customer.subscription.updated %s has no userId metadata", sub.ID)
			break
		}

		if err := sc.users.UpdateFields(c.Context(), userID, subscription.UpdatedFields(&sub)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription status",
			})
		}

		log.Printf("Subscription %s updated for user %d: %s", sub.ID, userID, sub.Status)

	case subscription.EventSubscriptionDeleted:
		var sub subscription.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Malformed event payload",
			})
		}

		userID, ok := parseUserID(sub.UserID())
		if !ok {
			log.Printf("customer.subscription.deleted %s has no userId metadata", sub.ID)
			break
		}

		if err := sc.users.UpdateFields(c.Context(), userID, subscription.DeletedFields(&sub)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription status",
			})
		}

		log.Printf("Subscription %s cancelled for user %d", sub.ID, userID)
		sc.notifySubscriptionCancelled(c, userID, subscription.EndDate(&sub))

	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	return c.JSON(fiber.Map{
		"received": true,
	})
}

// HandleSubscriptionSuccess hosted checkout'tan başarı dönüşü
func (sc *SubscriptionController) HandleSubscriptionSuccess(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":    "Payment successful. Your subscription will be activated shortly.",
		"session_id": c.Query("session_id"),
	})
}

// HandleSubscriptionCancel ödemeden vazgeçildi
func (sc *SubscriptionController) HandleSubscriptionCancel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Payment cancelled.",
	})
}

// parseUserID metadata'daki userId string'ini çözer
func parseUserID(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (sc *SubscriptionController) notifySubscriptionStarted(c *fiber.Ctx, userID uint) {
	if sc.mailer == nil {
		return
	}
	user, err := sc.users.GetByID(c.Context(), userID)
	if err != nil {
		log.Printf("Could not load user %d for subscription email: %v", userID, err)
		return
	}
	if err := sc.mailer.SendSubscriptionStartedEmail(user.Email, user.Username, timeNow()); err != nil {
		log.Printf("Could not send subscription email: %v", err)
	}
}

func (sc *SubscriptionController) notifySubscriptionCancelled(c *fiber.Ctx, userID uint, endsAt *time.Time) {
	if sc.mailer == nil {
		return
	}
	user, err := sc.users.GetByID(c.Context(), userID)
	if err != nil {
		log.Printf("Could not load user %d for cancellation email: %v", userID, err)
		return
	}
	if err := sc.mailer.SendSubscriptionCancelledEmail(user.Email, user.Username, endsAt); err != nil {
		log.Printf("Could not send subscription cancellation email: %v", err)
	}
}
