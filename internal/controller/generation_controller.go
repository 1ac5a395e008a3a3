package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"ghiblify_backend/internal/model"
	"ghiblify_backend/internal/store"
	"ghiblify_backend/pkg/access"
	"ghiblify_backend/pkg/generator"
	"ghiblify_backend/pkg/utils/jwt"
	"ghiblify_backend/pkg/utils/storage"
)

// timeNow testlerde sabitlenebilir
var timeNow = time.Now

// ImageGenerator dış üretim servisi (Replicate)
type ImageGenerator interface {
	Model() string
	Generate(ctx context.Context, imageURL, prompt string) (string, error)
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// ObjectStorage üretilen ve yüklenen görsellerin depolandığı obje deposu
type ObjectStorage interface {
	SaveBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type GenerationController struct {
	users       store.UserStore
	generations store.GenerationStore
	generator   ImageGenerator
	storage     ObjectStorage
}

func NewGenerationController(users store.UserStore, generations store.GenerationStore, gen ImageGenerator, st ObjectStorage) *GenerationController {
	return &GenerationController{
		users:       users,
		generations: generations,
		generator:   gen,
		storage:     st,
	}
}

type GenerateInput struct {
	ImageURLs []string `json:"image_urls"`
	Prompt    string   `json:"prompt"`
}

// SignedURLExpiry üretilen görsel linkinin geçerlilik süresi
const SignedURLExpiry = 24 * time.Hour

// Generate korumalı üretim endpoint'i: deneme/abonelik kontrolünden geçen
// kullanıcının fotoğrafını stilize eder, sonucu depolar ve kaydeder.
func (gc *GenerationController) Generate(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(GenerateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	// Dış servis çağrılmadan önce reddedilir
	if len(input.ImageURLs) == 0 || input.ImageURLs[0] == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	user, err := gc.users.GetByID(c.Context(), claims.UserID)
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

	decision := access.Evaluate(user.CreatedAt, user.IsSubscribed, timeNow())
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "trial_expired",
			"message":        "Your free trial has expired. Please subscribe to continue.",
			"days_remaining": 0,
		})
	}

	prompt := input.Prompt
	if prompt == "" {
		prompt = generator.DefaultPrompt
	}

	sourceURL := input.ImageURLs[0]

	resultURL, err := gc.generator.Generate(c.Context(), sourceURL, prompt)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "Image generation failed",
			"detail": err.Error(),
		})
	}

	data, contentType, err := gc.generator.Download(c.Context(), resultURL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "Could not fetch generated image",
			"detail": err.Error(),
		})
	}

	key := storage.GenerationKey(user.Username)
	storedURL, err := gc.storage.SaveBytes(c.Context(), key, data, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not store generated image",
		})
	}

	rawInput, _ := json.Marshal(map[string]interface{}{
		"image":  sourceURL,
		"prompt": prompt,
	})

	gen := model.Generation{
		UserID:       user.ID,
		OriginalURL:  sourceURL,
		GeneratedURL: storedURL,
		Prompt:       prompt,
		ModelVersion: gc.generator.Model(),
		Input:        datatypes.JSON(rawInput),
	}

	if err := gc.generations.Create(c.Context(), &gen); err != nil {
		// Görsel depoda kaldı, kayıt yazılamadı; geri alınmaz
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save generation record",
		})
	}

	signedURL, err := gc.storage.SignedURL(c.Context(), key, SignedURLExpiry)
	if err != nil {
		log.Printf("Could not presign generated image %s: %v", key, err)
		signedURL = storedURL
	}

	return c.JSON(fiber.Map{
		"url":            signedURL,
		"generation_id":  gen.ID,
		"days_remaining": decision.DaysRemaining,
	})
}

// ListGenerations kullanıcının geçmiş üretimlerini yeniden eskiye listeler
func (gc *GenerationController) ListGenerations(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	gens, err := gc.generations.ListByUser(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch generations",
		})
	}

	return c.JSON(fiber.Map{
		"generations": gens,
	})
}
