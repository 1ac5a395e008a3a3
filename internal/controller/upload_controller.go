package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ghiblify_backend/internal/store"
	"ghiblify_backend/pkg/utils/image"
	"ghiblify_backend/pkg/utils/jwt"
	"ghiblify_backend/pkg/utils/storage"
	"ghiblify_backend/pkg/utils/validation"
)

type UploadController struct {
	users   store.UserStore
	storage ObjectStorage
}

func NewUploadController(users store.UserStore, st ObjectStorage) *UploadController {
	return &UploadController{users: users, storage: st}
}

// UploadImage kaynak fotoğrafı alır, optimize eder ve obje deposuna yükler.
// Dönen URL üretim isteğinde image_urls olarak kullanılır.
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := uc.users.GetByID(c.Context(), claims.UserID)
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

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	key := storage.UploadKey(user.Username, file.Filename)
	url, err := uc.storage.SaveBytes(c.Context(), key, buf.Bytes(), contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
