package settings

import (
	"errors"

	"ajans-backend/internal/database"
	"ajans-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// İzin verilen anahtarlar. report_draft editör taslağını, theme rapor
// görünümünün varsayılan temasını tutar.
var allowedKeys = map[string]bool{
	"report_draft": true,
	"theme":        true,
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type PutSettingRequest struct {
	Value string `json:"value"`
}

// GET /api/settings/:key
func GetSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if !allowedKeys[key] {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen ayar anahtarı")
		}

		var s models.Setting
		if err := database.DB.First(&s, "key = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Hiç yazılmamış anahtar boş değerle döner
				return c.JSON(SettingResponse{Key: key, Value: ""})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ayar okunamadı")
		}

		return c.JSON(SettingResponse{Key: s.Key, Value: s.Value})
	}
}

// PUT /api/settings/:key
// Tam değer değiştirme: son yazan kazanır, merge yapılmaz.
func PutSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if !allowedKeys[key] {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen ayar anahtarı")
		}

		var body PutSettingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if key == "theme" && body.Value != "dark" && body.Value != "light" {
			return fiber.NewError(fiber.StatusBadRequest, "theme değeri dark veya light olmalı")
		}

		var s models.Setting
		err := database.DB.First(&s, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			s = models.Setting{Key: key, Value: body.Value}
			if err := database.DB.Create(&s).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ayar kaydedilemedi")
			}
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Ayar okunamadı")
		default:
			s.Value = body.Value
			if err := database.DB.Save(&s).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ayar kaydedilemedi")
			}
		}

		return c.JSON(SettingResponse{Key: s.Key, Value: s.Value})
	}
}
