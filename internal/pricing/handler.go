package pricing

import (
	"fmt"
	"strings"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePriceItemRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
}

type UpdatePriceItemRequest struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
	Currency  *string  `json:"currency"`
}

type PriceItemResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
}

func toPriceItemResponse(pi *models.PriceItem) PriceItemResponse {
	return PriceItemResponse{
		ID:        pi.ID,
		Name:      pi.Name,
		Category:  pi.Category,
		Unit:      pi.Unit,
		UnitPrice: pi.UnitPrice,
		Currency:  pi.Currency,
	}
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

// GET /api/price-items?category=video (auth olan herkes)
func ListPriceItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PriceItem{})

		if cat := c.Query("category"); cat != "" {
			dbq = dbq.Where("category = ?", cat)
		}

		var items []models.PriceItem
		if err := dbq.Order("category asc, name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat listesi yüklenemedi")
		}

		resp := make([]PriceItemResponse, 0, len(items))
		for _, pi := range items {
			resp = append(resp, toPriceItemResponse(&pi))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/price-items (super_admin)
func CreatePriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePriceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name zorunlu")
		}
		if body.UnitPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "unit_price negatif olamaz")
		}

		currency := strings.TrimSpace(body.Currency)
		if currency == "" {
			currency = "TRY"
		}

		pi := models.PriceItem{
			Name:      body.Name,
			Category:  strings.TrimSpace(body.Category),
			Unit:      strings.TrimSpace(body.Unit),
			UnitPrice: body.UnitPrice,
			Currency:  currency,
		}

		if err := database.DB.Create(&pi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kalemi oluşturulamadı")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    nil,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "price_item",
				EntityID:    pi.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Fiyat kalemi eklendi: %s - %.2f %s", pi.Name, pi.UnitPrice, pi.Currency),
				Before:      nil,
				After:       pi,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toPriceItemResponse(&pi))
	}
}

// PUT /api/admin/price-items/:id (super_admin)
func UpdatePriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fiyat kalemi ID")
		}

		var pi models.PriceItem
		if err := database.DB.First(&pi, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiyat kalemi bulunamadı")
		}

		before := pi

		var body UpdatePriceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			pi.Name = name
		}
		if body.Category != nil {
			pi.Category = strings.TrimSpace(*body.Category)
		}
		if body.Unit != nil {
			pi.Unit = strings.TrimSpace(*body.Unit)
		}
		if body.UnitPrice != nil {
			if *body.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unit_price negatif olamaz")
			}
			pi.UnitPrice = *body.UnitPrice
		}
		if body.Currency != nil && strings.TrimSpace(*body.Currency) != "" {
			pi.Currency = strings.TrimSpace(*body.Currency)
		}

		if err := database.DB.Save(&pi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kalemi güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    nil,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "price_item",
				EntityID:    pi.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Fiyat kalemi güncellendi: %s", pi.Name),
				Before:      before,
				After:       pi,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toPriceItemResponse(&pi))
	}
}

// DELETE /api/admin/price-items/:id (super_admin)
func DeletePriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fiyat kalemi ID")
		}

		var pi models.PriceItem
		if err := database.DB.First(&pi, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiyat kalemi bulunamadı")
		}

		if err := database.DB.Delete(&pi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kalemi silinemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    nil,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "price_item",
				EntityID:    pi.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Fiyat kalemi silindi: %s", pi.Name),
				Before:      pi,
				After:       nil,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
