package client

import (
	"fmt"
	"strings"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateClientRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Sector      string `json:"sector"`
	Instagram   string `json:"instagram"`
	Notes       string `json:"notes"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Sector      *string `json:"sector"`
	Instagram   *string `json:"instagram"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

type ClientResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Sector      string `json:"sector"`
	Instagram   string `json:"instagram"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type ClientListItem struct {
	ClientResponse
	ActiveContracts int   `json:"active_contracts"`
	OpenInvoices    int64 `json:"open_invoices"`
}

func toClientResponse(cl *models.Client) ClientResponse {
	return ClientResponse{
		ID:          cl.ID,
		Name:        cl.Name,
		ContactName: cl.ContactName,
		Email:       cl.Email,
		Phone:       cl.Phone,
		Sector:      cl.Sector,
		Instagram:   cl.Instagram,
		Notes:       cl.Notes,
		Status:      string(cl.Status),
		CreatedAt:   cl.CreatedAt.Format("2006-01-02"),
	}
}

// -------------------------
// Yardımcı: Kullanıcı bilgilerini al
// -------------------------
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

// Account manager sadece kendi müşterisini görebilir.
func checkClientScope(c *fiber.Ctx, clientID uint) error {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}
	if role == models.RoleSuperAdmin {
		return nil
	}

	cVal := c.Locals(auth.CtxClientIDKey)
	cPtr, ok := cVal.(*uint)
	if !ok || cPtr == nil || *cPtr != clientID {
		return fiber.NewError(fiber.StatusForbidden, "Bu müşteriye erişim yetkiniz yok")
	}
	return nil
}

// POST /api/clients (super_admin)
func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		cl := models.Client{
			Name:        body.Name,
			ContactName: strings.TrimSpace(body.ContactName),
			Email:       strings.TrimSpace(body.Email),
			Phone:       strings.TrimSpace(body.Phone),
			Sector:      strings.TrimSpace(body.Sector),
			Instagram:   strings.TrimSpace(strings.TrimPrefix(body.Instagram, "@")),
			Notes:       body.Notes,
			Status:      models.ClientStatusActive,
		}

		if err := database.DB.Create(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Müşteri oluşturulamadı (isim benzersiz olmalı)")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &cl.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "client",
				EntityID:    cl.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Müşteri eklendi: %s", cl.Name),
				Before:      nil,
				After:       cl,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toClientResponse(&cl))
	}
}

// GET /api/clients?status=active
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, _ := roleVal.(models.UserRole)

		dbq := database.DB.Model(&models.Client{})

		if role == models.RoleAccountManager {
			cVal := c.Locals(auth.CtxClientIDKey)
			cPtr, ok := cVal.(*uint)
			if !ok || cPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Müşteri bilgisi bulunamadı")
			}
			dbq = dbq.Where("id = ?", *cPtr)
		}

		status := c.Query("status")
		if status != "" {
			if status != string(models.ClientStatusActive) && status != string(models.ClientStatusArchived) {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz (active|archived)")
			}
			dbq = dbq.Where("status = ?", status)
		}

		var clients []models.Client
		if err := dbq.Order("name asc").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		resp := make([]ClientListItem, 0, len(clients))
		for _, cl := range clients {
			var activeContracts int64
			database.DB.Model(&models.Contract{}).
				Where("client_id = ? AND status = ?", cl.ID, models.ContractStatusActive).
				Count(&activeContracts)

			var openInvoices int64
			database.DB.Model(&models.Invoice{}).
				Where("client_id = ? AND paid = ?", cl.ID, false).
				Count(&openInvoices)

			resp = append(resp, ClientListItem{
				ClientResponse:  toClientResponse(&cl),
				ActiveContracts: int(activeContracts),
				OpenInvoices:    openInvoices,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/clients/:id
func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri ID")
		}

		if err := checkClientScope(c, uint(id)); err != nil {
			return err
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		return c.JSON(toClientResponse(&cl))
	}
}

// PUT /api/clients/:id
func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri ID")
		}

		if err := checkClientScope(c, uint(id)); err != nil {
			return err
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		before := cl

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı boş olamaz")
			}
			cl.Name = name
		}
		if body.ContactName != nil {
			cl.ContactName = strings.TrimSpace(*body.ContactName)
		}
		if body.Email != nil {
			cl.Email = strings.TrimSpace(*body.Email)
		}
		if body.Phone != nil {
			cl.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Sector != nil {
			cl.Sector = strings.TrimSpace(*body.Sector)
		}
		if body.Instagram != nil {
			cl.Instagram = strings.TrimSpace(strings.TrimPrefix(*body.Instagram, "@"))
		}
		if body.Notes != nil {
			cl.Notes = *body.Notes
		}
		if body.Status != nil {
			switch models.ClientStatus(*body.Status) {
			case models.ClientStatusActive, models.ClientStatusArchived:
				cl.Status = models.ClientStatus(*body.Status)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz (active|archived)")
			}
		}

		if err := database.DB.Save(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &cl.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "client",
				EntityID:    cl.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Müşteri güncellendi: %s", cl.Name),
				Before:      before,
				After:       cl,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toClientResponse(&cl))
	}
}

// POST /api/clients/:id/archive (super_admin)
// Silmek yerine arşivler; geçmiş raporlar ve faturalar müşteriye bağlı kalır.
func ArchiveClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri ID")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if cl.Status == models.ClientStatusArchived {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri zaten arşivde")
		}

		before := cl
		cl.Status = models.ClientStatusArchived
		if err := database.DB.Save(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri arşivlenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &cl.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "client",
				EntityID:    cl.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Müşteri arşivlendi: %s", cl.Name),
				Before:      before,
				After:       cl,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toClientResponse(&cl))
	}
}
