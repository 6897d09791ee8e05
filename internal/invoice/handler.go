package invoice

import (
	"fmt"
	"strings"
	"time"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInvoiceRequest struct {
	ClientID    uint    `json:"client_id"`
	ContractID  *uint   `json:"contract_id"`
	Number      string  `json:"number"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	IssueDate   string  `json:"issue_date"` // "2026-01-05"
	DueDate     string  `json:"due_date"`
}

type UpdateInvoiceRequest struct {
	Number      *string  `json:"number"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	IssueDate   *string  `json:"issue_date"`
	DueDate     *string  `json:"due_date"`
}

type InvoiceResponse struct {
	ID          uint    `json:"id"`
	ClientID    uint    `json:"client_id"`
	ClientName  string  `json:"client_name"`
	ContractID  *uint   `json:"contract_id"`
	Number      string  `json:"number"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	IssueDate   string  `json:"issue_date"`
	DueDate     string  `json:"due_date"`
	Paid        bool    `json:"paid"`
	PaidAt      *string `json:"paid_at"`
	Overdue     bool    `json:"overdue"`
}

type MonthlyRevenueResponse struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	PaidTotal   float64 `json:"paid_total"`
	UnpaidTotal float64 `json:"unpaid_total"`
	PaidCount   int64   `json:"paid_count"`
	UnpaidCount int64   `json:"unpaid_count"`
}

func toInvoiceResponse(inv *models.Invoice, now time.Time) InvoiceResponse {
	var paidAt *string
	if inv.PaidAt != nil {
		formatted := inv.PaidAt.Format("2006-01-02")
		paidAt = &formatted
	}
	return InvoiceResponse{
		ID:          inv.ID,
		ClientID:    inv.ClientID,
		ClientName:  inv.Client.Name,
		ContractID:  inv.ContractID,
		Number:      inv.Number,
		Description: inv.Description,
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		IssueDate:   inv.IssueDate.Format("2006-01-02"),
		DueDate:     inv.DueDate.Format("2006-01-02"),
		Paid:        inv.Paid,
		PaidAt:      paidAt,
		Overdue:     !inv.Paid && inv.DueDate.Before(now),
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

// POST /api/invoices (super_admin)
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Number = strings.TrimSpace(body.Number)
		if body.ClientID == 0 || body.Number == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_id ve number zorunlu")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount > 0 olmalı")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		if body.ContractID != nil {
			var ct models.Contract
			if err := database.DB.First(&ct, "id = ?", *body.ContractID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bulunamadı")
			}
			if ct.ClientID != body.ClientID {
				return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bu müşteriye ait değil")
			}
		}

		issue, err := time.Parse("2006-01-02", body.IssueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		due, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		if due.Before(issue) {
			return fiber.NewError(fiber.StatusBadRequest, "Vade tarihi kesim tarihinden önce olamaz")
		}

		currency := strings.TrimSpace(body.Currency)
		if currency == "" {
			currency = "TRY"
		}

		inv := models.Invoice{
			ClientID:    body.ClientID,
			ContractID:  body.ContractID,
			Number:      body.Number,
			Description: body.Description,
			Amount:      body.Amount,
			Currency:    currency,
			IssueDate:   issue,
			DueDate:     due,
		}

		if err := database.DB.Create(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Fatura oluşturulamadı (numara benzersiz olmalı)")
		}
		inv.Client = cl

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &inv.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    inv.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Fatura kesildi: %s - %.2f %s", inv.Number, inv.Amount, inv.Currency),
				Before:      nil,
				After:       inv,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(&inv, time.Now()))
	}
}

// GET /api/invoices?client_id=1&paid=false&from=...&to=...
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, _ := roleVal.(models.UserRole)

		dbq := database.DB.Model(&models.Invoice{}).Preload("Client")

		if role == models.RoleAccountManager {
			cVal := c.Locals(auth.CtxClientIDKey)
			cPtr, ok := cVal.(*uint)
			if !ok || cPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Müşteri bilgisi bulunamadı")
			}
			dbq = dbq.Where("client_id = ?", *cPtr)
		} else if cid := c.QueryInt("client_id"); cid > 0 {
			dbq = dbq.Where("client_id = ?", cid)
		}

		if paidStr := c.Query("paid"); paidStr != "" {
			dbq = dbq.Where("paid = ?", paidStr == "true")
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("issue_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("issue_date <= ?", to)
		}

		var rows []models.Invoice
		if err := dbq.Order("issue_date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		now := time.Now()
		resp := make([]InvoiceResponse, 0, len(rows))
		for _, inv := range rows {
			resp = append(resp, toInvoiceResponse(&inv, now))
		}
		return c.JSON(resp)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var inv models.Invoice
		if err := database.DB.Preload("Client").First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if err := checkClientScope(c, inv.ClientID); err != nil {
			return err
		}

		return c.JSON(toInvoiceResponse(&inv, time.Now()))
	}
}

// PUT /api/invoices/:id (super_admin)
// Ödenmiş fatura değiştirilemez.
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var inv models.Invoice
		if err := database.DB.Preload("Client").First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if inv.Paid {
			return fiber.NewError(fiber.StatusBadRequest, "Ödenmiş fatura güncellenemez")
		}

		before := inv

		var body UpdateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Number != nil {
			number := strings.TrimSpace(*body.Number)
			if number == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Number boş olamaz")
			}
			inv.Number = number
		}
		if body.Description != nil {
			inv.Description = *body.Description
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "amount > 0 olmalı")
			}
			inv.Amount = *body.Amount
		}
		if body.Currency != nil && strings.TrimSpace(*body.Currency) != "" {
			inv.Currency = strings.TrimSpace(*body.Currency)
		}
		if body.IssueDate != nil {
			issue, err := time.Parse("2006-01-02", *body.IssueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			inv.IssueDate = issue
		}
		if body.DueDate != nil {
			due, err := time.Parse("2006-01-02", *body.DueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			inv.DueDate = due
		}

		if err := database.DB.Save(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &inv.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    inv.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Fatura güncellendi: %s", inv.Number),
				Before:      before,
				After:       inv,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toInvoiceResponse(&inv, time.Now()))
	}
}

// DELETE /api/invoices/:id (super_admin)
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var inv models.Invoice
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if inv.Paid {
			return fiber.NewError(fiber.StatusBadRequest, "Ödenmiş fatura silinemez")
		}

		// Faturaya bağlı teslimatların bağını kopar
		database.DB.Model(&models.Deliverable{}).
			Where("invoice_id = ?", inv.ID).
			Update("invoice_id", nil)

		if err := database.DB.Delete(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura silinemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &inv.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    inv.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Fatura silindi: %s", inv.Number),
				Before:      inv,
				After:       nil,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/invoices/:id/mark-paid (super_admin)
func MarkInvoicePaidHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var inv models.Invoice
		if err := database.DB.Preload("Client").First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if inv.Paid {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura zaten ödenmiş")
		}

		before := inv
		now := time.Now()
		inv.Paid = true
		inv.PaidAt = &now
		if err := database.DB.Save(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &inv.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    inv.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Fatura ödendi: %s - %.2f %s", inv.Number, inv.Amount, inv.Currency),
				Before:      before,
				After:       inv,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toInvoiceResponse(&inv, time.Now()))
	}
}

// GET /api/invoices/summary/monthly?year=2026&month=1 (super_admin)
// Kesim tarihine göre aylık ödenen/ödenmeyen toplamlar.
func MonthlyRevenueSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		loc := time.Now().Location()
		firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		nextMonth := firstDay.AddDate(0, 1, 0)

		type row struct {
			Total float64 `gorm:"column:total"`
			Count int64   `gorm:"column:count"`
		}

		sumWhere := func(paid bool) (row, error) {
			var r row
			err := database.DB.Model(&models.Invoice{}).
				Select("COALESCE(SUM(amount),0) as total, COUNT(*) as count").
				Where("paid = ? AND issue_date >= ? AND issue_date < ?", paid, firstDay, nextMonth).
				Scan(&r).Error
			return r, err
		}

		paidRow, err := sumWhere(true)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}
		unpaidRow, err := sumWhere(false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		return c.JSON(MonthlyRevenueResponse{
			Year:        year,
			Month:       month,
			PaidTotal:   paidRow.Total,
			UnpaidTotal: unpaidRow.Total,
			PaidCount:   paidRow.Count,
			UnpaidCount: unpaidRow.Count,
		})
	}
}
