package deliverable

import (
	"fmt"
	"strings"
	"time"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"
	"ajans-backend/internal/rules"

	"github.com/gofiber/fiber/v2"
)

// Sözleşmesiz (tekil iş) teslimatlar için varsayılan revizyon hakkı
const defaultMaxRevisions = 2

type CreateDeliverableRequest struct {
	ProjectID uint    `json:"project_id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"` // video | photo | design
	DueDate   *string `json:"due_date"`
	InvoiceID *uint   `json:"invoice_id"`
	Notes     string  `json:"notes"`
}

type UpdateDeliverableRequest struct {
	Title     *string `json:"title"`
	Type      *string `json:"type"`
	DueDate   *string `json:"due_date"`
	InvoiceID *uint   `json:"invoice_id"`
	Notes     *string `json:"notes"`
}

type DeliverableResponse struct {
	ID                 uint    `json:"id"`
	ProjectID          uint    `json:"project_id"`
	ProjectName        string  `json:"project_name"`
	Title              string  `json:"title"`
	Type               string  `json:"type"`
	Status             string  `json:"status"`
	RevisionCount      int     `json:"revision_count"`
	RevisionsRemaining int     `json:"revisions_remaining"`
	CanRequestRevision bool    `json:"can_request_revision"`
	CanDeliver         bool    `json:"can_deliver"`
	Overdue            bool    `json:"overdue"`
	DueDate            *string `json:"due_date"`
	CompletedAt        *string `json:"completed_at"`
	InvoiceID          *uint   `json:"invoice_id"`
	InvoicePaid        bool    `json:"invoice_paid"`
	Notes              string  `json:"notes"`
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

// Proje sözleşmeye bağlıysa oradaki limit, değilse varsayılan
func maxRevisionsFor(d *models.Deliverable) int {
	if d.Project.ContractID == nil {
		return defaultMaxRevisions
	}
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", *d.Project.ContractID).Error; err != nil {
		return defaultMaxRevisions
	}
	return ct.MaxRevisions
}

func invoicePaid(d *models.Deliverable) bool {
	if d.InvoiceID == nil {
		return false
	}
	var inv models.Invoice
	if err := database.DB.First(&inv, "id = ?", *d.InvoiceID).Error; err != nil {
		return false
	}
	return inv.Paid
}

func toDeliverableResponse(d *models.Deliverable, now time.Time) DeliverableResponse {
	var dueDate *string
	if d.DueDate != nil {
		formatted := d.DueDate.Format("2006-01-02")
		dueDate = &formatted
	}
	var completedAt *string
	if d.CompletedAt != nil {
		formatted := d.CompletedAt.Format("2006-01-02 15:04")
		completedAt = &formatted
	}

	maxRev := maxRevisionsFor(d)
	remaining := rules.RevisionsRemaining(maxRev, d.RevisionCount)
	paid := invoicePaid(d)
	completed := d.Status == models.DeliverableStatusDelivered

	return DeliverableResponse{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		ProjectName:        d.Project.Name,
		Title:              d.Title,
		Type:               string(d.Type),
		Status:             string(d.Status),
		RevisionCount:      d.RevisionCount,
		RevisionsRemaining: remaining,
		CanRequestRevision: rules.CanRequestRevision(d.Status, remaining),
		CanDeliver:         rules.CanDeliver(d.Status, paid),
		Overdue:            rules.IsOverdue(d.DueDate, now, completed),
		DueDate:            dueDate,
		CompletedAt:        completedAt,
		InvoiceID:          d.InvoiceID,
		InvoicePaid:        paid,
		Notes:              d.Notes,
	}
}

func loadDeliverable(c *fiber.Ctx) (*models.Deliverable, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz teslimat ID")
	}

	var d models.Deliverable
	if err := database.DB.Preload("Project").First(&d, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Teslimat bulunamadı")
	}

	if err := checkClientScope(c, d.Project.ClientID); err != nil {
		return nil, err
	}

	return &d, nil
}

func writeLog(c *fiber.Ctx, d *models.Deliverable, action models.AuditAction, desc string, before, after any) {
	userID, userName, err := getUserInfo(c)
	if err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		ClientID:    &d.Project.ClientID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  "deliverable",
		EntityID:    d.ID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		fmt.Printf("Audit log yazılamadı: %v\n", logErr)
	}
}

// POST /api/deliverables
func CreateDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDeliverableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.ProjectID == 0 || body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "project_id ve title zorunlu")
		}

		switch models.DeliverableType(body.Type) {
		case models.DeliverableTypeVideo, models.DeliverableTypePhoto, models.DeliverableTypeDesign:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "type geçersiz (video|photo|design)")
		}

		var p models.Project
		if err := database.DB.First(&p, "id = ?", body.ProjectID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Proje bulunamadı")
		}

		if err := checkClientScope(c, p.ClientID); err != nil {
			return err
		}

		var due *time.Time
		if body.DueDate != nil && *body.DueDate != "" {
			d, err := time.Parse("2006-01-02", *body.DueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			due = &d
		}

		if body.InvoiceID != nil {
			var inv models.Invoice
			if err := database.DB.First(&inv, "id = ?", *body.InvoiceID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fatura bulunamadı")
			}
			if inv.ClientID != p.ClientID {
				return fiber.NewError(fiber.StatusBadRequest, "Fatura bu müşteriye ait değil")
			}
		}

		d := models.Deliverable{
			ProjectID: body.ProjectID,
			Title:     body.Title,
			Type:      models.DeliverableType(body.Type),
			Status:    models.DeliverableStatusPending,
			DueDate:   due,
			InvoiceID: body.InvoiceID,
			Notes:     body.Notes,
		}

		if err := database.DB.Create(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat oluşturulamadı")
		}
		d.Project = p

		writeLog(c, &d, models.AuditActionCreate,
			fmt.Sprintf("Teslimat eklendi: %s (%s)", d.Title, p.Name), nil, d)

		return c.Status(fiber.StatusCreated).JSON(toDeliverableResponse(&d, time.Now()))
	}
}

// GET /api/deliverables?project_id=1&status=AWAITING_REVIEW&client_id=2
func ListDeliverablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, _ := roleVal.(models.UserRole)

		dbq := database.DB.Model(&models.Deliverable{}).
			Preload("Project").
			Joins("JOIN projects ON projects.id = deliverables.project_id")

		if role == models.RoleAccountManager {
			cVal := c.Locals(auth.CtxClientIDKey)
			cPtr, ok := cVal.(*uint)
			if !ok || cPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Müşteri bilgisi bulunamadı")
			}
			dbq = dbq.Where("projects.client_id = ?", *cPtr)
		} else if cid := c.QueryInt("client_id"); cid > 0 {
			dbq = dbq.Where("projects.client_id = ?", cid)
		}

		if pid := c.QueryInt("project_id"); pid > 0 {
			dbq = dbq.Where("deliverables.project_id = ?", pid)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("deliverables.status = ?", status)
		}

		var rows []models.Deliverable
		if err := dbq.Order("deliverables.due_date asc NULLS LAST, deliverables.id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimatlar listelenemedi")
		}

		now := time.Now()
		resp := make([]DeliverableResponse, 0, len(rows))
		for _, d := range rows {
			resp = append(resp, toDeliverableResponse(&d, now))
		}
		return c.JSON(resp)
	}
}

// GET /api/deliverables/:id
func GetDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}
		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}

// PUT /api/deliverables/:id
func UpdateDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		before := *d

		var body UpdateDeliverableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Title boş olamaz")
			}
			d.Title = title
		}
		if body.Type != nil {
			switch models.DeliverableType(*body.Type) {
			case models.DeliverableTypeVideo, models.DeliverableTypePhoto, models.DeliverableTypeDesign:
				d.Type = models.DeliverableType(*body.Type)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz (video|photo|design)")
			}
		}
		if body.DueDate != nil {
			if *body.DueDate == "" {
				d.DueDate = nil
			} else {
				due, err := time.Parse("2006-01-02", *body.DueDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
				}
				d.DueDate = &due
			}
		}
		if body.InvoiceID != nil {
			if *body.InvoiceID == 0 {
				d.InvoiceID = nil
			} else {
				var inv models.Invoice
				if err := database.DB.First(&inv, "id = ?", *body.InvoiceID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Fatura bulunamadı")
				}
				if inv.ClientID != d.Project.ClientID {
					return fiber.NewError(fiber.StatusBadRequest, "Fatura bu müşteriye ait değil")
				}
				d.InvoiceID = body.InvoiceID
			}
		}
		if body.Notes != nil {
			d.Notes = *body.Notes
		}

		if err := database.DB.Save(d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat güncellenemedi")
		}

		writeLog(c, d, models.AuditActionUpdate,
			fmt.Sprintf("Teslimat güncellendi: %s", d.Title), before, *d)

		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}

// DELETE /api/deliverables/:id
func DeleteDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.Deliverable{}, "id = ?", d.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat silinemedi")
		}

		writeLog(c, d, models.AuditActionDelete,
			fmt.Sprintf("Teslimat silindi: %s", d.Title), *d, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Durum geçişleri
// -------------------------

// POST /api/deliverables/:id/submit
// Üretimden onaya gönderir (ilk gönderim veya revizyon sonrası tekrar).
func SubmitDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		switch d.Status {
		case models.DeliverableStatusPending, models.DeliverableStatusInProduction,
			models.DeliverableStatusRevisionRequested:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Bu durumda onaya gönderilemez")
		}

		before := *d
		d.Status = models.DeliverableStatusAwaitingReview
		if err := database.DB.Save(d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}

		writeLog(c, d, models.AuditActionUpdate,
			fmt.Sprintf("Teslimat onaya gönderildi: %s", d.Title), before, *d)

		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}

// POST /api/deliverables/:id/request-revision
// Revizyon hakkı sözleşmedeki MaxRevisions ile sınırlıdır.
func RequestRevisionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		maxRev := maxRevisionsFor(d)
		remaining := rules.RevisionsRemaining(maxRev, d.RevisionCount)
		if !rules.CanRequestRevision(d.Status, remaining) {
			if d.Status != models.DeliverableStatusAwaitingReview {
				return fiber.NewError(fiber.StatusBadRequest, "Sadece onay bekleyen teslimatlar için revizyon istenebilir")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Revizyon hakkı kalmadı")
		}

		before := *d
		d.RevisionCount++
		d.Status = models.DeliverableStatusRevisionRequested
		if err := database.DB.Save(d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}

		writeLog(c, d, models.AuditActionUpdate,
			fmt.Sprintf("Revizyon istendi: %s (%d/%d)", d.Title, d.RevisionCount, maxRev), before, *d)

		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}

// POST /api/deliverables/:id/approve
func ApproveDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		if d.Status != models.DeliverableStatusAwaitingReview {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece onay bekleyen teslimatlar onaylanabilir")
		}

		before := *d
		d.Status = models.DeliverableStatusApproved
		if err := database.DB.Save(d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}

		writeLog(c, d, models.AuditActionUpdate,
			fmt.Sprintf("Teslimat onaylandı: %s", d.Title), before, *d)

		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}

// POST /api/deliverables/:id/deliver
// Teslim şartı: onaylanmış VE bağlı fatura ödenmiş. Ödeme kontrolü burada,
// sunucu tarafında yapılır; arayüzdeki buton durumu bağlayıcı değildir.
func DeliverDeliverableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := loadDeliverable(c)
		if err != nil {
			return err
		}

		paid := invoicePaid(d)
		if !rules.CanDeliver(d.Status, paid) {
			if d.Status != models.DeliverableStatusApproved {
				return fiber.NewError(fiber.StatusBadRequest, "Sadece onaylanmış teslimatlar teslim edilebilir")
			}
			if d.InvoiceID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Teslimat bir faturaya bağlı değil")
			}
			return fiber.NewError(fiber.StatusPaymentRequired, "Fatura ödenmeden teslim edilemez")
		}

		before := *d
		now := time.Now()
		d.Status = models.DeliverableStatusDelivered
		d.CompletedAt = &now
		if err := database.DB.Save(d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}

		writeLog(c, d, models.AuditActionUpdate,
			fmt.Sprintf("Teslimat teslim edildi: %s", d.Title), before, *d)

		return c.JSON(toDeliverableResponse(d, time.Now()))
	}
}
