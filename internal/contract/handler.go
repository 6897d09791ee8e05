package contract

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

type CreateContractRequest struct {
	ClientID          uint    `json:"client_id"`
	Title             string  `json:"title"`
	StartDate         string  `json:"start_date"` // "2026-01-01"
	EndDate           *string `json:"end_date"`
	MonthlyVideoQuota int     `json:"monthly_video_quota"`
	MonthlyPostQuota  int     `json:"monthly_post_quota"`
	MaxRevisions      *int    `json:"max_revisions"`
	MonthlyFee        float64 `json:"monthly_fee"`
	Currency          string  `json:"currency"`
}

type UpdateContractRequest struct {
	Title             *string  `json:"title"`
	StartDate         *string  `json:"start_date"`
	EndDate           *string  `json:"end_date"`
	MonthlyVideoQuota *int     `json:"monthly_video_quota"`
	MonthlyPostQuota  *int     `json:"monthly_post_quota"`
	MaxRevisions      *int     `json:"max_revisions"`
	MonthlyFee        *float64 `json:"monthly_fee"`
	Currency          *string  `json:"currency"`
	Status            *string  `json:"status"`
}

type ContractResponse struct {
	ID                uint    `json:"id"`
	ClientID          uint    `json:"client_id"`
	ClientName        string  `json:"client_name"`
	Title             string  `json:"title"`
	StartDate         string  `json:"start_date"`
	EndDate           *string `json:"end_date"`
	MonthlyVideoQuota int     `json:"monthly_video_quota"`
	MonthlyPostQuota  int     `json:"monthly_post_quota"`
	MaxRevisions      int     `json:"max_revisions"`
	MonthlyFee        float64 `json:"monthly_fee"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
}

type QuotaUsageItem struct {
	Used    int     `json:"used"`
	Max     int     `json:"max"`
	Percent float64 `json:"percent"`
	Tier    string  `json:"tier"`
}

type QuotaUsageResponse struct {
	ContractID uint           `json:"contract_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Video      QuotaUsageItem `json:"video"`
	Post       QuotaUsageItem `json:"post"`
}

func toContractResponse(ct *models.Contract) ContractResponse {
	var endDate *string
	if ct.EndDate != nil {
		formatted := ct.EndDate.Format("2006-01-02")
		endDate = &formatted
	}
	return ContractResponse{
		ID:                ct.ID,
		ClientID:          ct.ClientID,
		ClientName:        ct.Client.Name,
		Title:             ct.Title,
		StartDate:         ct.StartDate.Format("2006-01-02"),
		EndDate:           endDate,
		MonthlyVideoQuota: ct.MonthlyVideoQuota,
		MonthlyPostQuota:  ct.MonthlyPostQuota,
		MaxRevisions:      ct.MaxRevisions,
		MonthlyFee:        ct.MonthlyFee,
		Currency:          ct.Currency,
		Status:            string(ct.Status),
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

// POST /api/contracts (super_admin)
func CreateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.ClientID == 0 || body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_id ve title zorunlu")
		}
		if body.MonthlyVideoQuota < 0 || body.MonthlyPostQuota < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kotalar negatif olamaz")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var end *time.Time
		if body.EndDate != nil && *body.EndDate != "" {
			e, err := time.Parse("2006-01-02", *body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			if e.Before(start) {
				return fiber.NewError(fiber.StatusBadRequest, "Bitiş tarihi başlangıçtan önce olamaz")
			}
			end = &e
		}

		maxRevisions := 2
		if body.MaxRevisions != nil {
			if *body.MaxRevisions < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "max_revisions negatif olamaz")
			}
			maxRevisions = *body.MaxRevisions
		}

		currency := strings.TrimSpace(body.Currency)
		if currency == "" {
			currency = "TRY"
		}

		ct := models.Contract{
			ClientID:          body.ClientID,
			Title:             body.Title,
			StartDate:         start,
			EndDate:           end,
			MonthlyVideoQuota: body.MonthlyVideoQuota,
			MonthlyPostQuota:  body.MonthlyPostQuota,
			MaxRevisions:      maxRevisions,
			MonthlyFee:        body.MonthlyFee,
			Currency:          currency,
			Status:            models.ContractStatusActive,
		}

		if err := database.DB.Create(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşme oluşturulamadı")
		}
		ct.Client = cl

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &ct.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "contract",
				EntityID:    ct.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Sözleşme eklendi: %s (%s)", ct.Title, cl.Name),
				Before:      nil,
				After:       ct,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toContractResponse(&ct))
	}
}

// GET /api/contracts?client_id=1&status=active
func ListContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, _ := roleVal.(models.UserRole)

		dbq := database.DB.Model(&models.Contract{}).Preload("Client")

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

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var contracts []models.Contract
		if err := dbq.Order("start_date desc").Find(&contracts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşmeler listelenemedi")
		}

		resp := make([]ContractResponse, 0, len(contracts))
		for _, ct := range contracts {
			resp = append(resp, toContractResponse(&ct))
		}
		return c.JSON(resp)
	}
}

// GET /api/contracts/:id
func GetContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sözleşme ID")
		}

		var ct models.Contract
		if err := database.DB.Preload("Client").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		if err := checkClientScope(c, ct.ClientID); err != nil {
			return err
		}

		return c.JSON(toContractResponse(&ct))
	}
}

// PUT /api/contracts/:id (super_admin)
func UpdateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sözleşme ID")
		}

		var ct models.Contract
		if err := database.DB.Preload("Client").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		before := ct

		var body UpdateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Title boş olamaz")
			}
			ct.Title = title
		}
		if body.StartDate != nil {
			start, err := time.Parse("2006-01-02", *body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			ct.StartDate = start
		}
		if body.EndDate != nil {
			if *body.EndDate == "" {
				ct.EndDate = nil
			} else {
				e, err := time.Parse("2006-01-02", *body.EndDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
				}
				ct.EndDate = &e
			}
		}
		if body.MonthlyVideoQuota != nil {
			if *body.MonthlyVideoQuota < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kota negatif olamaz")
			}
			ct.MonthlyVideoQuota = *body.MonthlyVideoQuota
		}
		if body.MonthlyPostQuota != nil {
			if *body.MonthlyPostQuota < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kota negatif olamaz")
			}
			ct.MonthlyPostQuota = *body.MonthlyPostQuota
		}
		if body.MaxRevisions != nil {
			if *body.MaxRevisions < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "max_revisions negatif olamaz")
			}
			ct.MaxRevisions = *body.MaxRevisions
		}
		if body.MonthlyFee != nil {
			ct.MonthlyFee = *body.MonthlyFee
		}
		if body.Currency != nil && strings.TrimSpace(*body.Currency) != "" {
			ct.Currency = strings.TrimSpace(*body.Currency)
		}
		if body.Status != nil {
			switch models.ContractStatus(*body.Status) {
			case models.ContractStatusActive, models.ContractStatusPaused, models.ContractStatusEnded:
				ct.Status = models.ContractStatus(*body.Status)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz (active|paused|ended)")
			}
		}

		if err := database.DB.Save(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşme güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &ct.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "contract",
				EntityID:    ct.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sözleşme güncellendi: %s", ct.Title),
				Before:      before,
				After:       ct,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toContractResponse(&ct))
	}
}

// DELETE /api/contracts/:id (super_admin)
func DeleteContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sözleşme ID")
		}

		var ct models.Contract
		if err := database.DB.First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		// Bağlı proje varsa silme
		var projectCount int64
		database.DB.Model(&models.Project{}).Where("contract_id = ?", ct.ID).Count(&projectCount)
		if projectCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sözleşmeye bağlı projeler var, önce onları taşıyın")
		}

		if err := database.DB.Delete(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşme silinemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &ct.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "contract",
				EntityID:    ct.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Sözleşme silindi: %s", ct.Title),
				Before:      ct,
				After:       nil,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/contracts/:id/quota-usage?year=2026&month=1
// Ay içinde DELIVERED duruma geçmiş teslimatları tipe göre sayar.
func QuotaUsageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sözleşme ID")
		}

		var ct models.Contract
		if err := database.DB.First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		if err := checkClientScope(c, ct.ClientID); err != nil {
			return err
		}

		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		loc := time.Now().Location()
		firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		nextMonth := firstDay.AddDate(0, 1, 0)

		countByType := func(dtype models.DeliverableType) (int, error) {
			var n int64
			err := database.DB.Model(&models.Deliverable{}).
				Joins("JOIN projects ON projects.id = deliverables.project_id").
				Where("projects.contract_id = ?", ct.ID).
				Where("deliverables.type = ?", dtype).
				Where("deliverables.status = ?", models.DeliverableStatusDelivered).
				Where("deliverables.completed_at >= ? AND deliverables.completed_at < ?", firstDay, nextMonth).
				Count(&n).Error
			return int(n), err
		}

		videoUsed, err := countByType(models.DeliverableTypeVideo)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kota kullanımı hesaplanamadı")
		}
		designUsed, err := countByType(models.DeliverableTypeDesign)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kota kullanımı hesaplanamadı")
		}
		photoUsed, err := countByType(models.DeliverableTypePhoto)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kota kullanımı hesaplanamadı")
		}

		// Fotoğraf ve tasarım aynı post kotasından düşer
		postUsed := designUsed + photoUsed

		resp := QuotaUsageResponse{
			ContractID: ct.ID,
			Year:       year,
			Month:      month,
			Video: QuotaUsageItem{
				Used:    videoUsed,
				Max:     ct.MonthlyVideoQuota,
				Percent: rules.QuotaUsagePercent(videoUsed, ct.MonthlyVideoQuota),
				Tier:    string(rules.QuotaUsageTier(videoUsed, ct.MonthlyVideoQuota)),
			},
			Post: QuotaUsageItem{
				Used:    postUsed,
				Max:     ct.MonthlyPostQuota,
				Percent: rules.QuotaUsagePercent(postUsed, ct.MonthlyPostQuota),
				Tier:    string(rules.QuotaUsageTier(postUsed, ct.MonthlyPostQuota)),
			},
		}

		return c.JSON(resp)
	}
}
