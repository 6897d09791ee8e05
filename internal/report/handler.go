package report

import (
	"encoding/json"
	"time"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ClientID    *uint           `json:"client_id"`
	Title       string          `json:"title"`
	PeriodLabel string          `json:"period_label"`
	Data        json.RawMessage `json:"data"` // kanonik rapor dokümanı
}

type UpdateReportRequest struct {
	Title       *string         `json:"title"`
	PeriodLabel *string         `json:"period_label"`
	Data        json.RawMessage `json:"data"` // tam değiştirme; merge yok
}

type ReportResponse struct {
	ID          uint            `json:"id"`
	ClientID    *uint           `json:"client_id"`
	Title       string          `json:"title"`
	PeriodLabel string          `json:"period_label"`
	Data        json.RawMessage `json:"data,omitempty"`
	ShareToken  string          `json:"share_token"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type PreviewRequest struct {
	JSONText string `json:"json_text"`
	Theme    string `json:"theme"`
}

func toReportResponse(r *models.Report, includeData bool) ReportResponse {
	res := ReportResponse{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		PeriodLabel: r.PeriodLabel,
		ShareToken:  r.ShareToken,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if includeData {
		res.Data = json.RawMessage(r.Data)
	}
	return res
}

func getUserInfo(c *fiber.Ctx) (uint, string) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, ""
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}

// POST /api/reports/build
// Editör form alanlarından kanonik rapor dokümanı üretir (kaydetmez).
// Bozuk sayısal girdi hata değildir; 0'a düşer.
func BuildDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields FormFields
		if err := c.BodyParser(&fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		doc := Build(fields)
		serialized, err := Serialize(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Doküman serileştirilemedi")
		}

		c.Set("Content-Type", "application/json; charset=utf-8")
		return c.Send(serialized)
	}
}

// POST /api/reports
func CreateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Rapor başlığı zorunlu")
		}
		if len(body.Data) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Rapor verisi zorunlu")
		}

		doc, err := Parse(body.Data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if body.ClientID != nil {
			var client models.Client
			if err := database.DB.First(&client, *body.ClientID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			}
		}

		// Kanonik biçimde sakla (alan sırası sabit, 2 boşluk girinti)
		canonical, err := Serialize(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Doküman serileştirilemedi")
		}

		userID, userName := getUserInfo(c)

		rec := models.Report{
			ClientID:    body.ClientID,
			Title:       body.Title,
			PeriodLabel: body.PeriodLabel,
			Data:        string(canonical),
			ShareToken:  uuid.NewString(),
			CreatedBy:   userID,
		}

		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			ClientID:    rec.ClientID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "report",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: "Rapor oluşturuldu: " + rec.Title,
			After:       rec,
		})

		return c.Status(fiber.StatusCreated).JSON(toReportResponse(&rec, false))
	}
}

// GET /api/reports?client_id=1
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("created_at DESC")
		if cid := c.QueryInt("client_id"); cid > 0 {
			q = q.Where("client_id = ?", cid)
		}

		var reports []models.Report
		if err := q.Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]ReportResponse, 0, len(reports))
		for i := range reports {
			res = append(res, toReportResponse(&reports[i], false))
		}
		return c.JSON(res)
	}
}

// GET /api/reports/:id
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Report
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		return c.JSON(toReportResponse(&rec, true))
	}
}

// PUT /api/reports/:id
// Data alanı gönderilirse doküman komple değiştirilir (merge yapılmaz).
func UpdateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Report
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		var body UpdateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := rec

		if body.Title != nil {
			if *body.Title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Rapor başlığı boş olamaz")
			}
			rec.Title = *body.Title
		}
		if body.PeriodLabel != nil {
			rec.PeriodLabel = *body.PeriodLabel
		}
		if len(body.Data) > 0 {
			doc, err := Parse(body.Data)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			canonical, err := Serialize(doc)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Doküman serileştirilemedi")
			}
			rec.Data = string(canonical)
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor güncellenemedi")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			ClientID:    rec.ClientID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "report",
			EntityID:    rec.ID,
			Action:      models.AuditActionUpdate,
			Description: "Rapor güncellendi: " + rec.Title,
			Before:      before,
			After:       rec,
		})

		return c.JSON(toReportResponse(&rec, false))
	}
}

// DELETE /api/reports/:id
func DeleteReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Report
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor silinemedi")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			ClientID:    rec.ClientID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "report",
			EntityID:    rec.ID,
			Action:      models.AuditActionDelete,
			Description: "Rapor silindi: " + rec.Title,
			Before:      rec,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func loadDocument(c *fiber.Ctx) (*models.Report, *Document, error) {
	id := c.Params("id")

	var rec models.Report
	if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
	}

	doc, err := Parse([]byte(rec.Data))
	if err != nil {
		// Kayıtlı veri her zaman kanonik JSON'dur; buraya düşmek veri bozulması demektir
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Kayıtlı rapor verisi çözümlenemedi")
	}
	return &rec, doc, nil
}

// GET /api/reports/:id/export/csv
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, doc, err := loadDocument(c)
		if err != nil {
			return err
		}

		fileName := CSVFileName(doc, time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "text/csv; charset=utf-8")
		c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		return c.Send(RenderCSV(doc))
	}
}

// GET /api/reports/:id/export/html
func ExportHTMLHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, doc, err := loadDocument(c)
		if err != nil {
			return err
		}

		fileName := HTMLFileName(doc, time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "text/html; charset=utf-8")
		c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		return c.SendString(RenderHTML(doc, resolveTheme(c.Query("theme"))))
	}
}

// GET /api/reports/:id/export/xlsx
func ExportXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, doc, err := loadDocument(c)
		if err != nil {
			return err
		}

		f, err := RenderXLSX(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "XLSX oluşturulamadı")
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "XLSX yazılamadı")
		}

		fileName := XLSXFileName(doc, time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		return c.Send(buf.Bytes())
	}
}

// POST /api/reports/preview
// Ham JSON metnini doğrular ve HTML önizlemesi döner. Geçersiz JSON'da yarım
// render denenmez; çözümleyici hatası olduğu gibi kullanıcıya iletilir.
func PreviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PreviewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		doc, err := Parse([]byte(body.JSONText))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(RenderHTML(doc, resolveTheme(body.Theme)))
	}
}

// GET /public/reports/:token
// Giriş gerektirmeyen rapor görüntüleme (paylaşım linki)
func PublicViewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")

		var rec models.Report
		if err := database.DB.First(&rec, "share_token = ?", token).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		doc, err := Parse([]byte(rec.Data))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlı rapor verisi çözümlenemedi")
		}

		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(RenderHTML(doc, resolveTheme(c.Query("theme"))))
	}
}

// resolveTheme: Sorgudan tema gelmezse Setting "theme" kaydına bakılır,
// o da yoksa koyu tema varsayılır.
func resolveTheme(q string) Theme {
	switch q {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	}

	var setting models.Setting
	if err := database.DB.First(&setting, "key = ?", "theme").Error; err == nil {
		if setting.Value == "light" {
			return ThemeLight
		}
	}
	return ThemeDark
}
