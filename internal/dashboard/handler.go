package dashboard

import (
	"time"

	"ajans-backend/internal/database"
	"ajans-backend/internal/models"
	"ajans-backend/internal/rules"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	ActiveClients        int64   `json:"active_clients"`
	ActiveContracts      int64   `json:"active_contracts"`
	ActiveProjects       int64   `json:"active_projects"`
	PendingDeliverables  int64   `json:"pending_deliverables"`
	OverdueDeliverables  int     `json:"overdue_deliverables"`
	AwaitingReview       int64   `json:"awaiting_review"`
	UnpaidInvoiceCount   int64   `json:"unpaid_invoice_count"`
	UnpaidInvoiceTotal   float64 `json:"unpaid_invoice_total"`
	OverdueInvoiceCount  int64   `json:"overdue_invoice_count"`
	MonthDeliveredCount  int64   `json:"month_delivered_count"`
	MonthPaidTotal       float64 `json:"month_paid_total"`
}

type RevenueChartPoint struct {
	Label string  `json:"label"` // ay başlangıcı
	Paid  float64 `json:"paid"`
	Count int64   `json:"count"`
}

type RevenueChartResponse struct {
	Period     string              `json:"period"` // monthly
	From       string              `json:"from"`
	To         string              `json:"to"`
	Points     []RevenueChartPoint `json:"points"`
	GrandTotal float64             `json:"grand_total"`
}

// GET /api/dashboard/summary (super_admin)
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp SummaryResponse

		database.DB.Model(&models.Client{}).
			Where("status = ?", models.ClientStatusActive).
			Count(&resp.ActiveClients)

		database.DB.Model(&models.Contract{}).
			Where("status = ?", models.ContractStatusActive).
			Count(&resp.ActiveContracts)

		database.DB.Model(&models.Project{}).
			Where("status IN ?", []models.ProjectStatus{
				models.ProjectStatusPending, models.ProjectStatusActive,
			}).
			Count(&resp.ActiveProjects)

		database.DB.Model(&models.Deliverable{}).
			Where("status NOT IN ?", []models.DeliverableStatus{
				models.DeliverableStatusDelivered,
			}).
			Count(&resp.PendingDeliverables)

		database.DB.Model(&models.Deliverable{}).
			Where("status = ?", models.DeliverableStatusAwaitingReview).
			Count(&resp.AwaitingReview)

		// Gecikmiş teslimatlar: teslim edilmemiş ve tarihi geçmiş
		now := time.Now()
		var open []models.Deliverable
		if err := database.DB.
			Where("status <> ? AND due_date IS NOT NULL", models.DeliverableStatusDelivered).
			Find(&open).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}
		for _, d := range open {
			if rules.IsOverdue(d.DueDate, now, false) {
				resp.OverdueDeliverables++
			}
		}

		database.DB.Model(&models.Invoice{}).
			Where("paid = ?", false).
			Count(&resp.UnpaidInvoiceCount)

		type sumRow struct {
			Total float64 `gorm:"column:total"`
		}
		var unpaid sumRow
		database.DB.Model(&models.Invoice{}).
			Select("COALESCE(SUM(amount),0) as total").
			Where("paid = ?", false).
			Scan(&unpaid)
		resp.UnpaidInvoiceTotal = unpaid.Total

		database.DB.Model(&models.Invoice{}).
			Where("paid = ? AND due_date < ?", false, now).
			Count(&resp.OverdueInvoiceCount)

		// Bu ay
		loc := now.Location()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		nextMonth := monthStart.AddDate(0, 1, 0)

		database.DB.Model(&models.Deliverable{}).
			Where("status = ? AND completed_at >= ? AND completed_at < ?",
				models.DeliverableStatusDelivered, monthStart, nextMonth).
			Count(&resp.MonthDeliveredCount)

		var monthPaid sumRow
		database.DB.Model(&models.Invoice{}).
			Select("COALESCE(SUM(amount),0) as total").
			Where("paid = ? AND paid_at >= ? AND paid_at < ?", true, monthStart, nextMonth).
			Scan(&monthPaid)
		resp.MonthPaidTotal = monthPaid.Total

		return c.JSON(resp)
	}
}

// GET /api/dashboard/revenue-chart?count=12 (super_admin)
// Ödeme tarihine göre aylık tahsilat serisi.
func RevenueChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := c.QueryInt("count", 12)
		if count <= 0 || count > 60 {
			return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		start := end.AddDate(0, -(count - 1), 0)
		rangeEnd := end.AddDate(0, 1, 0)

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Total  float64   `gorm:"column:total"`
			Count  int64     `gorm:"column:count"`
		}
		var rows []row

		sql := `
			SELECT date_trunc('month', paid_at)::date AS bucket,
				   SUM(amount) AS total,
				   COUNT(*) AS count
			FROM invoices
			WHERE paid = true AND paid_at >= ? AND paid_at < ?
			GROUP BY bucket
			ORDER BY bucket ASC;
		`

		if err := database.DB.Raw(sql, start, rangeEnd).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		totals := make(map[string]row)
		for _, r := range rows {
			totals[r.Bucket.Format("2006-01-02")] = r
		}

		// Boş aylar 0 ile doldurulur
		points := make([]RevenueChartPoint, 0, count)
		var grand float64
		for m := start; m.Before(rangeEnd); m = m.AddDate(0, 1, 0) {
			label := m.Format("2006-01-02")
			p := RevenueChartPoint{Label: label}
			if r, ok := totals[label]; ok {
				p.Paid = r.Total
				p.Count = r.Count
			}
			points = append(points, p)
			grand += p.Paid
		}

		return c.JSON(RevenueChartResponse{
			Period:     "monthly",
			From:       start.Format("2006-01-02"),
			To:         end.Format("2006-01-02"),
			Points:     points,
			GrandTotal: grand,
		})
	}
}
