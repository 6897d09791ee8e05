package rules

import (
	"time"

	"ajans-backend/internal/models"
)

// QuotaTier: Kota kullanım seviyesi (progress bar rengi için)
type QuotaTier string

const (
	QuotaTierOver  QuotaTier = "over"  // %100 üzeri (kırmızı)
	QuotaTierAt    QuotaTier = "at"    // tam %100 (yeşil)
	QuotaTierNear  QuotaTier = "near"  // %80 ve üzeri (turuncu)
	QuotaTierUnder QuotaTier = "under" // %80 altı (mavi)
)

// IsOverdue: Teslim tarihi geçmiş mi?
// Tarihi olmayan veya tamamlanmış işler asla gecikmiş sayılmaz.
func IsOverdue(dueDate *time.Time, now time.Time, completed bool) bool {
	if dueDate == nil || completed {
		return false
	}
	return dueDate.Before(now)
}

// RevisionsRemaining: Kalan revizyon hakkı (negatif dönmez)
func RevisionsRemaining(maxRevisions, currentCount int) int {
	remaining := maxRevisions - currentCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanRequestRevision: Revizyon ancak onay bekleyen ve revizyon hakkı kalmış
// teslimatlar için istenebilir.
func CanRequestRevision(status models.DeliverableStatus, revisionsRemaining int) bool {
	return status == models.DeliverableStatusAwaitingReview && revisionsRemaining > 0
}

// CanDeliver: Teslimat ödeme şartına bağlıdır. Fatura ödenmemişse onaylı
// bir iş bile teslim edilemez.
func CanDeliver(status models.DeliverableStatus, invoicePaid bool) bool {
	return status == models.DeliverableStatusApproved && invoicePaid
}

// QuotaUsagePercent: Kullanım yüzdesi. max <= 0 ise kullanım varsa %100'ün
// üzeri kabul edilir, yoksa 0.
func QuotaUsagePercent(current, max int) float64 {
	if max <= 0 {
		if current > 0 {
			return 101
		}
		return 0
	}
	return float64(current) / float64(max) * 100
}

// QuotaUsageTier: Dört seviyeli kota sınıflandırması.
// >100 over, =100 at, >=80 near, altı under.
func QuotaUsageTier(current, max int) QuotaTier {
	pct := QuotaUsagePercent(current, max)
	switch {
	case pct > 100:
		return QuotaTierOver
	case pct == 100:
		return QuotaTierAt
	case pct >= 80:
		return QuotaTierNear
	default:
		return QuotaTierUnder
	}
}
