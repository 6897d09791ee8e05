package rules

import (
	"testing"
	"time"

	"ajans-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, IsOverdue(&past, now, false))
	assert.False(t, IsOverdue(&future, now, false))
	assert.False(t, IsOverdue(&past, now, true), "tamamlanmış iş gecikmiş sayılmaz")
	assert.False(t, IsOverdue(nil, now, false), "tarihi olmayan iş gecikmiş sayılmaz")
	assert.False(t, IsOverdue(&now, now, false), "tam şu an olan tarih henüz geçmemiş")
}

func TestRevisionsRemaining(t *testing.T) {
	assert.Equal(t, 2, RevisionsRemaining(2, 0))
	assert.Equal(t, 0, RevisionsRemaining(2, 2))
	assert.Equal(t, 0, RevisionsRemaining(2, 5), "negatif dönmemeli")
}

func TestCanRequestRevision(t *testing.T) {
	assert.True(t, CanRequestRevision(models.DeliverableStatusAwaitingReview, 1))
	assert.False(t, CanRequestRevision(models.DeliverableStatusAwaitingReview, 0), "hak bittiyse istenemez")
	assert.False(t, CanRequestRevision(models.DeliverableStatusApproved, 1))
	assert.False(t, CanRequestRevision(models.DeliverableStatusPending, 2))
}

func TestCanDeliver(t *testing.T) {
	assert.True(t, CanDeliver(models.DeliverableStatusApproved, true))

	// Fatura ödenmediyse durum ne olursa olsun teslim edilemez
	assert.False(t, CanDeliver(models.DeliverableStatusApproved, false))
	assert.False(t, CanDeliver(models.DeliverableStatusAwaitingReview, false))
	assert.False(t, CanDeliver(models.DeliverableStatusDelivered, false))

	assert.False(t, CanDeliver(models.DeliverableStatusAwaitingReview, true))
}

func TestQuotaUsageTier(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		want    QuotaTier
	}{
		{"tam kota", 8, 8, QuotaTierAt},
		{"kota aşımı", 9, 8, QuotaTierOver},
		{"kotaya yakın (%87.5)", 7, 8, QuotaTierNear},
		{"kota altı", 3, 8, QuotaTierUnder},
		{"sıfır kullanım", 0, 8, QuotaTierUnder},
		{"tam %80 sınırı", 4, 5, QuotaTierNear},
		{"kotasız sözleşmede kullanım", 1, 0, QuotaTierOver},
		{"kotasız sözleşmede kullanım yok", 0, 0, QuotaTierUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuotaUsageTier(tt.current, tt.max))
		})
	}
}

func TestQuotaUsagePercent(t *testing.T) {
	assert.InDelta(t, 87.5, QuotaUsagePercent(7, 8), 0.001)
	assert.InDelta(t, 100, QuotaUsagePercent(8, 8), 0.001)
	assert.InDelta(t, 0, QuotaUsagePercent(0, 0), 0.001)
}
