package models

import "time"

// Report: Müşteri performans raporu. Data kolonu rapor dokümanının kanonik
// JSON halini tutar (internal/report.Document); dışa aktarma bu bloba göre yapılır.
type Report struct {
	ID       uint  `gorm:"primaryKey"`
	ClientID *uint `gorm:"index"` // müşteriye bağlı olmayan taslaklar için nil
	Client   *Client

	Title       string `gorm:"size:150;not null"`
	PeriodLabel string `gorm:"size:50"` // örn: "Ocak 2026"

	// Rapor dokümanı (JSON)
	Data string `gorm:"type:jsonb;not null"`

	// Giriş gerektirmeyen görüntüleme linki için token
	ShareToken string `gorm:"size:36;uniqueIndex;not null"`

	CreatedBy uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
