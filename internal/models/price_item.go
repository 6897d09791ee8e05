package models

import "time"

// PriceItem: Fiyat listesi kalemi (teklif hazırlarken kullanılır)
type PriceItem struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:150;not null"`
	Category  string  `gorm:"size:100"` // örn: "video", "tasarım", "yönetim"
	Unit      string  `gorm:"size:50"`  // örn: "adet", "ay", "saat"
	UnitPrice float64 `gorm:"not null"`
	Currency  string  `gorm:"size:10;not null;default:TRY"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
