package models

import "time"

// Setting: Basit anahtar-değer saklama alanı (tema tercihi, rapor taslağı).
// Tam değer değiştirme semantiği: son yazan kazanır, merge yok.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:50;uniqueIndex;not null"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
