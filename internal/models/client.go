package models

import "time"

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

type Client struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:100;not null;unique"`
	ContactName string       `gorm:"size:100"`
	Email       string       `gorm:"size:100"`
	Phone       string       `gorm:"size:50"` // Opsiyonel telefon
	Sector      string       `gorm:"size:100"` // örn: "restoran", "güzellik", "e-ticaret"
	Instagram   string       `gorm:"size:100"` // Instagram kullanıcı adı
	Notes       string       `gorm:"size:500"`
	Status      ClientStatus `gorm:"size:20;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Contracts []Contract
	Projects  []Project
}
