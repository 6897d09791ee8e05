package models

import "time"

type Invoice struct {
	ID         uint  `gorm:"primaryKey"`
	ClientID   uint  `gorm:"index;not null"`
	Client     Client
	ContractID *uint `gorm:"index"`
	Contract   *Contract

	Number      string    `gorm:"size:50;not null;uniqueIndex"` // fatura numarası (örn: 2026-0042)
	Description string    `gorm:"size:255"`
	Amount      float64   `gorm:"not null"`
	Currency    string    `gorm:"size:10;not null;default:TRY"`
	IssueDate   time.Time `gorm:"index;not null"`
	DueDate     time.Time `gorm:"index;not null"`

	Paid   bool       `gorm:"not null;default:false"`
	PaidAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
