package models

import "time"

type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "active"
	ContractStatusPaused   ContractStatus = "paused"
	ContractStatusEnded    ContractStatus = "ended"
)

// Contract: Aylık retainer sözleşmesi (kota ve revizyon limitleri burada)
type Contract struct {
	ID       uint `gorm:"primaryKey"`
	ClientID uint `gorm:"index;not null"`
	Client   Client

	Title     string    `gorm:"size:150;not null"`
	StartDate time.Time `gorm:"index;not null"`
	EndDate   *time.Time // nil ise süresiz

	// Aylık kotalar
	MonthlyVideoQuota int `gorm:"not null;default:0"` // aylık video sayısı
	MonthlyPostQuota  int `gorm:"not null;default:0"` // aylık tasarım/post sayısı

	// Teslimat başına maksimum revizyon hakkı
	MaxRevisions int `gorm:"not null;default:2"`

	MonthlyFee float64        `gorm:"not null;default:0"` // aylık ücret
	Currency   string         `gorm:"size:10;not null;default:TRY"`
	Status     ContractStatus `gorm:"size:20;not null;default:active"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
