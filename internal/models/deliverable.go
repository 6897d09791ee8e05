package models

import "time"

type DeliverableType string

const (
	DeliverableTypeVideo  DeliverableType = "video"
	DeliverableTypePhoto  DeliverableType = "photo"
	DeliverableTypeDesign DeliverableType = "design"
)

type DeliverableStatus string

const (
	DeliverableStatusPending           DeliverableStatus = "PENDING"
	DeliverableStatusInProduction      DeliverableStatus = "IN_PRODUCTION"
	DeliverableStatusAwaitingReview    DeliverableStatus = "AWAITING_REVIEW"
	DeliverableStatusRevisionRequested DeliverableStatus = "REVISION_REQUESTED"
	DeliverableStatusApproved          DeliverableStatus = "APPROVED"
	DeliverableStatusDelivered         DeliverableStatus = "DELIVERED"
)

// Deliverable: Tek bir üretim çıktısı (video, fotoğraf seti, tasarım).
// Teslimat fatura ödemesine bağlıdır (rules.CanDeliver), revizyon sayısı
// sözleşmedeki MaxRevisions ile sınırlıdır.
type Deliverable struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"index;not null"`
	Project   Project

	Title string          `gorm:"size:150;not null"`
	Type  DeliverableType `gorm:"size:20;not null"`

	Status        DeliverableStatus `gorm:"size:30;not null;default:PENDING"`
	RevisionCount int               `gorm:"not null;default:0"`

	DueDate     *time.Time `gorm:"index"`
	CompletedAt *time.Time // DELIVERED olduğunda set edilir

	// Teslimatın bağlı olduğu fatura (ödeme kontrolü için)
	InvoiceID *uint `gorm:"index"`
	Invoice   *Invoice

	Notes string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
