package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID         uint  `gorm:"primaryKey"`
	ClientID   uint  `gorm:"index;not null"`
	Client     Client
	ContractID *uint `gorm:"index"` // retainer dışı tekil işlerde nil
	Contract   *Contract

	Name        string        `gorm:"size:150;not null"`
	Description string        `gorm:"size:500"`
	Status      ProjectStatus `gorm:"size:20;not null;default:pending"`
	DueDate     *time.Time    `gorm:"index"`
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Deliverables []Deliverable
}
