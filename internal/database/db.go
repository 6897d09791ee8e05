package database

import (
	"log"

	"ajans-backend/internal/config"
	"ajans-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Contract migration: MaxRevisions kolonu ilk sürümden sonra eklendi.
	// Mevcut sözleşmelerde NULL kalmaması için AutoMigrate'ten ÖNCE backfill yap.
	if DB.Migrator().HasTable(&models.Contract{}) {
		if !DB.Migrator().HasColumn(&models.Contract{}, "max_revisions") {
			log.Println("Contract.max_revisions kolonu ekleniyor...")
			if err := DB.Exec("ALTER TABLE contracts ADD COLUMN max_revisions BIGINT").Error; err != nil {
				log.Printf("max_revisions kolonu eklenirken hata (zaten var olabilir): %v", err)
			}
		}
		var nullCount int64
		DB.Raw("SELECT COUNT(*) FROM contracts WHERE max_revisions IS NULL").Scan(&nullCount)
		if nullCount > 0 {
			DB.Exec("UPDATE contracts SET max_revisions = 2 WHERE max_revisions IS NULL")
			log.Printf("Mevcut %d sözleşme max_revisions=2 ile güncellendi", nullCount)
		}
	}

	err = DB.AutoMigrate(
		&models.Client{},
		&models.User{},
		&models.Contract{},
		&models.Project{},
		&models.Deliverable{},
		&models.Invoice{},
		&models.PriceItem{},
		&models.Report{},
		&models.Setting{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
