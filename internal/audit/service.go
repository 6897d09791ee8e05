package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"ajans-backend/internal/database"
	"ajans-backend/internal/models"
)

type LogOptions struct {
	ClientID    *uint
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		ClientID:    opts.ClientID,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u undo et
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	// Zaten undo edilmiş mi?
	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	// Undo işlemini gerçekleştir
	switch log.Action {
	case models.AuditActionCreate:
		// Create ise entity'yi sil
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("entity silinemedi: %w", err)
		}

	case models.AuditActionUpdate:
		// Update ise önceki haline geri döndür
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise entity'yi geri oluştur (create)
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	// Log'u işaretle
	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		ClientID:    log.ClientID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

// deleteEntity - Entity'yi sil
func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "client":
		return database.DB.Delete(&models.Client{}, "id = ?", entityID).Error
	case "contract":
		return database.DB.Delete(&models.Contract{}, "id = ?", entityID).Error
	case "project":
		return database.DB.Delete(&models.Project{}, "id = ?", entityID).Error
	case "deliverable":
		return database.DB.Delete(&models.Deliverable{}, "id = ?", entityID).Error
	case "invoice":
		return database.DB.Delete(&models.Invoice{}, "id = ?", entityID).Error
	case "price_item":
		return database.DB.Delete(&models.PriceItem{}, "id = ?", entityID).Error
	case "report":
		return database.DB.Delete(&models.Report{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// recreateEntity - Silinen entity'yi geri oluştur
func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "client":
		var client models.Client
		if err := json.Unmarshal([]byte(dataJSON), &client); err != nil {
			return err
		}
		client.ID = 0 // Yeni entity oluştur
		return database.DB.Create(&client).Error

	case "contract":
		var contract models.Contract
		if err := json.Unmarshal([]byte(dataJSON), &contract); err != nil {
			return err
		}
		contract.ID = 0
		return database.DB.Create(&contract).Error

	case "project":
		var project models.Project
		if err := json.Unmarshal([]byte(dataJSON), &project); err != nil {
			return err
		}
		project.ID = 0
		return database.DB.Create(&project).Error

	case "deliverable":
		var d models.Deliverable
		if err := json.Unmarshal([]byte(dataJSON), &d); err != nil {
			return err
		}
		d.ID = 0
		return database.DB.Create(&d).Error

	case "invoice":
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(dataJSON), &invoice); err != nil {
			return err
		}
		invoice.ID = 0
		return database.DB.Create(&invoice).Error

	case "price_item":
		var item models.PriceItem
		if err := json.Unmarshal([]byte(dataJSON), &item); err != nil {
			return err
		}
		item.ID = 0
		return database.DB.Create(&item).Error

	case "report":
		var report models.Report
		if err := json.Unmarshal([]byte(dataJSON), &report); err != nil {
			return err
		}
		report.ID = 0
		return database.DB.Create(&report).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// restoreEntity - Entity'yi geri yükle (update)
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "client":
		var client models.Client
		if err := json.Unmarshal([]byte(dataJSON), &client); err != nil {
			return err
		}
		return database.DB.Model(&models.Client{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":         client.Name,
			"contact_name": client.ContactName,
			"email":        client.Email,
			"phone":        client.Phone,
			"sector":       client.Sector,
			"instagram":    client.Instagram,
			"notes":        client.Notes,
			"status":       client.Status,
		}).Error

	case "contract":
		var contract models.Contract
		if err := json.Unmarshal([]byte(dataJSON), &contract); err != nil {
			return err
		}
		return database.DB.Model(&models.Contract{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"client_id":           contract.ClientID,
			"title":               contract.Title,
			"start_date":          contract.StartDate,
			"end_date":            contract.EndDate,
			"monthly_video_quota": contract.MonthlyVideoQuota,
			"monthly_post_quota":  contract.MonthlyPostQuota,
			"max_revisions":       contract.MaxRevisions,
			"monthly_fee":         contract.MonthlyFee,
			"currency":            contract.Currency,
			"status":              contract.Status,
		}).Error

	case "project":
		var project models.Project
		if err := json.Unmarshal([]byte(dataJSON), &project); err != nil {
			return err
		}
		return database.DB.Model(&models.Project{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"client_id":    project.ClientID,
			"contract_id":  project.ContractID,
			"name":         project.Name,
			"description":  project.Description,
			"status":       project.Status,
			"due_date":     project.DueDate,
			"completed_at": project.CompletedAt,
		}).Error

	case "deliverable":
		var d models.Deliverable
		if err := json.Unmarshal([]byte(dataJSON), &d); err != nil {
			return err
		}
		return database.DB.Model(&models.Deliverable{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"project_id":     d.ProjectID,
			"title":          d.Title,
			"type":           d.Type,
			"status":         d.Status,
			"revision_count": d.RevisionCount,
			"due_date":       d.DueDate,
			"completed_at":   d.CompletedAt,
			"invoice_id":     d.InvoiceID,
			"notes":          d.Notes,
		}).Error

	case "invoice":
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(dataJSON), &invoice); err != nil {
			return err
		}
		return database.DB.Model(&models.Invoice{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"client_id":   invoice.ClientID,
			"contract_id": invoice.ContractID,
			"number":      invoice.Number,
			"description": invoice.Description,
			"amount":      invoice.Amount,
			"currency":    invoice.Currency,
			"issue_date":  invoice.IssueDate,
			"due_date":    invoice.DueDate,
			"paid":        invoice.Paid,
			"paid_at":     invoice.PaidAt,
		}).Error

	case "price_item":
		var item models.PriceItem
		if err := json.Unmarshal([]byte(dataJSON), &item); err != nil {
			return err
		}
		return database.DB.Model(&models.PriceItem{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":       item.Name,
			"category":   item.Category,
			"unit":       item.Unit,
			"unit_price": item.UnitPrice,
			"currency":   item.Currency,
		}).Error

	case "report":
		var report models.Report
		if err := json.Unmarshal([]byte(dataJSON), &report); err != nil {
			return err
		}
		return database.DB.Model(&models.Report{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"client_id":    report.ClientID,
			"title":        report.Title,
			"period_label": report.PeriodLabel,
			"data":         report.Data,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}
