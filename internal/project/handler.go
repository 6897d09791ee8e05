package project

import (
	"fmt"
	"strings"
	"time"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/database"
	"ajans-backend/internal/models"
	"ajans-backend/internal/rules"

	"github.com/gofiber/fiber/v2"
)

type CreateProjectRequest struct {
	ClientID    uint    `json:"client_id"`
	ContractID  *uint   `json:"contract_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
	ContractID  *uint   `json:"contract_id"`
}

type ProjectResponse struct {
	ID          uint    `json:"id"`
	ClientID    uint    `json:"client_id"`
	ClientName  string  `json:"client_name"`
	ContractID  *uint   `json:"contract_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	Overdue     bool    `json:"overdue"`
	CompletedAt *string `json:"completed_at"`
}

func toProjectResponse(p *models.Project, now time.Time) ProjectResponse {
	var dueDate *string
	if p.DueDate != nil {
		formatted := p.DueDate.Format("2006-01-02")
		dueDate = &formatted
	}
	var completedAt *string
	if p.CompletedAt != nil {
		formatted := p.CompletedAt.Format("2006-01-02")
		completedAt = &formatted
	}

	completed := p.Status == models.ProjectStatusCompleted || p.Status == models.ProjectStatusCancelled

	return ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		ClientName:  p.Client.Name,
		ContractID:  p.ContractID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		DueDate:     dueDate,
		Overdue:     rules.IsOverdue(p.DueDate, now, completed),
		CompletedAt: completedAt,
	}
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

func checkClientScope(c *fiber.Ctx, clientID uint) error {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}
	if role == models.RoleSuperAdmin {
		return nil
	}

	cVal := c.Locals(auth.CtxClientIDKey)
	cPtr, ok := cVal.(*uint)
	if !ok || cPtr == nil || *cPtr != clientID {
		return fiber.NewError(fiber.StatusForbidden, "Bu müşteriye erişim yetkiniz yok")
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}
	return &d, nil
}

// POST /api/projects
func CreateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.ClientID == 0 || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_id ve name zorunlu")
		}

		if err := checkClientScope(c, body.ClientID); err != nil {
			return err
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		// Sözleşme verildiyse aynı müşteriye ait olmalı
		if body.ContractID != nil {
			var ct models.Contract
			if err := database.DB.First(&ct, "id = ?", *body.ContractID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bulunamadı")
			}
			if ct.ClientID != body.ClientID {
				return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bu müşteriye ait değil")
			}
		}

		due, err := parseOptionalDate(body.DueDate)
		if err != nil {
			return err
		}

		p := models.Project{
			ClientID:    body.ClientID,
			ContractID:  body.ContractID,
			Name:        body.Name,
			Description: body.Description,
			Status:      models.ProjectStatusPending,
			DueDate:     due,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje oluşturulamadı")
		}
		p.Client = cl

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &p.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "project",
				EntityID:    p.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Proje eklendi: %s (%s)", p.Name, cl.Name),
				Before:      nil,
				After:       p,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toProjectResponse(&p, time.Now()))
	}
}

// GET /api/projects?client_id=1&status=active&overdue=true
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, _ := roleVal.(models.UserRole)

		dbq := database.DB.Model(&models.Project{}).Preload("Client")

		if role == models.RoleAccountManager {
			cVal := c.Locals(auth.CtxClientIDKey)
			cPtr, ok := cVal.(*uint)
			if !ok || cPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Müşteri bilgisi bulunamadı")
			}
			dbq = dbq.Where("client_id = ?", *cPtr)
		} else if cid := c.QueryInt("client_id"); cid > 0 {
			dbq = dbq.Where("client_id = ?", cid)
		}

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var projects []models.Project
		if err := dbq.Order("due_date asc NULLS LAST, id asc").Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		now := time.Now()
		onlyOverdue := c.Query("overdue") == "true"

		resp := make([]ProjectResponse, 0, len(projects))
		for _, p := range projects {
			item := toProjectResponse(&p, now)
			if onlyOverdue && !item.Overdue {
				continue
			}
			resp = append(resp, item)
		}
		return c.JSON(resp)
	}
}

// GET /api/projects/:id
func GetProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz proje ID")
		}

		var p models.Project
		if err := database.DB.Preload("Client").First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		if err := checkClientScope(c, p.ClientID); err != nil {
			return err
		}

		return c.JSON(toProjectResponse(&p, time.Now()))
	}
}

// PUT /api/projects/:id
func UpdateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz proje ID")
		}

		var p models.Project
		if err := database.DB.Preload("Client").First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		if err := checkClientScope(c, p.ClientID); err != nil {
			return err
		}

		before := p

		var body UpdateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			p.Name = name
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.ContractID != nil {
			if *body.ContractID == 0 {
				p.ContractID = nil
			} else {
				var ct models.Contract
				if err := database.DB.First(&ct, "id = ?", *body.ContractID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bulunamadı")
				}
				if ct.ClientID != p.ClientID {
					return fiber.NewError(fiber.StatusBadRequest, "Sözleşme bu müşteriye ait değil")
				}
				p.ContractID = body.ContractID
			}
		}
		if body.DueDate != nil {
			due, err := parseOptionalDate(body.DueDate)
			if err != nil {
				return err
			}
			p.DueDate = due
		}
		if body.Status != nil {
			switch models.ProjectStatus(*body.Status) {
			case models.ProjectStatusPending, models.ProjectStatusActive,
				models.ProjectStatusCompleted, models.ProjectStatusCancelled:
				newStatus := models.ProjectStatus(*body.Status)
				if newStatus == models.ProjectStatusCompleted && p.Status != models.ProjectStatusCompleted {
					now := time.Now()
					p.CompletedAt = &now
				}
				p.Status = newStatus
			default:
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz (pending|active|completed|cancelled)")
			}
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje güncellenemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &p.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "project",
				EntityID:    p.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Proje güncellendi: %s", p.Name),
				Before:      before,
				After:       p,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toProjectResponse(&p, time.Now()))
	}
}

// DELETE /api/projects/:id
func DeleteProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz proje ID")
		}

		var p models.Project
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		if err := checkClientScope(c, p.ClientID); err != nil {
			return err
		}

		var deliverableCount int64
		database.DB.Model(&models.Deliverable{}).Where("project_id = ?", p.ID).Count(&deliverableCount)
		if deliverableCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Projede teslimatlar var, önce onları silin")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje silinemedi")
		}

		userID, userName, err := getUserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				ClientID:    &p.ClientID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "project",
				EntityID:    p.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Proje silindi: %s", p.Name),
				Before:      p,
				After:       nil,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
