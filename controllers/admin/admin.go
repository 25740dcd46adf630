package admin

import (
	"errors"

	"civic-report/logger"
	issueModel "civic-report/models/issue"
	"civic-report/types"
	issueTypes "civic-report/types/issue"
	"civic-report/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles admin issue triage.
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewAdminController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{DB: db, Logger: asyncLogger}
}

// ListIssues returns all issues for triage, newest first, optionally
// filtered by status or category.
func (ac *Controller) ListIssues(c *fiber.Ctx) error {
	query := ac.DB.Model(&issueModel.Issue{}).
		Preload("Category").
		Preload("User")

	if status := c.QueryInt("status", -1); status >= 0 {
		query = query.Where("status = ?", status)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var issues []issueModel.Issue
	if err := query.Order("created_at DESC").Find(&issues).Error; err != nil {
		logger.Error("Failed to list issues for triage", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve issues",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issues retrieved successfully",
		Data: fiber.Map{
			"issues": issues,
			"count":  len(issues),
		},
	})
}

// GetIssueByID returns one issue for triage.
func (ac *Controller) GetIssueByID(c *fiber.Ctx) error {
	var found issueModel.Issue
	err := ac.DB.Preload("Category").Preload("User").
		First(&found, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Issue not found",
			})
		}
		logger.Error("Failed to retrieve issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve issue",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issue retrieved successfully",
		Data:    found,
	})
}

// UpdateIssueStatus moves an issue through triage.
func (ac *Controller) UpdateIssueStatus(c *fiber.Ctx) error {
	var req issueTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if msg := utils.ValidateStruct(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	var found issueModel.Issue
	if err := ac.DB.First(&found, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Issue not found",
			})
		}
		logger.Error("Failed to retrieve issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update issue status",
		})
	}

	if err := ac.DB.Model(&found).Update("status", *req.Status).Error; err != nil {
		logger.Error("Failed to update issue status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update issue status",
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issue status updated successfully",
		Data:    found,
	})
}
