package category

import (
	"errors"

	"civic-report/logger"
	categoryModel "civic-report/models/category"
	issueModel "civic-report/models/issue"
	"civic-report/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller serves the public category endpoints.
type Controller struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// List returns all categories, alphabetically.
func (cc *Controller) List(c *fiber.Ctx) error {
	var categories []categoryModel.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve categories",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Categories retrieved successfully",
		Data: fiber.Map{
			"categories": categories,
			"count":      len(categories),
		},
	})
}

// GetByID returns one category together with its issue count.
func (cc *Controller) GetByID(c *fiber.Ctx) error {
	var cat categoryModel.Category
	if err := cc.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Category not found",
			})
		}
		logger.Error("Failed to retrieve category", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve category",
		})
	}

	var issueCount int64
	if err := cc.DB.Model(&issueModel.Issue{}).
		Where("category_id = ?", cat.ID).
		Count(&issueCount).Error; err != nil {
		logger.Error("Failed to count category issues", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve category",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category retrieved successfully",
		Data: fiber.Map{
			"category":    cat,
			"issue_count": issueCount,
		},
	})
}
