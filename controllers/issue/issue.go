package issue

import (
	"errors"

	"civic-report/logger"
	"civic-report/middleware"
	categoryModel "civic-report/models/category"
	issueModel "civic-report/models/issue"
	userModel "civic-report/models/user"
	"civic-report/types"
	issueTypes "civic-report/types/issue"
	"civic-report/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller handles citizen issue reporting: filing, browsing, comments
// and reposts.
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewIssueController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{DB: db, Logger: asyncLogger}
}

// Create files a new issue for the authenticated citizen.
func (ic *Controller) Create(c *fiber.Ctx) error {
	var req issueTypes.CreateIssueRequest
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

	userID := middleware.UserID(c)

	var reporter userModel.User
	if err := ic.DB.First(&reporter, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		logger.Error("Failed to look up reporter", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create issue",
		})
	}

	var cat categoryModel.Category
	if err := ic.DB.First(&cat, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Category not found",
			})
		}
		logger.Error("Failed to look up category", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create issue",
		})
	}

	newIssue := issueModel.Issue{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Image:            req.Image,
		ImportanceRating: req.ImportanceRating,
		Status:           issueModel.StatusPending,
		CategoryID:       cat.ID,
		UserID:           reporter.ID,
	}

	if err := ic.DB.Create(&newIssue).Error; err != nil {
		logger.Error("Failed to create issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create issue",
		})
	}

	newIssue.Category = cat
	newIssue.User = reporter

	ic.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Issue created successfully",
		Data:    newIssue,
	})
}

// List returns issues, optionally filtered by status, category or reporter.
func (ic *Controller) List(c *fiber.Ctx) error {
	query := ic.DB.Model(&issueModel.Issue{}).
		Preload("Category").
		Preload("User")

	if status := c.QueryInt("status", -1); status >= 0 {
		query = query.Where("status = ?", status)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	sortBy := c.Query("sort_by", "created_at")
	switch sortBy {
	case "created_at", "importance_rating", "status":
	default:
		sortBy = "created_at"
	}
	order := "DESC"
	if c.Query("order") == "asc" {
		order = "ASC"
	}

	var issues []issueModel.Issue
	if err := query.Order(sortBy + " " + order).Find(&issues).Error; err != nil {
		logger.Error("Failed to list issues", err)
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

// GetByID returns one issue with its category and reporter.
func (ic *Controller) GetByID(c *fiber.Ctx) error {
	var found issueModel.Issue
	err := ic.DB.Preload("Category").Preload("User").
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

// CreateComment adds a comment on an issue for the authenticated citizen.
func (ic *Controller) CreateComment(c *fiber.Ctx) error {
	var req issueTypes.CreateCommentRequest
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

	issueID := c.Params("id")
	if err := ic.requireIssue(issueID); err != nil {
		return ic.issueLookupError(c, err)
	}

	comment := issueModel.Comment{
		ID:      uuid.NewString(),
		Body:    req.Body,
		IssueID: issueID,
		UserID:  middleware.UserID(c),
	}

	if err := ic.DB.Create(&comment).Error; err != nil {
		logger.Error("Failed to create comment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Comment created successfully",
		Data:    comment,
	})
}

// ListComments returns an issue's comments, oldest first.
func (ic *Controller) ListComments(c *fiber.Ctx) error {
	issueID := c.Params("id")
	if err := ic.requireIssue(issueID); err != nil {
		return ic.issueLookupError(c, err)
	}

	var comments []issueModel.Comment
	err := ic.DB.Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		logger.Error("Failed to list comments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve comments",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Comments retrieved successfully",
		Data: fiber.Map{
			"comments": comments,
			"count":    len(comments),
		},
	})
}

// Repost amplifies an issue for the authenticated citizen. Reposting the
// same issue twice is rejected.
func (ic *Controller) Repost(c *fiber.Ctx) error {
	issueID := c.Params("id")
	if err := ic.requireIssue(issueID); err != nil {
		return ic.issueLookupError(c, err)
	}

	userID := middleware.UserID(c)

	var existing issueModel.Repost
	err := ic.DB.Where("issue_id = ? AND user_id = ?", issueID, userID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Issue already reposted",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing repost", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to repost issue",
		})
	}

	repost := issueModel.Repost{
		ID:      uuid.NewString(),
		IssueID: issueID,
		UserID:  userID,
	}

	if err := ic.DB.Create(&repost).Error; err != nil {
		logger.Error("Failed to create repost", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to repost issue",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Issue reposted successfully",
		Data:    repost,
	})
}

func (ic *Controller) requireIssue(id string) error {
	var found issueModel.Issue
	return ic.DB.Select("id").First(&found, "id = ?", id).Error
}

func (ic *Controller) issueLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Issue not found",
		})
	}
	logger.Error("Failed to look up issue", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}
