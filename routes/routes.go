package routes

import (
	"civic-report/config"
	adminController "civic-report/controllers/admin"
	authController "civic-report/controllers/auth"
	categoryController "civic-report/controllers/category"
	issueController "civic-report/controllers/issue"
	"civic-report/logger"
	"civic-report/middleware"
	authService "civic-report/services/auth"
	otpService "civic-report/services/otp"
	"civic-report/services/sms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	asyncLogger := logger.NewAsyncLogger(db)

	dispatcher := sms.NewDispatcher(cfg)
	otps := otpService.NewService(db, dispatcher, cfg.OTPTTL)
	auths := authService.NewService(db, otps, cfg.JWTSecret, cfg.JWTExpiresIn)
	authenticator := middleware.NewAuthenticator(cfg.JWTSecret)

	authCtrl := authController.NewAuthController(otps, auths, asyncLogger)
	issueCtrl := issueController.NewIssueController(db, asyncLogger)
	categoryCtrl := categoryController.NewCategoryController(db)
	adminCtrl := adminController.NewAdminController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	api := app.Group("/api/v1")

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Get("/categories", categoryCtrl.List)
	api.Get("/categories/:id", categoryCtrl.GetByID)

	/*=============================================================================
	| Citizen Routes
	===============================================================================*/
	user := api.Group("/user")
	user.Post("/auth/login/request-otp", authCtrl.RequestOTP)
	user.Post("/auth/login/verify-otp", authCtrl.VerifyOTP)

	user.Post("/issues", authenticator.RequireAuth(), issueCtrl.Create)
	user.Get("/issues", issueCtrl.List)
	user.Get("/issues/:id", issueCtrl.GetByID)

	user.Post("/issues/:id/comments", authenticator.RequireAuth(), issueCtrl.CreateComment)
	user.Get("/issues/:id/comments", issueCtrl.ListComments)
	user.Post("/issues/:id/repost", authenticator.RequireAuth(), issueCtrl.Repost)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	admin := api.Group("/admin")
	admin.Post("/auth/login", authCtrl.AdminLogin)

	admin.Get("/issues", authenticator.RequireAdmin(), adminCtrl.ListIssues)
	admin.Get("/issues/:id", authenticator.RequireAdmin(), adminCtrl.GetIssueByID)
	admin.Put("/issues/:id/status", authenticator.RequireAdmin(), adminCtrl.UpdateIssueStatus)
}
