package auth

import (
	"errors"

	"civic-report/logger"
	authService "civic-report/services/auth"
	otpService "civic-report/services/otp"
	"civic-report/types"
	authTypes "civic-report/types/auth"
	"civic-report/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller handles the phone OTP login flow and the admin login.
type Controller struct {
	OTPService  *otpService.Service
	AuthService *authService.Service
	Logger      *logger.AsyncLogger
}

func NewAuthController(otp *otpService.Service, auth *authService.Service, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		OTPService:  otp,
		AuthService: auth,
		Logger:      asyncLogger,
	}
}

// RequestOTP issues a login code for the submitted phone number.
func (ac *Controller) RequestOTP(c *fiber.Ctx) error {
	var req authTypes.RequestOTPRequest
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

	if _, err := ac.OTPService.Issue(req.Phone); err != nil {
		logger.Error("Failed to send OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Unable to send OTP right now.",
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent. It is valid for the next few minutes.",
	})
}

// VerifyOTP checks a submitted code and, on success, returns a session token
// together with minimal user info.
func (ac *Controller) VerifyOTP(c *fiber.Ctx) error {
	var req authTypes.VerifyOTPRequest
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

	token, user, err := ac.AuthService.LoginWithOTP(req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otpService.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "OTP not found. Request a new one.",
			})
		case errors.Is(err, otpService.ErrExpired):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "OTP expired. Request a new one.",
			})
		case errors.Is(err, otpService.ErrInvalidCode):
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid OTP.",
			})
		case errors.Is(err, authService.ErrUserNotRegistered):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found. Please register before logging in.",
			})
		default:
			logger.Error("Failed to verify OTP", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Unable to verify OTP right now.",
			})
		}
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful.",
		Token:   token,
		Data: authTypes.LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Phone: user.Phone,
			Role:  user.Role,
		},
	})
}

// AdminLogin authenticates a department admin by email and password.
func (ac *Controller) AdminLogin(c *fiber.Ctx) error {
	var req authTypes.AdminLoginRequest
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

	token, admin, err := ac.AuthService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid email or password.",
			})
		}
		logger.Error("Failed to log in admin", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Unable to log in right now.",
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful.",
		Token:   token,
		Data: fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}
