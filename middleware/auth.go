package middleware

import (
	"fmt"
	"strings"

	"civic-report/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator validates bearer session tokens and gates routes by role.
// The secret is injected at route setup so tests can run with their own.
type Authenticator struct {
	JWTSecret string
}

func NewAuthenticator(jwtSecret string) *Authenticator {
	return &Authenticator{JWTSecret: jwtSecret}
}

// RequireAuth accepts any valid session token and stores its claims on the
// context under "user" for downstream handlers.
func (a *Authenticator) RequireAuth() fiber.Handler {
	return a.requireRole("")
}

// RequireAdmin accepts only tokens carrying the admin role.
func (a *Authenticator) RequireAdmin() fiber.Handler {
	return a.requireRole("admin")
}

func (a *Authenticator) requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.parseBearer(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if role != "" {
			tokenRole, _ := claims["role"].(string)
			if tokenRole != role {
				return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
					Message: "Insufficient permissions",
					Status:  fiber.StatusForbidden,
				})
			}
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

func (a *Authenticator) parseBearer(c *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization token required")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, fmt.Errorf("invalid authorization header format")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return claims, nil
}

// UserID extracts the authenticated subject from the context, or "" when the
// route is not behind RequireAuth.
func UserID(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
