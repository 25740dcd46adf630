package utils

import (
	"testing"

	authTypes "civic-report/types/auth"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		msg := ValidateStruct(authTypes.VerifyOTPRequest{
			Phone: "+15551234567",
			OTP:   "123456",
		})
		assert.Empty(t, msg)
	})

	t.Run("missing phone", func(t *testing.T) {
		msg := ValidateStruct(authTypes.RequestOTPRequest{})
		assert.Equal(t, "phone is required", msg)
	})

	t.Run("short otp", func(t *testing.T) {
		msg := ValidateStruct(authTypes.VerifyOTPRequest{
			Phone: "+15551234567",
			OTP:   "123",
		})
		assert.Equal(t, "otp must be exactly 6 characters", msg)
	})

	t.Run("non-numeric otp", func(t *testing.T) {
		msg := ValidateStruct(authTypes.VerifyOTPRequest{
			Phone: "+15551234567",
			OTP:   "12345a",
		})
		assert.Equal(t, "otp must be numeric", msg)
	})

	t.Run("bad email", func(t *testing.T) {
		msg := ValidateStruct(authTypes.AdminLoginRequest{
			Email:    "not-an-email",
			Password: "x",
		})
		assert.Equal(t, "email must be a valid email address", msg)
	})
}

func TestSanitizeRequestBody(t *testing.T) {
	t.Run("redacts secret fields", func(t *testing.T) {
		out := sanitizeRequestBody([]byte(`{"phone":"+15551234567","otp":"123456"}`))
		assert.Contains(t, out, `"otp":"[REDACTED]"`)
		assert.NotContains(t, out, "123456")
		assert.Contains(t, out, "+15551234567")
	})

	t.Run("redacts password", func(t *testing.T) {
		out := sanitizeRequestBody([]byte(`{"email":"a@b.com","password":"s3cret"}`))
		assert.NotContains(t, out, "s3cret")
	})

	t.Run("keeps non-json bodies", func(t *testing.T) {
		out := sanitizeRequestBody([]byte("plain text"))
		assert.Equal(t, "plain text", out)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Empty(t, sanitizeRequestBody(nil))
	})
}
