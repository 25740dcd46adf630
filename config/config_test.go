package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PHONE_LOGIN_OTP_TTL_MS", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "admin123", cfg.AdminDefaultPassword)
}

func TestLoadOTPTTL(t *testing.T) {
	t.Setenv("PHONE_LOGIN_OTP_TTL_MS", "300000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
}

func TestLoadRejectsBadOTPTTL(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0"} {
		t.Setenv("PHONE_LOGIN_OTP_TTL_MS", raw)

		_, err := Load()
		assert.Error(t, err, "value %q should be rejected", raw)
	}
}

func TestLoadJWTExpiresIn(t *testing.T) {
	t.Setenv("PHONE_LOGIN_OTP_TTL_MS", "")
	t.Setenv("JWT_EXPIRES_IN", "45m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.JWTExpiresIn)

	t.Setenv("JWT_EXPIRES_IN", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestTwilioConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"credentials only", Config{TwilioAccountSID: "AC", TwilioAuthToken: "tok"}, false},
		{"from number only", Config{TwilioPhoneNumber: "+1555"}, false},
		{
			"credentials and from number",
			Config{TwilioAccountSID: "AC", TwilioAuthToken: "tok", TwilioPhoneNumber: "+1555"},
			true,
		},
		{
			"credentials and messaging service",
			Config{TwilioAccountSID: "AC", TwilioAuthToken: "tok", TwilioMessagingServiceID: "MG"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.TwilioConfigured())
		})
	}
}
