package sms

import (
	"fmt"
	"time"

	"civic-report/config"
	"civic-report/logger"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Dispatcher delivers a one-time login code to a phone number.
type Dispatcher interface {
	SendOTP(phone, otp string, ttl time.Duration) error
}

// NewDispatcher picks the dispatcher for the current configuration: Twilio
// when credentials and a sending identity are present, otherwise a local
// fallback that only logs. Provider failures on the Twilio path propagate.
func NewDispatcher(cfg *config.Config) Dispatcher {
	if !cfg.TwilioConfigured() {
		logger.Warning("Twilio is not configured; OTP codes will be logged instead of sent")
		return &logDispatcher{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &twilioDispatcher{
		client:             client,
		messagingServiceID: cfg.TwilioMessagingServiceID,
		fromNumber:         cfg.TwilioPhoneNumber,
	}
}

// messageBody states the code and its validity window in human-readable form.
func messageBody(otp string, ttl time.Duration) string {
	minutes := int(ttl / time.Minute)
	return fmt.Sprintf("Your login code is %s. It expires in %d minutes.", otp, minutes)
}

type twilioDispatcher struct {
	client             *twilio.RestClient
	messagingServiceID string
	fromNumber         string
}

func (d *twilioDispatcher) SendOTP(phone, otp string, ttl time.Duration) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetBody(messageBody(otp, ttl))

	// A messaging service takes precedence over a single from-number.
	if d.messagingServiceID != "" {
		params.SetMessagingServiceSid(d.messagingServiceID)
	} else {
		params.SetFrom(d.fromNumber)
	}

	if _, err := d.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send OTP SMS via Twilio: %w", err)
	}
	return nil
}

// logDispatcher is the unconfigured-provider fallback. No external call is
// made; the code is surfaced in the logs for operator visibility.
type logDispatcher struct{}

func (d *logDispatcher) SendOTP(phone, otp string, ttl time.Duration) error {
	logger.Warning(fmt.Sprintf("Twilio credentials missing. OTP for %s: %s", phone, messageBody(otp, ttl)))
	return nil
}
