package utils

import (
	"encoding/json"
	"time"

	"civic-report/types"

	"github.com/gofiber/fiber/v2"
)

// Request body fields that must never reach the request log.
var redactedFields = []string{"otp", "password"}

// CreateSanitizedLogEntry builds a log entry from the current request with
// deep copies of all data, so the entry stays valid after Fiber recycles the
// context. Secret-bearing body fields (OTP codes, passwords) are redacted.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c.Body())
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

func sanitizeRequestBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Non-JSON bodies are stored as-is.
		return string(append([]byte(nil), body...))
	}

	for _, field := range redactedFields {
		if _, ok := parsed[field]; ok {
			parsed[field] = "[REDACTED]"
		}
	}

	sanitized, err := json.Marshal(parsed)
	if err != nil {
		return ""
	}
	return string(sanitized)
}
