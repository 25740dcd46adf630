package otp

import (
	"time"
)

// PhoneOTP represents one issued login code for a phone number. The plaintext
// code is never stored; only its sha256 digest. A record is created on every
// request, flipped to consumed exactly once, and never deleted here.
type PhoneOTP struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone     string    `gorm:"type:varchar(20);not null;index" json:"phone"`
	CodeHash  string    `gorm:"column:code_hash;type:varchar(64);not null" json:"-"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired checks if the code's validity window has passed.
func (o *PhoneOTP) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}

// IsActive checks if the code can still be submitted.
func (o *PhoneOTP) IsActive() bool {
	return !o.Consumed && !o.IsExpired()
}
