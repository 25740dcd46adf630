package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	otpModel "civic-report/models/otp"
	"civic-report/services/sms"

	"gorm.io/gorm"
)

// Service handles issuing and verifying phone login codes.
type Service struct {
	DB         *gorm.DB
	Dispatcher sms.Dispatcher
	TTL        time.Duration
}

// NewService creates an OTP service. The dispatcher is injected so tests can
// substitute a recording fake.
func NewService(db *gorm.DB, dispatcher sms.Dispatcher, ttl time.Duration) *Service {
	return &Service{
		DB:         db,
		Dispatcher: dispatcher,
		TTL:        ttl,
	}
}

// GenerateOTP generates a uniformly random 6-digit code, 100000-999999.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// HashOTP returns the sha256 hex digest of a code. Codes are only ever
// stored and compared in this form.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Issue creates a fresh code for the phone and dispatches it. Any older
// unconsumed codes for the phone are invalidated first, so only the latest
// issued code is ever valid. The record is persisted before dispatch; a
// dispatch failure propagates with the record already stored.
func (s *Service) Issue(phone string) (*otpModel.PhoneOTP, error) {
	code, err := GenerateOTP()
	if err != nil {
		return nil, err
	}

	record := &otpModel.PhoneOTP{
		Phone:     phone,
		CodeHash:  HashOTP(code),
		Consumed:  false,
		ExpiresAt: time.Now().Add(s.TTL),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&otpModel.PhoneOTP{}).
			Where("phone = ? AND consumed = ?", phone, false).
			Update("consumed", true).Error; err != nil {
			return fmt.Errorf("failed to invalidate previous OTPs: %w", err)
		}

		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create OTP record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Dispatcher.SendOTP(phone, code, s.TTL); err != nil {
		return record, err
	}

	return record, nil
}

// FindActive returns the most recently issued unconsumed record for the
// phone, or nil when none exists. Expiry is not checked here; the verifier
// handles it so the dead record gets consumed.
func (s *Service) FindActive(phone string) (*otpModel.PhoneOTP, error) {
	var record otpModel.PhoneOTP

	err := s.DB.Where("phone = ? AND consumed = ?", phone, false).
		Order("created_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find OTP record: %w", err)
	}

	return &record, nil
}

// MarkConsumed flips consumed false -> true and reports whether this call
// performed the flip. The conditional update is what guarantees that two
// racing verifications cannot both succeed.
func (s *Service) MarkConsumed(id uint) (bool, error) {
	res := s.DB.Model(&otpModel.PhoneOTP{}).
		Where("id = ? AND consumed = ?", id, false).
		Update("consumed", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark OTP consumed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Verify checks a submitted code for the phone. Outcomes, in precedence
// order: ErrNotFound, ErrExpired (consumes the record), ErrInvalidCode
// (leaves it active), nil on success (consumes the record exactly once).
func (s *Service) Verify(phone, code string) error {
	record, err := s.FindActive(phone)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}

	if record.IsExpired() {
		if _, err := s.MarkConsumed(record.ID); err != nil {
			return err
		}
		return ErrExpired
	}

	if HashOTP(code) != record.CodeHash {
		return ErrInvalidCode
	}

	won, err := s.MarkConsumed(record.ID)
	if err != nil {
		return err
	}
	if !won {
		// A concurrent verification consumed the record first.
		return ErrNotFound
	}

	return nil
}
