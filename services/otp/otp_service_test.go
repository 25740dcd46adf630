package otp

import (
	"strconv"
	"sync"
	"testing"
	"time"

	otpModel "civic-report/models/otp"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// fakeDispatcher records outgoing codes instead of sending them.
type fakeDispatcher struct {
	mu    sync.Mutex
	sent  []string
	phone string
	err   error
}

func (d *fakeDispatcher) SendOTP(phone, otp string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phone = phone
	d.sent = append(d.sent, otp)
	return d.err
}

func (d *fakeDispatcher) lastCode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sent) == 0 {
		return ""
	}
	return d.sent[len(d.sent)-1]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: would get its own database; pin
	// the pool to a single connection so all queries share one schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&otpModel.PhoneOTP{}))
	return db
}

func newTestService(t *testing.T, ttl time.Duration) (*Service, *fakeDispatcher) {
	t.Helper()
	dispatcher := &fakeDispatcher{}
	return NewService(setupTestDB(t), dispatcher, ttl), dispatcher
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestHashOTP(t *testing.T) {
	hash := HashOTP("123456")

	assert.Len(t, hash, 64)
	assert.NotEqual(t, "123456", hash)
	assert.NotContains(t, hash, "123456")
	assert.Equal(t, hash, HashOTP("123456"))
	assert.NotEqual(t, hash, HashOTP("123457"))
}

func TestIssueStoresHashNotPlaintext(t *testing.T) {
	svc, dispatcher := newTestService(t, 5*time.Minute)

	record, err := svc.Issue("+15551234567")
	require.NoError(t, err)
	require.NotNil(t, record)

	code := dispatcher.lastCode()
	require.Len(t, code, 6)
	assert.Equal(t, "+15551234567", dispatcher.phone)

	assert.NotEqual(t, code, record.CodeHash)
	assert.Equal(t, HashOTP(code), record.CodeHash)
	assert.False(t, record.Consumed)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), record.ExpiresAt, 2*time.Second)
}

func TestIssueInvalidatesPreviousCodes(t *testing.T) {
	svc, dispatcher := newTestService(t, 5*time.Minute)

	first, err := svc.Issue("+15551234567")
	require.NoError(t, err)
	firstCode := dispatcher.lastCode()

	second, err := svc.Issue("+15551234567")
	require.NoError(t, err)

	var reloaded otpModel.PhoneOTP
	require.NoError(t, svc.DB.First(&reloaded, first.ID).Error)
	assert.True(t, reloaded.Consumed, "older code should be invalidated")

	// The superseded code no longer verifies, even before its expiry.
	if firstCode != dispatcher.lastCode() {
		assert.ErrorIs(t, svc.Verify("+15551234567", firstCode), ErrInvalidCode)
	}

	active, err := svc.FindActive("+15551234567")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestIssueDispatchFailureKeepsRecord(t *testing.T) {
	svc, dispatcher := newTestService(t, 5*time.Minute)
	dispatcher.err = assert.AnError

	record, err := svc.Issue("+15551234567")
	require.Error(t, err)
	require.NotNil(t, record)

	var count int64
	require.NoError(t, svc.DB.Model(&otpModel.PhoneOTP{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerifyHappyPathConsumesOnce(t *testing.T) {
	svc, dispatcher := newTestService(t, 5*time.Minute)

	_, err := svc.Issue("+15551234567")
	require.NoError(t, err)
	code := dispatcher.lastCode()

	require.NoError(t, svc.Verify("+15551234567", code))

	// Replaying the same code must fail: the record was consumed.
	assert.ErrorIs(t, svc.Verify("+15551234567", code), ErrNotFound)
}

func TestVerifyWithoutIssuedCode(t *testing.T) {
	svc, _ := newTestService(t, 5*time.Minute)

	assert.ErrorIs(t, svc.Verify("+15550000000", "123456"), ErrNotFound)
}

func TestVerifyWrongCodeLeavesRecordActive(t *testing.T) {
	svc, dispatcher := newTestService(t, 5*time.Minute)

	_, err := svc.Issue("+15551234567")
	require.NoError(t, err)
	code := dispatcher.lastCode()

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	assert.ErrorIs(t, svc.Verify("+15551234567", wrong), ErrInvalidCode)

	// The correct code still works after a failed guess.
	assert.NoError(t, svc.Verify("+15551234567", code))
}

func TestVerifyExpiredCodeIsConsumed(t *testing.T) {
	svc, dispatcher := newTestService(t, -time.Minute)

	_, err := svc.Issue("+15551234567")
	require.NoError(t, err)
	code := dispatcher.lastCode()

	assert.ErrorIs(t, svc.Verify("+15551234567", code), ErrExpired)

	// Expiry consumes the record, so the next attempt finds nothing.
	assert.ErrorIs(t, svc.Verify("+15551234567", code), ErrNotFound)
}

func TestMarkConsumedExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t, 5*time.Minute)

	record, err := svc.Issue("+15551234567")
	require.NoError(t, err)

	const attempts = 8
	results := make(chan bool, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := svc.MarkConsumed(record.ID)
			assert.NoError(t, err)
			results <- won
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent consume may win")
}
