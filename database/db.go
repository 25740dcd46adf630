package database

import (
	"fmt"

	"civic-report/config"
	"civic-report/logger"
	adminModel "civic-report/models/admin"
	categoryModel "civic-report/models/category"
	issueModel "civic-report/models/issue"
	logModel "civic-report/models/log"
	otpModel "civic-report/models/otp"
	userModel "civic-report/models/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the PostgreSQL connection and brings the schema up to date.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// Migrate runs auto migration for all models, in dependency order.
func Migrate(db *gorm.DB) error {
	// Stage 1: entities with no foreign keys
	stage1Models := []interface{}{
		&userModel.User{},
		&adminModel.Admin{},
		&categoryModel.Category{},
		&otpModel.PhoneOTP{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: entities referencing stage 1
	stage2Models := []interface{}{
		&issueModel.Issue{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: entities referencing issues, plus logging
	remainingModels := []interface{}{
		&issueModel.Comment{},
		&issueModel.Repost{},
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance. AutoMigrate
// already covers tag-declared indexes; these support the hot query paths.
func createIndexes(db *gorm.DB) error {
	// The verifier always fetches the newest unconsumed code for a phone.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_phone_otps_phone_consumed_created ON phone_otps(phone, consumed, created_at DESC)").Error; err != nil {
		return fmt.Errorf("failed to create phone_otps lookup index: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)").Error; err != nil {
		return fmt.Errorf("failed to create user phone index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_admins_email ON admins(email)").Error; err != nil {
		return fmt.Errorf("failed to create admin email index: %w", err)
	}

	// Issue listing filters and default ordering
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status)").Error; err != nil {
		return fmt.Errorf("failed to create issue status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_issues_category_id ON issues(category_id)").Error; err != nil {
		return fmt.Errorf("failed to create issue category_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_issues_created_at ON issues(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create issue created_at index: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
