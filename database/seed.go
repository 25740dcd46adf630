package database

import (
	"fmt"
	"strings"

	"civic-report/logger"
	adminModel "civic-report/models/admin"
	categoryModel "civic-report/models/category"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedCategory struct {
	Name        string
	Description string
}

// Base categories every deployment starts with.
var baseCategories = []seedCategory{
	{
		Name:        "Water",
		Description: "Water supply, leaks, water quality issues, and related problems",
	},
	{
		Name:        "Road",
		Description: "Road conditions, potholes, street lights, traffic issues, and infrastructure problems",
	},
	{
		Name:        "Waste",
		Description: "Garbage collection, waste management, sanitation, and cleanliness issues",
	},
}

// Department categories, each of which also gets a triage admin account.
var departments = []string{
	"GHMC Engineering Wing / Roads & Buildings (R&B) Dept.",
	"Hyderabad City Police / Local Police Stations",
	"GHMC - Health & Sanitation Dept.",
	"GHMC - Solid Waste Management (SWM) Dept.",
	"GHMC - Disaster Response Force (DRF)",
	"HMWSSB - Hyderabad Metropolitan Water Supply & Sewerage Board",
	"GHMC - Town Planning Dept.",
	"GHMC - Veterinary Dept. (Animal Care / ABC Wing)",
	"GHMC Electrical Maintenance Dept.",
	"GHMC - Urban Biodiversity / Horticulture Dept.",
	"Hyderabad Traffic Police (H-TP)",
}

// Seed populates categories, department categories and department admin
// accounts. Safe to run on every startup: existing rows are left untouched.
func Seed(db *gorm.DB, defaultAdminPassword string) error {
	categories := make([]categoryModel.Category, 0, len(baseCategories)+len(departments))
	for _, c := range baseCategories {
		categories = append(categories, categoryModel.Category{
			ID:          uuid.NewString(),
			Name:        c.Name,
			Description: c.Description,
		})
	}
	for _, name := range departments {
		categories = append(categories, categoryModel.Category{
			ID:   uuid.NewString(),
			Name: name,
		})
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admins := make([]adminModel.Admin, 0, len(departments))
	for _, name := range departments {
		admins = append(admins, adminModel.Admin{
			ID:       uuid.NewString(),
			Email:    departmentEmail(name),
			Password: string(hash),
		})
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admins).Error; err != nil {
		return fmt.Errorf("failed to seed admin accounts: %w", err)
	}

	logger.Success("Seeding complete")
	return nil
}

func departmentEmail(department string) string {
	return strings.ToLower(strings.ReplaceAll(department, " ", "")) + "@gmail.com"
}
