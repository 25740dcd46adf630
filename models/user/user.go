package user

import (
	"time"
)

// Role values for User.Role.
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User is a registered citizen. Users are created by the registration flow
// elsewhere in the platform; the OTP login only ever reads this table.
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);not null;unique" json:"phone"`
	Role      string    `gorm:"type:varchar(20);not null;default:citizen" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
