package issue

import (
	"time"

	"civic-report/models/category"
	"civic-report/models/user"
)

// Issue status values. Triage moves an issue forward from pending.
const (
	StatusPending    = 0
	StatusInProgress = 1
	StatusResolved   = 2
	StatusRejected   = 3
)

// ValidStatus reports whether s is a known triage status.
func ValidStatus(s int) bool {
	return s >= StatusPending && s <= StatusRejected
}

// Issue is a civic problem reported by a citizen against a category.
type Issue struct {
	ID               string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title            string  `gorm:"type:varchar(255);not null" json:"title"`
	Description      string  `gorm:"type:text;not null" json:"description"`
	Image            *string `gorm:"type:varchar(2048)" json:"image,omitempty"`
	ImportanceRating int     `gorm:"default:0" json:"importance_rating"`
	Status           int     `gorm:"default:0;index" json:"status"`

	CategoryID string            `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category   category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	UserID string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Comment is a citizen remark on an issue.
type Comment struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Body    string `gorm:"type:text;not null" json:"body"`
	IssueID string `gorm:"type:varchar(36);not null;index" json:"issue_id"`
	Issue   Issue  `gorm:"foreignKey:IssueID" json:"-"`

	UserID string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Repost amplifies an issue. A user can repost a given issue once.
type Repost struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	IssueID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_reposts_issue_user" json:"issue_id"`
	Issue   Issue  `gorm:"foreignKey:IssueID" json:"-"`

	UserID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reposts_issue_user" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
