package course

import (
	"time"

	"gorm.io/gorm"
)

// Session represents a time-boxed collection of courses users enroll in
type Session struct {
	gorm.Model
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	IsDeleted   bool       `gorm:"default:false"`
}

// Enrollment tracks a user's enrollment in a session
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_enrollments_user_session;not null"`
	SessionID  uint      `json:"session_id" gorm:"uniqueIndex:idx_enrollments_user_session;not null"`
	Status     string    `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, WITHDRAWN
	EnrolledAt time.Time `json:"enrolled_at"`
	IsDeleted  bool      `gorm:"default:false"`
}
