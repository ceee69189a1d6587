package models

import "gorm.io/gorm"

// User represents a platform account (student or admin)
type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	IsDeleted bool   `gorm:"default:false"`
}
