package models

import (
	"time"

	"gorm.io/gorm"
)

// Operator represents clinic staff allowed to complete appointments, issue
// refunds and pull reports.
type Operator struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
