package entity

import (
	"time"

	"gorm.io/gorm"
)

type Club struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Name        string         `gorm:"not null;unique"`
	Description string
}
