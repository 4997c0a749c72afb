package entity

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FullName     string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"`
	IsBanned     bool   `gorm:"default:false"`
}
