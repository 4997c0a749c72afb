package entity

import "time"

// EventReport is feedback written after an event by one of its participants.
type EventReport struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	EventID        string `gorm:"not null;type:uuid;index"`
	AuthorID       uint   `gorm:"not null"`
	Rating         int    `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Summary        string `gorm:"not null"`
	AttachmentPath string

	Event  Event `gorm:"foreignKey:EventID"`
	Author User  `gorm:"foreignKey:AuthorID"`
}
