package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Event struct {
	ID              string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	ClubID          string         `gorm:"not null;type:uuid;index"`
	Club            Club
	Name            string    `gorm:"not null"`
	Description     string    `gorm:"not null"`
	Location        string    `gorm:"not null"`
	StartTime       time.Time `gorm:"not null"`
	EndTime         time.Time
	RegistrationEnd time.Time `gorm:"not null"`
	MaxParticipants int
	Tags            pq.StringArray `gorm:"type:text[]"`
}

// IsOver reports whether the event has started before now minus additionalTime.
func (e *Event) IsOver(now time.Time, additionalTime time.Duration) bool {
	return e.StartTime.Before(now.Add(-additionalTime))
}

// RegistrationOpen reports whether users can still enroll at the given time.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return now.Before(e.RegistrationEnd)
}

// HasCapacity reports whether another participant can be approved.
// MaxParticipants of zero means the event is unlimited.
func (e *Event) HasCapacity(approved int64) bool {
	return e.MaxParticipants <= 0 || approved < int64(e.MaxParticipants)
}

// Link builds the public page address of the event.
func (e *Event) Link(baseURL string) string {
	return fmt.Sprintf("%s/events/%s", strings.TrimRight(baseURL, "/"), e.ID)
}
