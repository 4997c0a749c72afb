package entity

import "time"

type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "pending"
	ParticipationApproved ParticipationStatus = "approved"
	ParticipationRejected ParticipationStatus = "rejected"
)

// EventParticipation is a user's enrollment in an event together with its
// approval status.
type EventParticipation struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	EventID   string              `gorm:"not null;type:uuid;uniqueIndex:idx_event_participation"`
	UserID    uint                `gorm:"not null;uniqueIndex:idx_event_participation"`
	Status    ParticipationStatus `gorm:"not null;default:'pending';index"`

	Event Event `gorm:"foreignKey:EventID"`
	User  User  `gorm:"foreignKey:UserID"`
}
