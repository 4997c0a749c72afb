package dto

import (
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

// UserEvent is an event as seen by a particular user.
type UserEvent struct {
	entity.Event
	ClubName string
	Status   entity.ParticipationStatus
}

func (e UserEvent) IsEnrolled() bool {
	return e.Status != ""
}

// Participation is an enrollment row shown to admins on the event page.
type Participation struct {
	ID       string
	UserID   uint
	FullName string
	Email    string
	Status   entity.ParticipationStatus
}
