package dto

import (
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

// ClubMember is one user of a club with every role they hold there.
type ClubMember struct {
	UserID   uint
	FullName string
	Email    string
	Roles    string
	JoinedAt time.Time
}

// ExecutiveMember is a member holding at least one executive role.
type ExecutiveMember struct {
	UserID   uint
	FullName string
	Email    string
	Roles    string
}

// EventStats is an event of a club with its aggregate counters as computed
// by the database.
type EventStats struct {
	ID               string
	Name             string
	Location         string
	StartTime        time.Time
	EndTime          time.Time
	MaxParticipants  int
	ParticipantCount int64
	EnrollmentCount  int64
	ReportCount      int64
	AverageRating    float64
}

type ClubReport struct {
	Club              entity.Club
	Members           []ClubMember
	Executive         []ExecutiveMember
	Events            []EventStats
	TotalParticipants int64
	TotalEnrollments  int64
	GeneratedAt       time.Time
}

func NewClubReport(club entity.Club, members []ClubMember, executive []ExecutiveMember, events []EventStats, generatedAt time.Time) ClubReport {
	report := ClubReport{
		Club:        club,
		Members:     members,
		Executive:   executive,
		Events:      events,
		GeneratedAt: generatedAt,
	}
	for _, event := range events {
		report.TotalParticipants += event.ParticipantCount
		report.TotalEnrollments += event.EnrollmentCount
	}
	return report
}
