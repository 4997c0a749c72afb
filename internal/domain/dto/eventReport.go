package dto

import (
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

type EventReport struct {
	ID             string
	AuthorID       uint
	AuthorName     string
	Rating         int
	Summary        string
	AttachmentPath string
	CreatedAt      time.Time
}

type EventReports struct {
	Event   entity.Event
	Reports []EventReport
}

// SubmitReport carries a report submission from the controller to the
// event report service.
type SubmitReport struct {
	EventID    string
	AuthorID   uint
	IsAdmin    bool
	Rating     int
	Summary    string
	Attachment *Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
