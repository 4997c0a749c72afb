package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/validator"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
)

type eventReportEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type eventReportParticipationStorage interface {
	GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
}

type eventReportStorage interface {
	Create(ctx context.Context, report *entity.EventReport) (*entity.EventReport, error)
}

type attachmentStore interface {
	Save(ext string, data []byte) (string, error)
	Remove(name string) error
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type EventReportService struct {
	logger *types.Logger

	eventStorage         eventReportEventStorage
	participationStorage eventReportParticipationStorage
	reportStorage        eventReportStorage
	attachments          attachmentStore
	reports              reportInvalidator

	maxAttachmentSize int64
	now               func() time.Time
}

func NewEventReportService(
	logger *types.Logger,
	eventStorage eventReportEventStorage,
	participationStorage eventReportParticipationStorage,
	reportStorage eventReportStorage,
	attachments attachmentStore,
	reports reportInvalidator,
	maxAttachmentSize int64,
) *EventReportService {
	return &EventReportService{
		logger:               logger,
		eventStorage:         eventStorage,
		participationStorage: participationStorage,
		reportStorage:        reportStorage,
		attachments:          attachments,
		reports:              reports,
		maxAttachmentSize:    maxAttachmentSize,
		now:                  location.Now,
	}
}

// Submit stores a report about an event. Only approved participants and
// admins may report, and only once the event has started.
func (s *EventReportService) Submit(ctx context.Context, req dto.SubmitReport) (*entity.EventReport, error) {
	if !validator.ReportRating(req.Rating) {
		return nil, errorz.ErrInvalidRating
	}
	if !validator.ReportSummary(req.Summary) {
		return nil, errorz.ErrInvalidSummary
	}

	var ext string
	if req.Attachment != nil {
		if s.maxAttachmentSize > 0 && req.Attachment.Size > s.maxAttachmentSize {
			return nil, errorz.ErrAttachmentTooBig
		}
		if !validator.ImageContentType(req.Attachment.ContentType) {
			return nil, errorz.ErrInvalidAttachment
		}
		ext = imageExtensions[strings.ToLower(strings.TrimSpace(strings.Split(req.Attachment.ContentType, ";")[0]))]
	}

	event, err := s.eventStorage.Get(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOver(s.now(), 0) {
		return nil, errorz.ErrEventNotStarted
	}

	if !req.IsAdmin {
		participation, err := s.participationStorage.GetByEventAndUser(ctx, req.EventID, req.AuthorID)
		if err != nil {
			if errors.Is(err, errorz.ErrParticipationNotFound) {
				return nil, errorz.ErrForbidden
			}
			return nil, err
		}
		if participation.Status != entity.ParticipationApproved {
			return nil, errorz.ErrForbidden
		}
	}

	report := &entity.EventReport{
		EventID:  event.ID,
		AuthorID: req.AuthorID,
		Rating:   req.Rating,
		Summary:  req.Summary,
	}

	if req.Attachment != nil {
		report.AttachmentPath, err = s.attachments.Save(ext, req.Attachment.Data)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.reportStorage.Create(ctx, report)
	if err != nil {
		if report.AttachmentPath != "" {
			if rmErr := s.attachments.Remove(report.AttachmentPath); rmErr != nil {
				s.logger.Warnf("failed to remove orphan attachment %s: %v", report.AttachmentPath, rmErr)
			}
		}
		return nil, err
	}

	s.reports.Invalidate(ctx, event.ClubID)
	s.logger.Infof("(user: %d) reported on event %s", req.AuthorID, event.ID)
	return created, nil
}
