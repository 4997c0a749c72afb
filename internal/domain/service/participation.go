package service

import (
	"context"
	"errors"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/validator"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
)

type participationEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetUpcomingForUser(ctx context.Context, userID uint, after time.Time, tag string) ([]dto.UserEvent, error)
}

type participationStorage interface {
	Create(ctx context.Context, participation *entity.EventParticipation) (*entity.EventParticipation, error)
	GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
	GetByEventID(ctx context.Context, eventID string) ([]dto.Participation, error)
	CountApproved(ctx context.Context, eventID string) (int64, error)
	SetStatus(ctx context.Context, id string, status entity.ParticipationStatus) (*entity.EventParticipation, error)
}

type reportInvalidator interface {
	Invalidate(ctx context.Context, clubID string)
}

type ParticipationService struct {
	logger *types.Logger

	eventStorage         participationEventStorage
	participationStorage participationStorage
	reports              reportInvalidator

	now func() time.Time
}

func NewParticipationService(
	logger *types.Logger,
	eventStorage participationEventStorage,
	participationStorage participationStorage,
	reports reportInvalidator,
) *ParticipationService {
	return &ParticipationService{
		logger:               logger,
		eventStorage:         eventStorage,
		participationStorage: participationStorage,
		reports:              reports,
		now:                  location.Now,
	}
}

// Enroll creates a pending participation of the user in the event.
func (s *ParticipationService) Enroll(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.RegistrationOpen(s.now()) {
		return nil, errorz.ErrRegistrationClosed
	}

	approved, err := s.participationStorage.CountApproved(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasCapacity(approved) {
		return nil, errorz.ErrEventFull
	}

	participation, err := s.participationStorage.Create(ctx, &entity.EventParticipation{
		EventID: event.ID,
		UserID:  userID,
		Status:  entity.ParticipationPending,
	})
	if err != nil {
		return nil, err
	}

	s.reports.Invalidate(ctx, event.ClubID)
	s.logger.Infof("(user: %d) enrolled in event %s", userID, eventID)
	return participation, nil
}

// SetStatus approves, rejects or resets a participation.
func (s *ParticipationService) SetStatus(ctx context.Context, id, status string) (*entity.EventParticipation, error) {
	if !validator.ParticipationStatus(status) {
		return nil, errorz.ErrInvalidStatus
	}

	participation, err := s.participationStorage.SetStatus(ctx, id, entity.ParticipationStatus(status))
	if err != nil {
		return nil, err
	}

	s.reports.Invalidate(ctx, participation.Event.ClubID)
	s.logger.Infof("(participation: %s) status set to %s", id, status)
	return participation, nil
}

// Get returns the participation of the user in the event, or nil if the
// user never enrolled.
func (s *ParticipationService) Get(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error) {
	participation, err := s.participationStorage.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, errorz.ErrParticipationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return participation, nil
}

func (s *ParticipationService) ListByEvent(ctx context.Context, eventID string) ([]dto.Participation, error) {
	return s.participationStorage.GetByEventID(ctx, eventID)
}

// ListUpcoming returns events that have not started yet, optionally filtered
// by tag, with the user's enrollment status.
func (s *ParticipationService) ListUpcoming(ctx context.Context, userID uint, tag string) ([]dto.UserEvent, error) {
	return s.eventStorage.GetUpcomingForUser(ctx, userID, s.now(), tag)
}
