package user

import (
	"context"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

type mockEventService struct {
	getFn      func(ctx context.Context, id string) (*entity.Event, error)
	calendarFn func(ctx context.Context, clubID string) ([]byte, error)
	qrFn       func(ctx context.Context, eventID string) ([]byte, error)
}

func (m *mockEventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockEventService) Calendar(ctx context.Context, clubID string) ([]byte, error) {
	if m.calendarFn != nil {
		return m.calendarFn(ctx, clubID)
	}
	return nil, nil
}

func (m *mockEventService) CheckInQR(ctx context.Context, eventID string) ([]byte, error) {
	if m.qrFn != nil {
		return m.qrFn(ctx, eventID)
	}
	return nil, nil
}

type mockParticipationService struct {
	enrollFn       func(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
	getFn          func(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
	listByEventFn  func(ctx context.Context, eventID string) ([]dto.Participation, error)
	listUpcomingFn func(ctx context.Context, userID uint, tag string) ([]dto.UserEvent, error)
}

func (m *mockParticipationService) Enroll(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error) {
	if m.enrollFn != nil {
		return m.enrollFn(ctx, eventID, userID)
	}
	return &entity.EventParticipation{}, nil
}

func (m *mockParticipationService) Get(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, eventID, userID)
	}
	return nil, nil
}

func (m *mockParticipationService) ListByEvent(ctx context.Context, eventID string) ([]dto.Participation, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockParticipationService) ListUpcoming(ctx context.Context, userID uint, tag string) ([]dto.UserEvent, error) {
	if m.listUpcomingFn != nil {
		return m.listUpcomingFn(ctx, userID, tag)
	}
	return nil, nil
}

type mockEventReportService struct {
	submitFn func(ctx context.Context, req dto.SubmitReport) (*entity.EventReport, error)
}

func (m *mockEventReportService) Submit(ctx context.Context, req dto.SubmitReport) (*entity.EventReport, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, req)
	}
	return &entity.EventReport{}, nil
}
