package admin

import (
	"bytes"
	"context"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

type mockClubService struct {
	listFn func(ctx context.Context, offset, limit int) ([]entity.Club, error)
}

func (m *mockClubService) GetWithPagination(ctx context.Context, offset, limit int) ([]entity.Club, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, nil
}

type mockReportService struct {
	clubReportFn   func(ctx context.Context, clubID string, fresh bool) (*dto.ClubReport, error)
	eventReportsFn func(ctx context.Context, eventID string) (*dto.EventReports, error)
	exportFn       func(report *dto.ClubReport) (*bytes.Buffer, error)
	emailFn        func(ctx context.Context, clubID, to string) error
}

func (m *mockReportService) ClubReport(ctx context.Context, clubID string, fresh bool) (*dto.ClubReport, error) {
	if m.clubReportFn != nil {
		return m.clubReportFn(ctx, clubID, fresh)
	}
	return nil, nil
}

func (m *mockReportService) EventReports(ctx context.Context, eventID string) (*dto.EventReports, error) {
	if m.eventReportsFn != nil {
		return m.eventReportsFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockReportService) ExportXLSX(report *dto.ClubReport) (*bytes.Buffer, error) {
	if m.exportFn != nil {
		return m.exportFn(report)
	}
	return &bytes.Buffer{}, nil
}

func (m *mockReportService) EmailReport(ctx context.Context, clubID, to string) error {
	if m.emailFn != nil {
		return m.emailFn(ctx, clubID, to)
	}
	return nil
}

type mockParticipationService struct {
	setStatusFn   func(ctx context.Context, id, status string) (*entity.EventParticipation, error)
	listByEventFn func(ctx context.Context, eventID string) ([]dto.Participation, error)
}

func (m *mockParticipationService) SetStatus(ctx context.Context, id, status string) (*entity.EventParticipation, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (m *mockParticipationService) ListByEvent(ctx context.Context, eventID string) ([]dto.Participation, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, eventID)
	}
	return nil, nil
}
