package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/calendar"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	qr "github.com/Badsnus/cu-clubs-web/pkg/qrcode"
)

type eventClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
}

type eventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetByClubID(ctx context.Context, clubID string) ([]entity.Event, error)
}

type EventService struct {
	logger *types.Logger

	clubStorage  eventClubStorage
	eventStorage eventStorage

	baseURL string
	qr      qr.Config
}

func NewEventService(logger *types.Logger, clubStorage eventClubStorage, eventStorage eventStorage, baseURL string, qrConfig qr.Config) *EventService {
	return &EventService{
		logger:       logger,
		clubStorage:  clubStorage,
		eventStorage: eventStorage,
		baseURL:      strings.TrimRight(baseURL, "/"),
		qr:           qrConfig,
	}
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventStorage.Get(ctx, id)
}

// Calendar returns the events of a club as an iCalendar feed.
func (s *EventService) Calendar(ctx context.Context, clubID string) ([]byte, error) {
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventStorage.GetByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("get events of club %s: %w", clubID, err)
	}

	return calendar.ExportEventsToICS(club.Name, events, location.Now())
}

// CheckInQR renders a QR code linking to the event page.
func (s *EventService) CheckInQR(ctx context.Context, eventID string) ([]byte, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	config := s.qr
	config.Content = event.Link(s.baseURL)
	return config.Generate()
}
