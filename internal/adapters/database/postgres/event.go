package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(event).Error
	return event, err
}

// Get is a function that gets an event from the database by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, errorz.ErrEventNotFound
	}

	var event entity.Event
	err := s.db.WithContext(ctx).Preload("Club").Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrEventNotFound
	}
	return &event, err
}

// GetByClubID returns all events of a club ordered by start time.
func (s *EventStorage) GetByClubID(ctx context.Context, clubID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Order("start_time").Find(&events).Error
	return events, err
}

// GetStatsByClubID returns the events of a club with their participation and
// report counters. participant_count only counts approved participations,
// enrollment_count counts every participation regardless of status.
func (s *EventStorage) GetStatsByClubID(ctx context.Context, clubID string) ([]dto.EventStats, error) {
	var result []dto.EventStats
	err := s.db.WithContext(ctx).
		Table("events").
		Select(`events.id, events.name, events.location, events.start_time, events.end_time, events.max_participants,
			COUNT(DISTINCT event_participations.id) FILTER (WHERE event_participations.status = ?) AS participant_count,
			COUNT(DISTINCT event_participations.id) AS enrollment_count,
			COUNT(DISTINCT event_reports.id) AS report_count,
			COALESCE((SELECT AVG(r.rating) FROM event_reports r WHERE r.event_id = events.id), 0) AS average_rating`,
			string(entity.ParticipationApproved)).
		Joins("LEFT JOIN event_participations ON event_participations.event_id = events.id").
		Joins("LEFT JOIN event_reports ON event_reports.event_id = events.id").
		Where("events.club_id = ? AND events.deleted_at IS NULL", clubID).
		Group("events.id").
		Order("events.start_time DESC").
		Scan(&result).Error
	return result, err
}

// GetUpcomingForUser returns events starting after the given time together
// with the participation status of the user. An empty tag disables the tag
// filter.
func (s *EventStorage) GetUpcomingForUser(ctx context.Context, userID uint, after time.Time, tag string) ([]dto.UserEvent, error) {
	var result []dto.UserEvent
	query := s.db.WithContext(ctx).
		Table("events").
		Select("events.*, clubs.name AS club_name, COALESCE(event_participations.status, '') AS status").
		Joins("JOIN clubs ON clubs.id = events.club_id AND clubs.deleted_at IS NULL").
		Joins("LEFT JOIN event_participations ON event_participations.event_id = events.id AND event_participations.user_id = ?", userID).
		Where("events.deleted_at IS NULL AND events.start_time > ?", after)
	if tag != "" {
		query = query.Where("? = ANY(events.tags)", tag)
	}
	err := query.Order("events.start_time").Scan(&result).Error
	return result, err
}
