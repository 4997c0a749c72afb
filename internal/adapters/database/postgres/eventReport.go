package postgres

import (
	"context"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"gorm.io/gorm"
)

type EventReportStorage struct {
	db *gorm.DB
}

func NewEventReportStorage(db *gorm.DB) *EventReportStorage {
	return &EventReportStorage{
		db: db,
	}
}

func (s *EventReportStorage) Create(ctx context.Context, report *entity.EventReport) (*entity.EventReport, error) {
	err := s.db.WithContext(ctx).Create(report).Error
	return report, err
}

// GetByEventID returns the reports of an event with their authors, newest first.
func (s *EventReportStorage) GetByEventID(ctx context.Context, eventID string) ([]dto.EventReport, error) {
	var result []dto.EventReport
	err := s.db.WithContext(ctx).
		Table("event_reports").
		Select("event_reports.id, event_reports.author_id, users.full_name AS author_name, event_reports.rating, " +
			"event_reports.summary, event_reports.attachment_path, event_reports.created_at").
		Joins("LEFT JOIN users ON users.id = event_reports.author_id").
		Where("event_reports.event_id = ?", eventID).
		Order("event_reports.created_at DESC").
		Scan(&result).Error
	return result, err
}
