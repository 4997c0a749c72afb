package postgres

import (
	"context"
	"errors"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventParticipationStorage struct {
	db *gorm.DB
}

func NewEventParticipationStorage(db *gorm.DB) *EventParticipationStorage {
	return &EventParticipationStorage{
		db: db,
	}
}

func (s *EventParticipationStorage) Create(ctx context.Context, participation *entity.EventParticipation) (*entity.EventParticipation, error) {
	err := s.db.WithContext(ctx).Create(participation).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrAlreadyEnrolled
	}
	return participation, err
}

func (s *EventParticipationStorage) Get(ctx context.Context, id string) (*entity.EventParticipation, error) {
	if !validID(id) {
		return nil, errorz.ErrParticipationNotFound
	}

	var participation entity.EventParticipation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&participation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrParticipationNotFound
	}
	return &participation, err
}

func (s *EventParticipationStorage) GetByEventAndUser(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error) {
	if !validID(eventID) {
		return nil, errorz.ErrParticipationNotFound
	}

	var participation entity.EventParticipation
	err := s.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&participation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrParticipationNotFound
	}
	return &participation, err
}

func (s *EventParticipationStorage) GetByEventID(ctx context.Context, eventID string) ([]dto.Participation, error) {
	var result []dto.Participation
	err := s.db.WithContext(ctx).
		Table("event_participations").
		Select("event_participations.id, event_participations.user_id, users.full_name, users.email, event_participations.status").
		Joins("JOIN users ON users.id = event_participations.user_id").
		Where("event_participations.event_id = ?", eventID).
		Order("event_participations.created_at").
		Scan(&result).Error
	return result, err
}

func (s *EventParticipationStorage) CountApproved(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.EventParticipation{}).
		Where("event_id = ? AND status = ?", eventID, string(entity.ParticipationApproved)).
		Count(&count).Error
	return count, err
}

// SetStatus changes the status of a participation. The event row is locked
// for the duration of the transaction so concurrent approvals cannot push the
// event over its participant limit.
func (s *EventParticipationStorage) SetStatus(ctx context.Context, id string, status entity.ParticipationStatus) (*entity.EventParticipation, error) {
	if !validID(id) {
		return nil, errorz.ErrParticipationNotFound
	}

	var participation entity.EventParticipation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrParticipationNotFound
			}
			return err
		}

		var event entity.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", participation.EventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrEventNotFound
			}
			return err
		}

		if status == entity.ParticipationApproved && participation.Status != entity.ParticipationApproved {
			var approved int64
			err := tx.Model(&entity.EventParticipation{}).
				Where("event_id = ? AND status = ?", event.ID, string(entity.ParticipationApproved)).
				Count(&approved).Error
			if err != nil {
				return err
			}
			if !event.HasCapacity(approved) {
				return errorz.ErrEventFull
			}
		}

		participation.Status = status
		participation.Event = event
		return tx.Model(&entity.EventParticipation{}).Where("id = ?", id).Update("status", string(status)).Error
	})
	if err != nil {
		return nil, err
	}
	return &participation, nil
}
