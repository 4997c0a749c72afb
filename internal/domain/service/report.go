package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/Badsnus/cu-clubs-web/pkg/smtp"
)

type reportClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
}

type reportMemberStorage interface {
	GetByClubID(ctx context.Context, clubID string) ([]dto.ClubMember, error)
	GetExecutiveByClubID(ctx context.Context, clubID string) ([]dto.ExecutiveMember, error)
}

type reportEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetStatsByClubID(ctx context.Context, clubID string) ([]dto.EventStats, error)
}

type reportEventReportStorage interface {
	GetByEventID(ctx context.Context, eventID string) ([]dto.EventReport, error)
}

// ReportCache keeps generated club reports for exports and emails. Reports
// are stored under the generation read before aggregation started, so a
// report built concurrently with Delete is never served afterwards.
type ReportCache interface {
	Generation(ctx context.Context, clubID string) (int64, error)
	Get(ctx context.Context, clubID string) (*dto.ClubReport, error)
	Set(ctx context.Context, report *dto.ClubReport, generation int64, expiration time.Duration) error
	Delete(ctx context.Context, clubID string) error
}

type reportMailer interface {
	SendReport(to, subject, body string, attachment *smtp.Attachment) error
}

type ReportService struct {
	logger *types.Logger

	clubStorage        reportClubStorage
	memberStorage      reportMemberStorage
	eventStorage       reportEventStorage
	eventReportStorage reportEventReportStorage
	cache              ReportCache
	mailer             reportMailer

	cacheTTL         time.Duration
	defaultRecipient string
	now              func() time.Time
}

func NewReportService(
	logger *types.Logger,
	clubStorage reportClubStorage,
	memberStorage reportMemberStorage,
	eventStorage reportEventStorage,
	eventReportStorage reportEventReportStorage,
	cache ReportCache,
	mailer reportMailer,
	cacheTTL time.Duration,
	defaultRecipient string,
) *ReportService {
	return &ReportService{
		logger: logger,

		clubStorage:        clubStorage,
		memberStorage:      memberStorage,
		eventStorage:       eventStorage,
		eventReportStorage: eventReportStorage,
		cache:              cache,
		mailer:             mailer,

		cacheTTL:         cacheTTL,
		defaultRecipient: defaultRecipient,
		now:              location.Now,
	}
}

// ClubReport collects the club, its members, its executive body and its
// events with their counters. Fresh reports are always aggregated from the
// database; otherwise a cached report is returned when there is one. Every
// aggregated report refreshes the cache. A cache failure never fails the
// report.
func (s *ReportService) ClubReport(ctx context.Context, clubID string, fresh bool) (*dto.ClubReport, error) {
	if s.cache != nil && !fresh {
		cached, err := s.cache.Get(ctx, clubID)
		if err != nil {
			s.logger.Warnf("(club: %s) failed to read cached report: %v", clubID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var (
		generation int64
		cacheable  = s.cache != nil
	)
	if cacheable {
		var err error
		if generation, err = s.cache.Generation(ctx, clubID); err != nil {
			s.logger.Warnf("(club: %s) failed to read report generation: %v", clubID, err)
			cacheable = false
		}
	}

	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberStorage.GetByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("get members of club %s: %w", clubID, err)
	}

	executive, err := s.memberStorage.GetExecutiveByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("get executive body of club %s: %w", clubID, err)
	}

	events, err := s.eventStorage.GetStatsByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("get events of club %s: %w", clubID, err)
	}

	report := dto.NewClubReport(*club, members, executive, events, s.now())

	if cacheable {
		if err = s.cache.Set(ctx, &report, generation, s.cacheTTL); err != nil {
			s.logger.Warnf("(club: %s) failed to cache report: %v", clubID, err)
		}
	}
	return &report, nil
}

// Invalidate drops the cached report of a club.
func (s *ReportService) Invalidate(ctx context.Context, clubID string) {
	if s.cache == nil || clubID == "" {
		return
	}
	if err := s.cache.Delete(ctx, clubID); err != nil {
		s.logger.Warnf("(club: %s) failed to drop cached report: %v", clubID, err)
	}
}

// EventReports returns an event with all reports written about it.
func (s *ReportService) EventReports(ctx context.Context, eventID string) (*dto.EventReports, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	reports, err := s.eventReportStorage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get reports of event %s: %w", eventID, err)
	}

	return &dto.EventReports{
		Event:   *event,
		Reports: reports,
	}, nil
}

// EmailReport mails the XLSX export of a club report. An empty recipient
// falls back to the configured report address.
func (s *ReportService) EmailReport(ctx context.Context, clubID, to string) error {
	if to == "" {
		to = s.defaultRecipient
	}
	if to == "" {
		return errorz.ErrNoReportRecipient
	}

	report, err := s.ClubReport(ctx, clubID, false)
	if err != nil {
		return err
	}

	buf, err := s.ExportXLSX(report)
	if err != nil {
		return fmt.Errorf("export report of club %s: %w", clubID, err)
	}

	body := fmt.Sprintf(
		"Report for %s generated %s.\nMembers: %d, executive body: %d, events: %d.\nParticipants: %d, enrollments: %d.",
		report.Club.Name,
		report.GeneratedAt.In(location.Location()).Format("02.01.2006 15:04"),
		len(report.Members), len(report.Executive), len(report.Events),
		report.TotalParticipants, report.TotalEnrollments,
	)

	err = s.mailer.SendReport(to, "Club report: "+report.Club.Name, body, &smtp.Attachment{
		Filename: ReportFilename(report),
		Data:     buf,
	})
	if err != nil {
		return err
	}
	s.logger.Infof("(club: %s) report sent to %s", clubID, to)
	return nil
}
