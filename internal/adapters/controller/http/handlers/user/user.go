package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/validator"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	qr "github.com/Badsnus/cu-clubs-web/pkg/qrcode"
	"github.com/Badsnus/cu-clubs-web/pkg/smtp"
	"github.com/Badsnus/cu-clubs-web/pkg/uploads"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type eventService interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	Calendar(ctx context.Context, clubID string) ([]byte, error)
	CheckInQR(ctx context.Context, eventID string) ([]byte, error)
}

type participationService interface {
	Enroll(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
	Get(ctx context.Context, eventID string, userID uint) (*entity.EventParticipation, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.Participation, error)
	ListUpcoming(ctx context.Context, userID uint, tag string) ([]dto.UserEvent, error)
}

type eventReportService interface {
	Submit(ctx context.Context, req dto.SubmitReport) (*entity.EventReport, error)
}

type Handler struct {
	eventService         eventService
	participationService participationService
	eventReportService   eventReportService
	logger               *types.Logger

	maxUploadSize int64
}

func New(app *web.App, store *uploads.Store) (*Handler, error) {
	clubStorage := postgres.NewClubStorage(app.DB)
	memberStorage := postgres.NewClubMemberStorage(app.DB)
	eventStorage := postgres.NewEventStorage(app.DB)
	participationStorage := postgres.NewEventParticipationStorage(app.DB)
	eventReportStorage := postgres.NewEventReportStorage(app.DB)

	qrConfig := qr.Event
	if logoPath := viper.GetString("settings.qr.logo-path"); logoPath != "" {
		logo, err := qr.LoadLogo(logoPath)
		if err != nil {
			return nil, fmt.Errorf("load qr logo: %w", err)
		}
		qrConfig.Logo = logo
	}

	reportService := service.NewReportService(
		app.Logger,
		clubStorage,
		memberStorage,
		eventStorage,
		eventReportStorage,
		app.Redis.Reports,
		smtp.NewClient(app.SMTPDialer, viper.GetString("service.smtp.email"), viper.GetString("service.smtp.domain")),
		viper.GetDuration("web.report-cache-ttl"),
		viper.GetString("report.email"),
	)
	maxUploadSize := viper.GetInt64("web.max-upload-size")

	return &Handler{
		eventService:         service.NewEventService(app.Logger, clubStorage, eventStorage, viper.GetString("web.base-url"), qrConfig),
		participationService: service.NewParticipationService(app.Logger, eventStorage, participationStorage, reportService),
		eventReportService: service.NewEventReportService(
			app.Logger,
			eventStorage,
			participationStorage,
			eventReportStorage,
			store,
			reportService,
			maxUploadSize,
		),
		logger:        app.Logger,
		maxUploadSize: maxUploadSize,
	}, nil
}

func (h Handler) Events(c *gin.Context) {
	claims := session.Get(c)
	tag := strings.TrimSpace(c.Query("tag"))

	events, err := h.participationService.ListUpcoming(c.Request.Context(), claims.UserID, tag)
	if err != nil {
		h.logger.Errorf("(user: %d) failed to list events: %v", claims.UserID, err)
		views.PageError(c, err)
		return
	}

	views.Render(c, http.StatusOK, "events.html", gin.H{
		"Title":  "Events",
		"Events": events,
		"Tag":    tag,
	})
}

func (h Handler) Event(c *gin.Context) {
	claims := session.Get(c)
	ctx := c.Request.Context()
	eventID := c.Param("id")

	event, err := h.eventService.Get(ctx, eventID)
	if err != nil {
		if !errors.Is(err, errorz.ErrEventNotFound) {
			h.logger.Errorf("(user: %d) failed to get event %s: %v", claims.UserID, eventID, err)
		}
		views.PageError(c, err)
		return
	}

	participation, err := h.participationService.Get(ctx, eventID, claims.UserID)
	if err != nil {
		h.logger.Errorf("(user: %d) failed to get participation in %s: %v", claims.UserID, eventID, err)
		views.PageError(c, err)
		return
	}

	var participants []dto.Participation
	if claims.Admin {
		participants, err = h.participationService.ListByEvent(ctx, eventID)
		if err != nil {
			h.logger.Errorf("(user: %d) failed to list participants of %s: %v", claims.UserID, eventID, err)
			views.PageError(c, err)
			return
		}
	}

	now := location.Now()
	approved := participation != nil && participation.Status == entity.ParticipationApproved

	views.Render(c, http.StatusOK, "event.html", gin.H{
		"Title":            event.Name,
		"Event":            event,
		"Participation":    participation,
		"Participants":     participants,
		"RegistrationOpen": event.RegistrationOpen(now),
		"CanReport":        event.IsOver(now, 0) && (approved || claims.Admin),
		"MinSummary":       validator.MinSummaryLength,
		"MaxSummary":       validator.MaxSummaryLength,
	})
}

func (h Handler) Enroll(c *gin.Context) {
	claims := session.Get(c)
	eventID := c.Param("id")

	_, err := h.participationService.Enroll(c.Request.Context(), eventID, claims.UserID)
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("(user: %d) failed to enroll in %s: %v", claims.UserID, eventID, err)
		}
		views.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Ok("You are enrolled, wait for approval").WithRedirect("/events/"+eventID))
}

func (h Handler) SubmitReport(c *gin.Context) {
	claims := session.Get(c)
	eventID := c.Param("id")

	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil {
		views.JSONError(c, errorz.ErrInvalidRating)
		return
	}

	attachment, err := h.readAttachment(c)
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("(user: %d) failed to read attachment: %v", claims.UserID, err)
		}
		views.JSONError(c, err)
		return
	}

	_, err = h.eventReportService.Submit(c.Request.Context(), dto.SubmitReport{
		EventID:    eventID,
		AuthorID:   claims.UserID,
		IsAdmin:    claims.Admin,
		Rating:     rating,
		Summary:    strings.TrimSpace(c.PostForm("summary")),
		Attachment: attachment,
	})
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("(user: %d) failed to submit report on %s: %v", claims.UserID, eventID, err)
		}
		views.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Ok("Thank you for the report").WithRedirect("/events/"+eventID))
}

// readAttachment returns the optional "attachment" upload. The content type
// is sniffed from the data rather than trusted from the client.
func (h Handler) readAttachment(c *gin.Context) (*dto.Attachment, error) {
	header, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errorz.ErrInvalidAttachment
	}
	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		return nil, errorz.ErrAttachmentTooBig
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := io.Reader(file)
	if h.maxUploadSize > 0 {
		reader = io.LimitReader(file, h.maxUploadSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return &dto.Attachment{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (h Handler) EventQR(c *gin.Context) {
	eventID := c.Param("id")

	png, err := h.eventService.CheckInQR(c.Request.Context(), eventID)
	if err != nil {
		if !errors.Is(err, errorz.ErrEventNotFound) {
			h.logger.Errorf("failed to render qr for %s: %v", eventID, err)
		}
		c.Status(views.Status(err))
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h Handler) ClubCalendar(c *gin.Context) {
	clubID := c.Param("id")

	feed, err := h.eventService.Calendar(c.Request.Context(), clubID)
	if err != nil {
		if !errors.Is(err, errorz.ErrClubNotFound) {
			h.logger.Errorf("failed to build calendar of club %s: %v", clubID, err)
		}
		views.PageError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="club-%s.ics"`, clubID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", feed)
}
