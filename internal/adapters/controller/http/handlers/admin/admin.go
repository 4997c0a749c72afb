package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/validator"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/Badsnus/cu-clubs-web/pkg/smtp"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const (
	indexPath       = "/admin"
	clubsLimit      = 500
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type clubService interface {
	GetWithPagination(ctx context.Context, offset, limit int) ([]entity.Club, error)
}

type reportService interface {
	ClubReport(ctx context.Context, clubID string, fresh bool) (*dto.ClubReport, error)
	EventReports(ctx context.Context, eventID string) (*dto.EventReports, error)
	ExportXLSX(report *dto.ClubReport) (*bytes.Buffer, error)
	EmailReport(ctx context.Context, clubID, to string) error
}

type participationService interface {
	SetStatus(ctx context.Context, id, status string) (*entity.EventParticipation, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.Participation, error)
}

type Handler struct {
	clubService          clubService
	reportService        reportService
	participationService participationService
	logger               *types.Logger
}

func New(app *web.App) *Handler {
	clubStorage := postgres.NewClubStorage(app.DB)
	memberStorage := postgres.NewClubMemberStorage(app.DB)
	eventStorage := postgres.NewEventStorage(app.DB)
	participationStorage := postgres.NewEventParticipationStorage(app.DB)
	eventReportStorage := postgres.NewEventReportStorage(app.DB)

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

	return &Handler{
		clubService:          service.NewClubService(clubStorage),
		reportService:        reportService,
		participationService: service.NewParticipationService(app.Logger, eventStorage, participationStorage, reportService),
		logger:               app.Logger,
	}
}

func (h Handler) Index(c *gin.Context) {
	clubs, err := h.clubService.GetWithPagination(c.Request.Context(), 0, clubsLimit)
	if err != nil {
		h.logger.Errorf("(user: %d) failed to list clubs: %v", session.Get(c).UserID, err)
		views.PageError(c, err)
		return
	}

	views.Render(c, http.StatusOK, "admin_index.html", gin.H{
		"Title": "Clubs",
		"Clubs": clubs,
	})
}

// ClubReport renders the report of the club given by the club_id query
// parameter, aggregated from the database on every load. Unknown clubs send
// the admin back to the index.
func (h Handler) ClubReport(c *gin.Context) {
	report, ok := h.loadReport(c, true)
	if !ok {
		return
	}

	views.Render(c, http.StatusOK, "club_report.html", gin.H{
		"Title":  "Report: " + report.Club.Name,
		"Report": report,
	})
}

func (h Handler) ExportClubReport(c *gin.Context) {
	report, ok := h.loadReport(c, false)
	if !ok {
		return
	}

	buf, err := h.reportService.ExportXLSX(report)
	if err != nil {
		h.logger.Errorf("(club: %s) failed to export report: %v", report.Club.ID, err)
		views.PageError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.ReportFilename(report)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h Handler) loadReport(c *gin.Context, fresh bool) (*dto.ClubReport, bool) {
	clubID := strings.TrimSpace(c.Query("club_id"))
	if clubID == "" {
		c.Redirect(http.StatusFound, indexPath)
		return nil, false
	}

	report, err := h.reportService.ClubReport(c.Request.Context(), clubID, fresh)
	if err != nil {
		if errors.Is(err, errorz.ErrClubNotFound) {
			c.Redirect(http.StatusFound, indexPath)
			return nil, false
		}
		h.logger.Errorf("(club: %s) failed to build report: %v", clubID, err)
		views.PageError(c, err)
		return nil, false
	}
	return report, true
}

func (h Handler) EventReports(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := strings.TrimSpace(c.Query("event_id"))
	if eventID == "" {
		c.Redirect(http.StatusFound, indexPath)
		return
	}

	reports, err := h.reportService.EventReports(ctx, eventID)
	if err != nil {
		if errors.Is(err, errorz.ErrEventNotFound) {
			c.Redirect(http.StatusFound, indexPath)
			return
		}
		h.logger.Errorf("(event: %s) failed to get reports: %v", eventID, err)
		views.PageError(c, err)
		return
	}

	participants, err := h.participationService.ListByEvent(ctx, eventID)
	if err != nil {
		h.logger.Errorf("(event: %s) failed to list participants: %v", eventID, err)
		views.PageError(c, err)
		return
	}

	views.Render(c, http.StatusOK, "event_reports.html", gin.H{
		"Title":        "Reports: " + reports.Event.Name,
		"Reports":      reports,
		"Participants": participants,
	})
}

type emailForm struct {
	ClubID string `form:"club_id" binding:"required"`
	Email  string `form:"email"`
}

func (h Handler) EmailClubReport(c *gin.Context) {
	var form emailForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Club is required"))
		return
	}

	form.Email = strings.TrimSpace(form.Email)
	if form.Email != "" && !validator.Email(form.Email) {
		c.JSON(http.StatusBadRequest, dto.Fail("Enter a valid email address"))
		return
	}

	if err := h.reportService.EmailReport(c.Request.Context(), form.ClubID, form.Email); err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("(club: %s) failed to email report: %v", form.ClubID, err)
		}
		views.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Ok("Report sent"))
}

func (h Handler) SetParticipationStatus(c *gin.Context) {
	id := c.Param("id")
	status := c.PostForm("status")

	participation, err := h.participationService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		if views.Status(err) == http.StatusInternalServerError {
			h.logger.Errorf("(participation: %s) failed to set status %s: %v", id, status, err)
		}
		views.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(fmt.Sprintf("Participation %s", participation.Status)))
}
