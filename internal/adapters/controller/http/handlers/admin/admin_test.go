package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/views"
	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/service"
	"github.com/Badsnus/cu-clubs-web/pkg/logger"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func chessReport() *dto.ClubReport {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	report := dto.NewClubReport(
		entity.Club{ID: "chess", Name: "Chess club"},
		[]dto.ClubMember{
			{UserID: 1, FullName: "Ann Smith", Email: "ann@example.com", Roles: "President, Member", JoinedAt: now},
			{UserID: 2, FullName: "Bob Jones", Email: "bob@example.com", Roles: "Member", JoinedAt: now},
			{UserID: 3, FullName: "Cid Brown", Email: "cid@example.com", Roles: "Member", JoinedAt: now},
		},
		[]dto.ExecutiveMember{{UserID: 1, FullName: "Ann Smith", Email: "ann@example.com", Roles: "President"}},
		[]dto.EventStats{
			{ID: "open", Name: "Open tournament", StartTime: now, ParticipantCount: 3, EnrollmentCount: 5, ReportCount: 2, AverageRating: 4.5},
			{ID: "blitz", Name: "Blitz night", StartTime: now, ParticipantCount: 4, EnrollmentCount: 4},
		},
		now,
	)
	return &report
}

func postForm(router *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeForm(w *httptest.ResponseRecorder) dto.FormResponse {
	var resp dto.FormResponse
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	return resp
}

var _ = Describe("Admin handler", func() {
	var (
		router         *gin.Engine
		clubs          *mockClubService
		reports        *mockReportService
		participations *mockParticipationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		clubs = &mockClubService{}
		reports = &mockReportService{}
		participations = &mockParticipationService{}

		h := Handler{
			clubService:          clubs,
			reportService:        reports,
			participationService: participations,
			logger:               logger.Nop(),
		}

		router = gin.New()
		router.SetHTMLTemplate(views.Templates())
		router.Use(func(c *gin.Context) {
			session.Set(c, &service.Claims{UserID: 1, FullName: "Ann Smith", Admin: true})
		})
		router.GET("/admin", h.Index)
		router.GET("/admin/club_report", h.ClubReport)
		router.GET("/admin/club_report/export.xlsx", h.ExportClubReport)
		router.POST("/admin/club_report/email", h.EmailClubReport)
		router.GET("/admin/event_reports", h.EventReports)
		router.POST("/admin/participations/:id/status", h.SetParticipationStatus)
	})

	Describe("club report", func() {
		It("renders the counts of the underlying rows", func() {
			reports.clubReportFn = func(_ context.Context, clubID string, fresh bool) (*dto.ClubReport, error) {
				Expect(clubID).To(Equal("chess"))
				Expect(fresh).To(BeTrue(), "the report page must aggregate on every load")
				return chessReport(), nil
			}

			w := get(router, "/admin/club_report?club_id=chess")

			Expect(w.Code).To(Equal(http.StatusOK))
			body := w.Body.String()
			Expect(body).To(ContainSubstring(`<dd id="member-count">3</dd>`))
			Expect(body).To(ContainSubstring(`<dd id="executive-count">1</dd>`))
			Expect(body).To(ContainSubstring(`<dd id="event-count">2</dd>`))
			Expect(body).To(ContainSubstring(`<dd id="total-participants">7</dd>`))
			Expect(body).To(ContainSubstring(`<dd id="total-enrollments">9</dd>`))
			Expect(strings.Count(body, "<td>Member</td>")).To(Equal(2))
			Expect(body).To(ContainSubstring(`href="/admin/event_reports?event_id=open"`))
			Expect(body).To(ContainSubstring(`href="/admin/event_reports?event_id=blitz"`))
			Expect(body).To(ContainSubstring("4.5"))
		})

		It("redirects to the admin index when club_id is missing", func() {
			w := get(router, "/admin/club_report")

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/admin"))
		})

		It("redirects to the admin index when the club does not exist", func() {
			reports.clubReportFn = func(context.Context, string, bool) (*dto.ClubReport, error) {
				return nil, errorz.ErrClubNotFound
			}

			w := get(router, "/admin/club_report?club_id=missing")

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/admin"))
		})

		It("renders an error page when the report cannot be built", func() {
			reports.clubReportFn = func(context.Context, string, bool) (*dto.ClubReport, error) {
				return nil, errors.New("connection reset")
			}

			w := get(router, "/admin/club_report?club_id=chess")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection reset"))
		})

		It("exports the report as xlsx", func() {
			reports.clubReportFn = func(_ context.Context, _ string, fresh bool) (*dto.ClubReport, error) {
				Expect(fresh).To(BeFalse())
				return chessReport(), nil
			}
			reports.exportFn = func(*dto.ClubReport) (*bytes.Buffer, error) {
				return bytes.NewBufferString("xlsx"), nil
			}

			w := get(router, "/admin/club_report/export.xlsx?club_id=chess")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal(xlsxContentType))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("chess-club-report-2026-03-14.xlsx"))
			Expect(w.Body.String()).To(Equal("xlsx"))
		})
	})

	Describe("admin index", func() {
		It("lists clubs with links to their reports", func() {
			clubs.listFn = func(context.Context, int, int) ([]entity.Club, error) {
				return []entity.Club{{ID: "chess", Name: "Chess club"}, {ID: "drama", Name: "Drama club"}}, nil
			}

			w := get(router, "/admin")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`href="/admin/club_report?club_id=drama"`))
			Expect(w.Body.String()).To(ContainSubstring(`data-search="#clubs-table"`))
		})
	})

	Describe("event reports", func() {
		It("shows the reports of an event", func() {
			reports.eventReportsFn = func(context.Context, string) (*dto.EventReports, error) {
				return &dto.EventReports{
					Event:   entity.Event{ID: "open", ClubID: "chess", Name: "Open tournament"},
					Reports: []dto.EventReport{{AuthorName: "Bob Jones", Rating: 4, Summary: "Well organised"}},
				}, nil
			}
			participations.listByEventFn = func(context.Context, string) ([]dto.Participation, error) {
				return []dto.Participation{{ID: "p1", FullName: "Bob Jones", Status: entity.ParticipationApproved}}, nil
			}

			w := get(router, "/admin/event_reports?event_id=open")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Well organised"))
			Expect(w.Body.String()).To(ContainSubstring("★★★★☆"))
			Expect(w.Body.String()).To(ContainSubstring(`action="/admin/participations/p1/status"`))
		})

		It("redirects to the admin index for unknown events", func() {
			reports.eventReportsFn = func(context.Context, string) (*dto.EventReports, error) {
				return nil, errorz.ErrEventNotFound
			}

			w := get(router, "/admin/event_reports?event_id=missing")

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/admin"))
		})
	})

	Describe("email report", func() {
		It("answers with a successful form response", func() {
			var sentTo string
			reports.emailFn = func(_ context.Context, clubID, to string) error {
				Expect(clubID).To(Equal("chess"))
				sentTo = to
				return nil
			}

			w := postForm(router, "/admin/club_report/email", url.Values{"club_id": {"chess"}, "email": {"dean@example.com"}})

			Expect(w.Code).To(Equal(http.StatusOK))
			var raw map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &raw)).To(Succeed())
			Expect(raw).To(HaveKeyWithValue("success", true))
			Expect(raw).To(HaveKeyWithValue("message", "Report sent"))
			Expect(raw).NotTo(HaveKey("redirect"))
			Expect(sentTo).To(Equal("dean@example.com"))
		})

		It("rejects an invalid recipient", func() {
			w := postForm(router, "/admin/club_report/email", url.Values{"club_id": {"chess"}, "email": {"not-an-email"}})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeForm(w).Success).To(BeFalse())
		})

		It("reports a missing default recipient", func() {
			reports.emailFn = func(context.Context, string, string) error {
				return errorz.ErrNoReportRecipient
			}

			w := postForm(router, "/admin/club_report/email", url.Values{"club_id": {"chess"}})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeForm(w).Message).To(ContainSubstring("No report recipient"))
		})
	})

	Describe("participation status", func() {
		It("updates the status", func() {
			participations.setStatusFn = func(_ context.Context, id, status string) (*entity.EventParticipation, error) {
				return &entity.EventParticipation{ID: id, Status: entity.ParticipationStatus(status)}, nil
			}

			w := postForm(router, "/admin/participations/p1/status", url.Values{"status": {"approved"}})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeForm(w)
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Message).To(Equal("Participation approved"))
		})

		It("refuses approvals beyond capacity", func() {
			participations.setStatusFn = func(context.Context, string, string) (*entity.EventParticipation, error) {
				return nil, errorz.ErrEventFull
			}

			w := postForm(router, "/admin/participations/p1/status", url.Values{"status": {"approved"}})

			Expect(w.Code).To(Equal(http.StatusConflict))
			resp := decodeForm(w)
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Event is full"))
		})
	})
})
