package user

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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

func pngBytes() []byte {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)))).To(Succeed())
	return buf.Bytes()
}

func reportForm(rating, summary string, attachment []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	Expect(w.WriteField("rating", rating)).To(Succeed())
	Expect(w.WriteField("summary", summary)).To(Succeed())
	if attachment != nil {
		part, err := w.CreateFormFile("attachment", "photo.png")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(attachment)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(w.Close()).To(Succeed())
	return body, w.FormDataContentType()
}

var _ = Describe("User handler", func() {
	var (
		router         *gin.Engine
		events         *mockEventService
		participations *mockParticipationService
		eventReports   *mockEventReportService
		claims         *service.Claims
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		events = &mockEventService{}
		participations = &mockParticipationService{}
		eventReports = &mockEventReportService{}
		claims = &service.Claims{UserID: 7, FullName: "Bob Jones"}

		h := Handler{
			eventService:         events,
			participationService: participations,
			eventReportService:   eventReports,
			logger:               logger.Nop(),
			maxUploadSize:        1 << 20,
		}

		router = gin.New()
		router.SetHTMLTemplate(views.Templates())
		router.Use(func(c *gin.Context) { session.Set(c, claims) })
		router.GET("/events", h.Events)
		router.GET("/events/:id", h.Event)
		router.POST("/events/:id/enroll", h.Enroll)
		router.POST("/events/:id/reports", h.SubmitReport)
		router.GET("/events/:id/qr.png", h.EventQR)
		router.GET("/clubs/:id/events.ics", h.ClubCalendar)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) dto.FormResponse {
		var resp dto.FormResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	Describe("events list", func() {
		It("passes the tag filter and renders the events", func() {
			participations.listUpcomingFn = func(_ context.Context, userID uint, tag string) ([]dto.UserEvent, error) {
				Expect(userID).To(Equal(uint(7)))
				Expect(tag).To(Equal("chess"))
				return []dto.UserEvent{
					{Event: entity.Event{ID: "open", Name: "Open tournament"}, ClubName: "Chess club", Status: entity.ParticipationApproved},
					{Event: entity.Event{ID: "blitz", Name: "Blitz night"}, ClubName: "Chess club"},
				}, nil
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/events?tag=chess", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Open tournament"))
			Expect(w.Body.String()).To(ContainSubstring(`class="badge badge-approved"`))
			Expect(w.Body.String()).To(ContainSubstring(`data-search="#events-list"`))
		})
	})

	Describe("event page", func() {
		It("renders a not found page for unknown events", func() {
			events.getFn = func(context.Context, string) (*entity.Event, error) {
				return nil, errorz.ErrEventNotFound
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/events/missing", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("offers the report form to approved participants after the start", func() {
			events.getFn = func(_ context.Context, id string) (*entity.Event, error) {
				return &entity.Event{ID: id, Name: "Open tournament", StartTime: time.Now().Add(-time.Hour)}, nil
			}
			participations.getFn = func(context.Context, string, uint) (*entity.EventParticipation, error) {
				return &entity.EventParticipation{Status: entity.ParticipationApproved}, nil
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/events/open", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`action="/events/open/reports"`))
			Expect(w.Body.String()).To(ContainSubstring(`class="star-rating"`))
			Expect(w.Body.String()).To(ContainSubstring(`data-preview="#attachment-preview"`))
		})

		It("offers enrollment while registration is open", func() {
			events.getFn = func(_ context.Context, id string) (*entity.Event, error) {
				return &entity.Event{
					ID:              id,
					StartTime:       time.Now().Add(48 * time.Hour),
					RegistrationEnd: time.Now().Add(24 * time.Hour),
				}, nil
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/events/open", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`action="/events/open/enroll"`))
			Expect(w.Body.String()).NotTo(ContainSubstring(`action="/events/open/reports"`))
		})
	})

	Describe("enroll", func() {
		It("answers with a redirect to the event", func() {
			w := serve(httptest.NewRequest(http.MethodPost, "/events/open/enroll", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Redirect).To(Equal("/events/open"))
		})

		It("explains why enrollment failed", func() {
			participations.enrollFn = func(context.Context, string, uint) (*entity.EventParticipation, error) {
				return nil, errorz.ErrRegistrationClosed
			}

			w := serve(httptest.NewRequest(http.MethodPost, "/events/open/enroll", nil))

			Expect(w.Code).To(Equal(http.StatusConflict))
			resp := decode(w)
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Registration is closed"))
		})
	})

	Describe("report submission", func() {
		It("passes the form and a sniffed attachment to the service", func() {
			var got dto.SubmitReport
			eventReports.submitFn = func(_ context.Context, req dto.SubmitReport) (*entity.EventReport, error) {
				got = req
				return &entity.EventReport{ID: "r1"}, nil
			}

			body, contentType := reportForm("5", "  Great games and friendly people.  ", pngBytes())
			req := httptest.NewRequest(http.MethodPost, "/events/open/reports", body)
			req.Header.Set("Content-Type", contentType)

			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w).Success).To(BeTrue())
			Expect(got.EventID).To(Equal("open"))
			Expect(got.AuthorID).To(Equal(uint(7)))
			Expect(got.Rating).To(Equal(5))
			Expect(got.Summary).To(Equal("Great games and friendly people."))
			Expect(got.Attachment).NotTo(BeNil())
			Expect(got.Attachment.ContentType).To(Equal("image/png"))
			Expect(got.Attachment.Filename).To(Equal("photo.png"))
		})

		It("accepts reports without an attachment", func() {
			var got dto.SubmitReport
			eventReports.submitFn = func(_ context.Context, req dto.SubmitReport) (*entity.EventReport, error) {
				got = req
				return &entity.EventReport{}, nil
			}

			body, contentType := reportForm("3", "Fine event overall.", nil)
			req := httptest.NewRequest(http.MethodPost, "/events/open/reports", body)
			req.Header.Set("Content-Type", contentType)

			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.Attachment).To(BeNil())
		})

		It("rejects a non numeric rating", func() {
			body, contentType := reportForm("five", "Great games and friendly people.", nil)
			req := httptest.NewRequest(http.MethodPost, "/events/open/reports", body)
			req.Header.Set("Content-Type", contentType)

			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Success).To(BeFalse())
		})

		It("forbids reports from non participants", func() {
			eventReports.submitFn = func(context.Context, dto.SubmitReport) (*entity.EventReport, error) {
				return nil, errorz.ErrForbidden
			}

			body, contentType := reportForm("4", "Great games and friendly people.", nil)
			req := httptest.NewRequest(http.MethodPost, "/events/open/reports", body)
			req.Header.Set("Content-Type", contentType)

			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("downloads", func() {
		It("serves the check-in QR as png", func() {
			events.qrFn = func(context.Context, string) ([]byte, error) {
				return pngBytes(), nil
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/events/open/qr.png", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("image/png"))
		})

		It("serves the club calendar", func() {
			events.calendarFn = func(_ context.Context, clubID string) ([]byte, error) {
				return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/clubs/chess/events.ics", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/calendar; charset=utf-8"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("club-chess.ics"))
		})

		It("answers 404 for unknown clubs", func() {
			events.calendarFn = func(context.Context, string) ([]byte, error) {
				return nil, errorz.ErrClubNotFound
			}

			w := serve(httptest.NewRequest(http.MethodGet, "/clubs/missing/events.ics", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
