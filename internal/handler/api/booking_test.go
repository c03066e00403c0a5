//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/handler/api"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubBookingCommands struct {
	createView *queries.BookingView
	createErr  error
	changeView *queries.BookingView
	changeErr  error

	gotInput commands.CreateBookingInput
	gotNext  booking.Status
	gotActor booking.Actor
}

func (s *stubBookingCommands) CreateBooking(_ context.Context, input commands.CreateBookingInput, _ uuid.UUID) (*queries.BookingView, error) {
	s.gotInput = input
	return s.createView, s.createErr
}

func (s *stubBookingCommands) ChangeStatus(_ context.Context, _ uuid.UUID, next booking.Status, actor booking.Actor) (*queries.BookingView, error) {
	s.gotNext = next
	s.gotActor = actor
	return s.changeView, s.changeErr
}

func (s *stubBookingCommands) CompleteElapsed(_ context.Context) (int, error) {
	return 0, nil
}

type stubBookingQueries struct {
	view    *queries.BookingView
	viewErr error
	list    []*queries.BookingView
	listErr error
}

func (s *stubBookingQueries) GetByID(_ context.Context, _, _ uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.viewErr
}

func (s *stubBookingQueries) ListByRenter(_ context.Context, _ uuid.UUID, _, _ int) ([]*queries.BookingView, error) {
	return s.list, s.listErr
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	userID   uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	s.userID = uuid.New()

	handler := api.NewBookingHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	group := s.router.Group("/bookings", authMiddleware)
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("/:id/status", handler.ChangeStatus)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) doJSON(method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		SpaceID:         uuid.New(),
		SpaceTitle:      "Covered driveway",
		RenterID:        uuid.New(),
		StartTime:       time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		Status:          "PENDING",
		PaymentStatus:   "UNPAID",
		TotalPriceCents: 3000,
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	body := `{"space_id":"` + uuid.NewString() + `","start_time":"2025-06-02T09:00:00Z","end_time":"2025-06-02T12:00:00Z"}`

	s.Run("created", func() {
		s.commands.createView = sampleView()
		s.commands.createErr = nil

		w := s.doJSON(http.MethodPost, "/bookings", body)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), "PENDING")
	})

	s.Run("requires auth", func() {
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed body", func() {
		w := s.doJSON(http.MethodPost, "/bookings", `{"space_id":`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("conflict maps to 409", func() {
		s.commands.createErr = errs.ErrBookingConflict
		w := s.doJSON(http.MethodPost, "/bookings", body)
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("unavailable space maps to 409", func() {
		s.commands.createErr = errs.ErrSpaceUnavailable
		w := s.doJSON(http.MethodPost, "/bookings", body)
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("unknown space maps to 404", func() {
		s.commands.createErr = errs.ErrSpaceNotFound
		w := s.doJSON(http.MethodPost, "/bookings", body)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("invalid window maps to 400", func() {
		s.commands.createErr = errs.ErrInvalidTimeWindow
		w := s.doJSON(http.MethodPost, "/bookings", body)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestChangeStatus() {
	url := "/bookings/" + uuid.NewString() + "/status"

	s.Run("confirms as the authenticated user", func() {
		s.commands.changeView = sampleView()
		s.commands.changeErr = nil

		w := s.doJSON(http.MethodPost, url, `{"status":"CONFIRMED"}`)

		s.Equal(http.StatusOK, w.Code)
		s.Equal(booking.StatusConfirmed, s.commands.gotNext)
		s.Equal(s.userID, s.commands.gotActor.UserID)
		s.False(s.commands.gotActor.System)
	})

	s.Run("unknown status maps to 400", func() {
		w := s.doJSON(http.MethodPost, url, `{"status":"ARCHIVED"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("forbidden maps to 403", func() {
		s.commands.changeErr = errs.ErrForbidden
		w := s.doJSON(http.MethodPost, url, `{"status":"CONFIRMED"}`)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("illegal transition maps to 422", func() {
		s.commands.changeErr = errs.ErrIllegalTransition
		w := s.doJSON(http.MethodPost, url, `{"status":"CANCELLED"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("payment failure maps to 502", func() {
		s.commands.changeErr = errs.ErrPaymentFailed
		w := s.doJSON(http.MethodPost, url, `{"status":"CONFIRMED"}`)
		s.Equal(http.StatusBadGateway, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("found", func() {
		s.queries.view = sampleView()
		w := s.doJSON(http.MethodGet, "/bookings/"+uuid.NewString(), "")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("hidden from strangers", func() {
		s.queries.viewErr = errs.ErrForbidden
		w := s.doJSON(http.MethodGet, "/bookings/"+uuid.NewString(), "")
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("bad id format", func() {
		w := s.doJSON(http.MethodGet, "/bookings/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.queries.list = []*queries.BookingView{sampleView(), sampleView()}
	w := s.doJSON(http.MethodGet, "/bookings", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "spaceTitle")
}
