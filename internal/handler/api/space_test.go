//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkspot/internal/handler/api"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubSpaceCommands struct {
	view *queries.SpaceView
	err  error

	gotCreate commands.CreateSpaceInput
	gotUpdate commands.UpdateSpaceInput
}

func (s *stubSpaceCommands) CreateSpace(_ context.Context, input commands.CreateSpaceInput, _ uuid.UUID) (*queries.SpaceView, error) {
	s.gotCreate = input
	return s.view, s.err
}

func (s *stubSpaceCommands) UpdateSpace(_ context.Context, _ uuid.UUID, input commands.UpdateSpaceInput, _ uuid.UUID) (*queries.SpaceView, error) {
	s.gotUpdate = input
	return s.view, s.err
}

func (s *stubSpaceCommands) SetModeration(_ context.Context, _ uuid.UUID, _ string) (*queries.SpaceView, error) {
	return s.view, s.err
}

type stubSpaceQueries struct{}

func (s *stubSpaceQueries) Search(_ context.Context, _ queries.SearchSpacesQuery) (*queries.SearchResult, error) {
	return &queries.SearchResult{}, nil
}

func (s *stubSpaceQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.SpaceView, error) {
	return nil, errs.ErrSpaceNotFound
}

func (s *stubSpaceQueries) ListByOwner(_ context.Context, _ uuid.UUID) ([]*queries.SpaceView, error) {
	return nil, nil
}

func (s *stubSpaceQueries) Quote(_ context.Context, _ uuid.UUID, _, _ time.Time) (*queries.QuoteView, error) {
	return nil, errs.ErrSpaceNotFound
}

type SpaceHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubSpaceCommands
	userID   uuid.UUID
}

func (s *SpaceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubSpaceCommands{}
	s.userID = uuid.New()

	handler := api.NewSpaceHandler(s.commands, &stubSpaceQueries{})

	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Next()
	}

	group := s.router.Group("/spaces", authMiddleware)
	group.POST("", handler.Create)
	group.PATCH("/:id", handler.Update)
}

func TestSpaceHandlerSuite(t *testing.T) {
	suite.Run(t, new(SpaceHandlerTestSuite))
}

func (s *SpaceHandlerTestSuite) doJSON(method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleSpaceView() *queries.SpaceView {
	return &queries.SpaceView{
		ID:               uuid.New(),
		OwnerID:          uuid.New(),
		Title:            "Covered driveway",
		SpaceType:        "driveway",
		IsAvailable:      true,
		ModerationStatus: "PENDING",
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *SpaceHandlerTestSuite) TestCreate() {
	s.Run("zero coordinates and a free hourly rate bind", func() {
		s.commands.view = sampleSpaceView()

		w := s.doJSON(http.MethodPost, "/spaces",
			`{"title":"Null Island pier","space_type":"lot","latitude":0,"longitude":0,"price_per_hour_cents":0}`)

		s.Equal(http.StatusCreated, w.Code)
		s.Zero(s.commands.gotCreate.Latitude)
		s.Zero(s.commands.gotCreate.Longitude)
		s.Zero(s.commands.gotCreate.PricePerHourCents)
	})

	s.Run("missing hourly rate maps to 400", func() {
		w := s.doJSON(http.MethodPost, "/spaces",
			`{"title":"No price","space_type":"lot","latitude":0,"longitude":0}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("invalid rates map to 400", func() {
		s.commands.view = nil
		s.commands.err = errs.ErrInvalidRates
		w := s.doJSON(http.MethodPost, "/spaces",
			`{"title":"Bad rates","space_type":"lot","latitude":0,"longitude":0,"price_per_hour_cents":-1}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *SpaceHandlerTestSuite) TestUpdate() {
	url := "/spaces/" + uuid.NewString()
	body := `{"title":"Renamed","space_type":"driveway","price_per_hour_cents":1200`

	s.Run("omitted availability is forwarded as absent", func() {
		s.commands.view = sampleSpaceView()

		w := s.doJSON(http.MethodPatch, url, body+`}`)

		s.Equal(http.StatusOK, w.Code)
		s.Nil(s.commands.gotUpdate.IsAvailable)
	})

	s.Run("explicit availability is forwarded", func() {
		s.commands.view = sampleSpaceView()

		w := s.doJSON(http.MethodPatch, url, body+`,"is_available":false}`)

		s.Equal(http.StatusOK, w.Code)
		if s.NotNil(s.commands.gotUpdate.IsAvailable) {
			s.False(*s.commands.gotUpdate.IsAvailable)
		}
	})

	s.Run("forbidden maps to 403", func() {
		s.commands.err = errs.ErrForbidden
		w := s.doJSON(http.MethodPatch, url, body+`}`)
		s.Equal(http.StatusForbidden, w.Code)
	})
}
