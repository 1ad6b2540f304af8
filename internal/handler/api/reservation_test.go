//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/handler/api"
	resdto "hotel-concierge/internal/handler/dto/response"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/queries"
	"hotel-concierge/tests/common/builder"
	"hotel-concierge/tests/common/httptest"
	commandsmock "hotel-concierge/tests/mock/commands"
	queriesmock "hotel-concierge/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCmds    *commandsmock.MockReservationCommands
	mockQueries *queriesmock.MockReservationQueries
	handler     *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCmds, s.mockQueries)

	s.router.GET("/reservations", s.handler.List)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.DELETE("/reservations/:id", s.handler.Cancel)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		view := builder.NewReservationViewBuilder().Build()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("room_booking", body.Kind)
		s.Equal([]string{"room/201"}, body.Resources)
		s.Equal(int64(45000), body.Subtotal.AmountMinor)
		s.Equal("2026-05-10", body.CheckIn)
		s.Equal("2026-05-13", body.CheckOut)
		s.Equal(view.CreatedAt.Unix(), body.CreatedAt)
		s.Nil(body.CancelledAt)
	})

	s.Run("error: 400 on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})

	s.Run("error: 404 on unknown ID", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.Wrapf(errs.ErrNotFound, "record %s", id)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: filters by transaction and status", func() {
		txID := uuid.New()
		first := builder.NewReservationViewBuilder().Build()
		first.TransactionID = txID
		second := builder.NewReservationViewBuilder().Build()
		second.TransactionID = txID

		s.mockQueries.EXPECT().
			List(gomock.Any(), queries.ReservationFilter{TransactionID: txID, Status: reservation.StatusCommitted}).
			Return([]*queries.ReservationView{first, second}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?transaction_id="+txID.String()+"&status=committed", nil)

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal(first.ID.String(), body[0].ID)
		s.Equal(second.ID.String(), body[1].ID)
	})

	s.Run("error: 400 on invalid filters", func() {
		for _, q := range []string{"transaction_id=abc", "status=pending", "kind=spa"} {
			s.Run(q, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?"+q, nil)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	s.Run("success: returns the cancelled record", func() {
		at := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
		view := builder.NewReservationViewBuilder().Cancelled(at).Build()
		s.mockCmds.EXPECT().Cancel(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+view.ID.String(), nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
		s.Require().NotNil(body.CancelledAt)
		s.Equal(at.Unix(), *body.CancelledAt)
	})

	s.Run("error: 400 on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/123", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})

	s.Run("error: 404 on unknown ID", func() {
		id := uuid.New()
		s.mockCmds.EXPECT().Cancel(gomock.Any(), id).Return(nil, errs.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}
