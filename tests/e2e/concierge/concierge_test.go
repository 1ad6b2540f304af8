//go:build e2e

package concierge_test

import (
	"net/http"
	"strings"
	"testing"

	resdto "hotel-concierge/internal/handler/dto/response"
	"hotel-concierge/internal/handler/middleware"
	"hotel-concierge/tests/common/builder"
	"hotel-concierge/tests/common/httptest"
	"hotel-concierge/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	turnsURL        = "/api/turns"
	reservationsURL = "/api/reservations"
	roomsURL        = "/api/rooms"

	bookText   = "Book a double room from May 10 to May 13 and two pepperoni pizzas"
	bookIntent = `{"atomic":false,"intents":[
		{"kind":"book_room","class":"double","check_in":"2026-05-10","check_out":"2026-05-13"},
		{"kind":"order_food","items":[{"name":"pepperoni pizza","quantity":2}]}
	]}`

	atomicText   = "A triple room for May 20 to May 21 and sushi, all or nothing"
	atomicIntent = `{"atomic":true,"intents":[
		{"kind":"book_room","class":"triple","check_in":"2026-05-20","check_out":"2026-05-21"},
		{"kind":"order_food","items":[{"name":"sushi","quantity":1}]}
	]}`
)

type ConciergeSuite struct {
	e2e.SharedSuite
}

func TestConciergeSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ConciergeSuite))
}

func (s *ConciergeSuite) submit(text string) (*resdto.TurnResponse, int) {
	t := s.T()
	req := builder.NewTurnRequestBuilder().WithText(text).Build()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, turnsURL, req)

	var res resdto.TurnResponse
	if w.Code == http.StatusOK {
		httptest.DecodeResponseBody(t, w.Body, &res)
	} else {
		httptest.DecodeErrorDetail(t, w, &res)
	}
	return &res, w.Code
}

func (s *ConciergeSuite) listReservations(query string) []resdto.ReservationResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+query, nil)
	var res []resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	return res
}

func (s *ConciergeSuite) availableDoubles() int {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, roomsURL+"?class=double&available=true", nil)
	var rooms []resdto.RoomResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rooms)
	return len(rooms)
}

// =============================================================================
// TestSubmitTurn - full turn through classifier, specialists and renderer
// =============================================================================

func (s *ConciergeSuite) TestSubmitTurn() {
	s.NLU.On(bookText, bookIntent)

	s.Run("Normal case: books a room and food with a summary invoice", func() {
		res, status := s.submit(bookText)
		require.Equal(s.T(), http.StatusOK, status)

		s.Equal("completed", res.State)
		s.Equal([]string{"received", "classified", "delegating", "aggregating", "completed"}, res.Transitions)
		s.Require().Len(res.Parts, 2)
		for _, p := range res.Parts {
			s.Equal("completed", p.Status, "part %d: %+v", p.Index, p.Error)
		}

		room := res.Parts[0].Reservations
		s.Require().Len(room, 1)
		s.True(strings.HasPrefix(room[0].Resources[0], "room/2"), "double rooms live on floor 2")
		s.Equal("2026-05-10", room[0].CheckIn)
		s.Equal(int64(45000), room[0].Subtotal.AmountMinor)

		s.Require().NotNil(res.Invoice)
		s.Equal("USD", res.Invoice.Currency)
		s.Len(res.Invoice.Lines, 2)
		s.Equal(int64(48000), res.Invoice.Subtotal.AmountMinor)
		s.Greater(res.Invoice.GrandTotal.AmountMinor, res.Invoice.Subtotal.AmountMinor)

		s.Equal("[en] turn completed", res.Reply)
		s.Equal(4, s.availableDoubles())
	})

	s.Run("Normal case: identical turns reuse the cached classification", func() {
		before := s.NLU.Calls("/v1/classify")

		_, status := s.submit(bookText)
		require.Equal(s.T(), http.StatusOK, status)

		s.Equal(before, s.NLU.Calls("/v1/classify"))
		s.Equal(3, s.availableDoubles())
	})
}

func (s *ConciergeSuite) TestSubmitTurnFailures() {
	s.Run("Error case: unclassifiable text is reported as 422", func() {
		text := "purple monkey dishwasher"
		s.NLU.Reject(text)

		res, status := s.submit(text)
		s.Equal(http.StatusUnprocessableEntity, status)
		s.Equal("failed", res.State)
		s.Require().NotNil(res.Error)
		s.Equal("UNCLASSIFIABLE", res.Error.Code)
		s.Equal(1, s.NLU.Calls("/v1/classify"))
	})

	s.Run("Error case: language service errors are retried then reported as 503", func() {
		before := s.NLU.Calls("/v1/classify")

		res, status := s.submit("unscripted text")
		s.Equal(http.StatusServiceUnavailable, status)
		s.Equal("CLASSIFICATION_UNAVAILABLE", res.Error.Code)
		s.Equal(s.Config.Dispatcher.ClassifyMaxAttempts, s.NLU.Calls("/v1/classify")-before)
	})

	s.Run("Error case: an atomic turn with one bad intent commits nothing", func() {
		s.NLU.On(atomicText, atomicIntent)

		res, status := s.submit(atomicText)
		s.Equal(http.StatusOK, status)
		s.Equal("failed", res.State)
		s.Require().Len(res.Parts, 2)
		s.Equal(res.Parts[0].Error.Code, res.Parts[1].Error.Code)
		s.Equal("ITEM_NOT_FOUND", res.Parts[1].Error.Code)

		s.Empty(s.listReservations(""))
	})

	s.Run("Error case: validation", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, turnsURL, map[string]any{"text": ""})
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})
}

// =============================================================================
// TestReservationLifecycle - list, get and cancel ledger records
// =============================================================================

func (s *ConciergeSuite) TestReservationLifecycle() {
	s.NLU.On(bookText, bookIntent)
	_, status := s.submit(bookText)
	s.Require().Equal(http.StatusOK, status)

	s.Require().Len(s.listReservations("?status=committed"), 2)
	rooms := s.listReservations("?kind=room_booking")
	s.Require().Len(rooms, 1)
	roomRec := rooms[0]

	s.Run("Normal case: get by ID", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/"+roomRec.ID, nil)
		var got resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		if diff := cmp.Diff(roomRec, got); diff != "" {
			s.T().Errorf("reservation mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: cancel releases the room", func() {
		s.Equal(4, s.availableDoubles())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, reservationsURL+"/"+roomRec.ID, nil)
		var got resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal("cancelled", got.Status)
		s.NotNil(got.CancelledAt)

		s.Equal(5, s.availableDoubles())
		s.Len(s.listReservations("?status=cancelled"), 1)
		s.Len(s.listReservations("?kind=food_order&status=committed"), 1)
	})

	s.Run("Error case: cancelling twice is not found", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, reservationsURL+"/"+roomRec.ID, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

// =============================================================================
// TestOperational - health, metrics and request IDs
// =============================================================================

func (s *ConciergeSuite) TestOperational() {
	s.Run("health", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/health", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("request ID is echoed", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodGet, "/health", nil,
			map[string]string{middleware.RequestIDHeader: "req-123"})
		httptest.AssertHeaders(s.T(), w, map[string]string{middleware.RequestIDHeader: "req-123"})
	})

	s.Run("metrics expose turn counters", func() {
		s.NLU.On(bookText, bookIntent)
		_, status := s.submit(bookText)
		s.Require().Equal(http.StatusOK, status)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/metrics", nil)
		s.Require().Equal(http.StatusOK, w.Code)
		body := w.Body.String()
		s.Contains(body, `concierge_turns_total{state="completed"} 1`)
		s.Contains(body, `concierge_http_requests_total`)
	})
}
