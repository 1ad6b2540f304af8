//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/pkg/ptr"
	"hotel-concierge/internal/usecase/queries"
	"hotel-concierge/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	ledger       *ledger.Ledger
	inventory    queries.InventoryQueries
	reservations queries.ReservationQueries
	ctx          context.Context
}

func (s *QueriesTestSuite) SetupTest() {
	units := builder.NewInventoryBuilder().WithPortions("soft_drink", 3).MustBuildUnits()
	l, err := ledger.New(units, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.ledger = l
	s.inventory = queries.NewInventoryQueries(l, "USD")
	s.reservations = queries.NewReservationQueries(l, "USD")
	s.ctx = context.Background()
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) bookRoom(id string) reservation.Record {
	in := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	stay, err := reservation.NewStay(in, in.AddDate(0, 0, 2))
	s.Require().NoError(err)
	rec, err := s.ledger.Reserve(s.ctx, uuid.Nil, ledger.RoomClaim(ledger.ByID(inventory.KindRoom, id), stay))
	s.Require().NoError(err)
	return rec
}

func (s *QueriesTestSuite) TestRooms() {
	s.bookRoom("201")

	s.Run("all rooms in key order", func() {
		views, err := s.inventory.Rooms(s.ctx, queries.RoomFilter{})
		s.Require().NoError(err)
		s.Len(views, 5)
		s.Equal("101", views[0].ID)
		s.Equal("USD", views[0].Currency)
	})

	s.Run("available doubles only", func() {
		views, err := s.inventory.Rooms(s.ctx, queries.RoomFilter{Class: inventory.ClassDouble, OnlyAvailable: true})
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal("202", views[0].ID)
		s.Equal(int64(15000), views[0].NightlyRateMinor)
	})

	s.Run("by floor", func() {
		views, err := s.inventory.Rooms(s.ctx, queries.RoomFilter{Floor: ptr.Of(3)})
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal("triple", views[0].Class)
	})

	s.Run("unknown class", func() {
		_, err := s.inventory.Rooms(s.ctx, queries.RoomFilter{Class: "suite"})
		s.True(errs.Is(err, errs.ErrInvalidIntent))
	})
}

func (s *QueriesTestSuite) TestTables() {
	views, err := s.inventory.Tables(s.ctx, queries.TableFilter{MinCapacity: 3})
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal("T2", views[0].ID)

	views, err = s.inventory.Tables(s.ctx, queries.TableFilter{Location: "Window"})
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("T1", views[0].ID)
}

func (s *QueriesTestSuite) TestMenu() {
	views, err := s.inventory.Menu(s.ctx, queries.MenuFilter{})
	s.Require().NoError(err)
	s.Len(views, 7)

	var drink *queries.MenuItemView
	for _, v := range views {
		if v.Key == "soft_drink" {
			drink = v
		}
	}
	s.Require().NotNil(drink)
	s.Require().NotNil(drink.Portions)
	s.Equal(3, *drink.Portions)
	s.Equal(int64(200), drink.PriceMinor)
}

func (s *QueriesTestSuite) TestReservations() {
	rec := s.bookRoom("101")

	s.Run("get by id", func() {
		view, err := s.reservations.GetByID(s.ctx, rec.ID())
		s.Require().NoError(err)
		s.Equal(rec.ID(), view.ID)
		s.Equal("room_booking", view.Kind)
		s.Equal(int64(20000), view.SubtotalMinor)
		s.Require().NotNil(view.CheckIn)
		s.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *view.CheckIn)
		s.Nil(view.SlotStart)
	})

	s.Run("unknown id", func() {
		_, err := s.reservations.GetByID(s.ctx, uuid.New())
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("list by status", func() {
		_, err := s.ledger.Release(s.ctx, rec.ID())
		s.Require().NoError(err)
		s.bookRoom("102")

		cancelled, err := s.reservations.List(s.ctx, queries.ReservationFilter{Status: reservation.StatusCancelled})
		s.Require().NoError(err)
		s.Require().Len(cancelled, 1)
		s.Equal(rec.ID(), cancelled[0].ID)
		s.NotNil(cancelled[0].CancelledAt)

		all, err := s.reservations.List(s.ctx, queries.ReservationFilter{})
		s.Require().NoError(err)
		s.Len(all, 2)
	})

	s.Run("invalid filter", func() {
		_, err := s.reservations.List(s.ctx, queries.ReservationFilter{Kind: "spa"})
		s.True(errs.Is(err, errs.ErrInvalidIntent))
	})
}

func (s *QueriesTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.inventory.Rooms(ctx, queries.RoomFilter{})
	s.True(errs.Is(err, errs.ErrCanceled))
}
