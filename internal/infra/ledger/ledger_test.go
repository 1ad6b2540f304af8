//go:build unit

package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type LedgerTestSuite struct {
	suite.Suite
	clock  *clock.MockClock
	ledger *ledger.Ledger
}

func (s *LedgerTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(baseTime)
	l, err := ledger.New(builder.NewInventoryBuilder().MustBuildUnits(), s.clock, nil)
	s.Require().NoError(err)
	s.ledger = l
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func mustStay(t require.TestingT, in, out string) reservation.Stay {
	checkIn, err := time.Parse(time.DateOnly, in)
	require.NoError(t, err)
	checkOut, err := time.Parse(time.DateOnly, out)
	require.NoError(t, err)
	stay, err := reservation.NewStay(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func mustSlot(t require.TestingT, party int) reservation.Slot {
	slot, err := reservation.NewSlot(baseTime.Add(10*time.Hour), 2*time.Hour, party)
	require.NoError(t, err)
	return slot
}

func (s *LedgerTestSuite) TestReserve() {
	s.Run("three nights in a double room", func() {
		stay := mustStay(s.T(), "2026-05-10", "2026-05-13")

		rec, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.RoomClaim(ledger.AnyRoom(ledger.RoomQuery{Class: inventory.ClassDouble}), stay))

		s.Require().NoError(err)
		s.Equal(reservation.KindRoomBooking, rec.Kind())
		s.Equal([]string{"room/201"}, rec.ResourceKeys())
		s.Equal(3, rec.Quantity())
		s.Equal(int64(45000), rec.Subtotal().Minor())
		s.True(rec.IsCommitted())
		s.Equal(baseTime, rec.CreatedAt())

		unit, ok := s.ledger.Unit(inventory.NewKey(inventory.KindRoom, "201"))
		s.Require().True(ok)
		s.False(unit.IsAvailable())
	})

	s.Run("specific room already taken", func() {
		stay := mustStay(s.T(), "2026-05-10", "2026-05-11")
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "201"), stay))

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrResourceUnavailable))
	})

	s.Run("unknown room id", func() {
		stay := mustStay(s.T(), "2026-05-10", "2026-05-11")
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "999"), stay))

		s.True(errs.Is(err, errs.ErrResourceUnavailable))
	})

	s.Run("smallest table that seats the party", func() {
		rec, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.TableClaim(ledger.AnyTable(ledger.TableQuery{MinCapacity: 3}), mustSlot(s.T(), 3)))

		s.Require().NoError(err)
		s.Equal([]string{"table/T2"}, rec.ResourceKeys())
	})

	s.Run("named table too small for the party", func() {
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.TableClaim(ledger.ByID(inventory.KindTable, "T1"), mustSlot(s.T(), 5)))

		s.True(errs.Is(err, errs.ErrResourceUnavailable))
	})

	s.Run("food line prices customizations", func() {
		rec, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.FoodClaim("pepperoni_pizza", 2, [][]string{{"extra cheese"}, {"mushroom"}}))

		s.Require().NoError(err)
		s.Equal(reservation.KindFoodOrder, rec.Kind())
		s.Require().NotNil(rec.Line())
		s.Equal(int64(1850), rec.Line().UnitPrice.Minor())
		s.Equal(int64(3700), rec.Subtotal().Minor())
	})

	s.Run("unknown customization is an invalid intent", func() {
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.FoodClaim("pepperoni_pizza", 1, [][]string{{"pineapple"}}))

		s.True(errs.Is(err, errs.ErrInvalidIntent))
	})

	s.Run("invalid claims", func() {
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.FoodClaim("cheeseburger", 0, nil))
		s.True(errs.Is(err, errs.ErrInvalidIntent))

		_, err = s.ledger.ReserveAll(context.Background(), uuid.Nil, nil)
		s.True(errs.Is(err, errs.ErrInvalidIntent))
	})
}

func (s *LedgerTestSuite) TestReserveAllIsAtomic() {
	stay := mustStay(s.T(), "2026-06-01", "2026-06-02")
	before := s.ledger.Query(ledger.Filter{})

	_, err := s.ledger.ReserveAll(context.Background(), uuid.Nil, []ledger.Claim{
		ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "101"), stay),
		ledger.FoodClaim("cheeseburger", 1, nil),
		// only one triple exists
		ledger.RoomClaim(ledger.AnyRoom(ledger.RoomQuery{Class: inventory.ClassTriple}), stay),
		ledger.RoomClaim(ledger.AnyRoom(ledger.RoomQuery{Class: inventory.ClassTriple}), stay),
	})

	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrResourceUnavailable))
	s.Equal(before, s.ledger.Query(ledger.Filter{}))
	s.Empty(s.ledger.Records(ledger.RecordFilter{}))
}

func (s *LedgerTestSuite) TestReserveAllSharesTransaction() {
	stay := mustStay(s.T(), "2026-06-01", "2026-06-03")

	txID := uuid.New()
	recs, err := s.ledger.ReserveAll(context.Background(), txID, []ledger.Claim{
		ledger.RoomClaim(ledger.AnyRoom(ledger.RoomQuery{Class: inventory.ClassSingle}), stay),
		ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "101"), stay),
	})

	s.Require().NoError(err)
	s.Require().Len(recs, 2)
	// the named room is assigned first so the predicate falls through to 102
	s.Equal([]string{"room/102"}, recs[0].ResourceKeys())
	s.Equal([]string{"room/101"}, recs[1].ResourceKeys())
	s.Equal(txID, recs[0].TransactionID())
	s.Equal(txID, recs[1].TransactionID())
	s.Len(s.ledger.Records(ledger.RecordFilter{TransactionID: txID}), 2)
}

func (s *LedgerTestSuite) TestRelease() {
	stay := mustStay(s.T(), "2026-06-01", "2026-06-02")
	rec, err := s.ledger.Reserve(context.Background(), uuid.Nil,
		ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "301"), stay))
	s.Require().NoError(err)

	s.clock.Add(time.Hour)
	cancelled, err := s.ledger.Release(context.Background(), rec.ID())
	s.Require().NoError(err)
	s.True(cancelled.IsCancelled())
	s.Require().NotNil(cancelled.CancelledAt())
	s.Equal(baseTime.Add(time.Hour), *cancelled.CancelledAt())

	unit, _ := s.ledger.Unit(inventory.NewKey(inventory.KindRoom, "301"))
	s.True(unit.IsAvailable())

	s.Run("second release is not found", func() {
		_, err := s.ledger.Release(context.Background(), rec.ID())
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("released unit can be booked again", func() {
		_, err := s.ledger.Reserve(context.Background(), uuid.Nil,
			ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "301"), stay))
		s.NoError(err)
	})
}

func (s *LedgerTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ledger.Reserve(ctx, uuid.Nil, ledger.FoodClaim("cheeseburger", 1, nil))

	s.True(errs.Is(err, errs.ErrCanceled))
	s.Empty(s.ledger.Records(ledger.RecordFilter{}))
}

func TestLedger_NoDoubleBooking(t *testing.T) {
	l, err := ledger.New(builder.NewInventoryBuilder().MustBuildUnits(), nil, nil)
	require.NoError(t, err)
	stay := mustStay(t, "2026-07-01", "2026-07-04")

	const workers = 32
	var (
		wg       sync.WaitGroup
		won      atomic.Int32
		rejected atomic.Int32
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.Reserve(context.Background(), uuid.Nil,
				ledger.RoomClaim(ledger.ByID(inventory.KindRoom, "202"), stay))
			if err == nil {
				won.Add(1)
				return
			}
			if errs.Is(err, errs.ErrResourceUnavailable) {
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
	assert.Equal(t, int32(workers-1), rejected.Load())
	assert.Len(t, l.Records(ledger.RecordFilter{Status: reservation.StatusCommitted}), 1)
}

func TestLedger_VisibleRecordsHaveClaimedUnits(t *testing.T) {
	l, err := ledger.New(builder.NewInventoryBuilder().MustBuildUnits(), nil, nil)
	require.NoError(t, err)
	stay := mustStay(t, "2026-05-10", "2026-05-12")

	var done atomic.Bool
	var torn atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !done.Load() {
			for _, rec := range l.Records(ledger.RecordFilter{}) {
				unit, ok := l.Unit(inventory.Key(rec.ResourceKeys()[0]))
				if ok && unit.IsAvailable() {
					torn.Add(1)
				}
			}
		}
	}()

	for _, u := range l.Query(ledger.Filter{Kind: inventory.KindRoom}) {
		_, err := l.Reserve(context.Background(), uuid.Nil, ledger.RoomClaim(ledger.ByID(inventory.KindRoom, u.ID()), stay))
		require.NoError(t, err)
	}
	done.Store(true)
	wg.Wait()

	assert.Zero(t, torn.Load(), "a committed record was visible before its room was marked reserved")
}

func TestLedger_ConcurrentPortions(t *testing.T) {
	units := builder.NewInventoryBuilder().WithPortions("kabob_koobideh", 10).MustBuildUnits()
	l, err := ledger.New(units, nil, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var won atomic.Int32
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Reserve(context.Background(), uuid.Nil, ledger.FoodClaim("kabob_koobideh", 1, nil)); err == nil {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), won.Load())
	unit, ok := l.Unit(inventory.NewKey(inventory.KindMenuItem, "kabob_koobideh"))
	require.True(t, ok)
	left, limited := unit.(inventory.MenuItem).Portions()
	assert.True(t, limited)
	assert.Equal(t, 0, left)
}

func TestLedger_OverlappingBundlesDoNotDeadlock(t *testing.T) {
	l, err := ledger.New(builder.NewInventoryBuilder().MustBuildUnits(), nil, nil)
	require.NoError(t, err)
	stay := mustStay(t, "2026-08-01", "2026-08-02")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claims := []ledger.Claim{
				ledger.RoomClaim(ledger.AnyRoom(ledger.RoomQuery{Class: inventory.ClassSingle}), stay),
				ledger.FoodClaim("soft_drink", 1, nil),
			}
			if i%2 == 0 {
				claims[0], claims[1] = claims[1], claims[0]
			}
			_, _ = l.ReserveAll(ctx, uuid.Nil, claims)
		}()
	}
	wg.Wait()

	require.NoError(t, ctx.Err())
	assert.Len(t, l.Records(ledger.RecordFilter{Kind: reservation.KindRoomBooking}), 2)
}

func TestNew_DuplicateKeys(t *testing.T) {
	units := builder.NewInventoryBuilder().MustBuildUnits()
	_, err := ledger.New(append(units, units[0]), nil, nil)
	assert.True(t, errs.Is(err, ledger.ErrDuplicateUnit), fmt.Sprint(err))
}
