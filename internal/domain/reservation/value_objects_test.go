//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hotel-concierge/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_PercentBP(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		bp    int64
		want  int64
	}{
		{name: "exact", minor: 10000, bp: 800, want: 800},
		{name: "rounds half up", minor: 50, bp: 100, want: 1},
		{name: "rounds down below half", minor: 49, bp: 100, want: 0},
		{name: "nine percent of 12340", minor: 12340, bp: 900, want: 1111},
		{name: "negative rounds away from zero", minor: -50, bp: 100, want: -1},
		{name: "zero rate", minor: 9999, bp: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservation.NewMoney(tt.minor).PercentBP(tt.bp).Minor())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := reservation.NewMoney(1500)
	assert.Equal(t, int64(15000), a.Mul(10).Minor())
	assert.Equal(t, int64(1000), a.Sub(reservation.NewMoney(500)).Minor())
	assert.Equal(t, int64(1800), reservation.Sum(a, reservation.NewMoney(200), reservation.NewMoney(100)).Minor())
	assert.True(t, a.Sub(reservation.NewMoney(2000)).IsNegative())

	_, err := reservation.NewMoneyFromInt(-1)
	assert.Error(t, err)
}

func TestStay(t *testing.T) {
	in := time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)
	out := time.Date(2026, 5, 13, 9, 0, 0, 0, time.UTC)

	stay, err := reservation.NewStay(in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights())
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), stay.CheckIn())

	_, err = reservation.NewStay(in, in.Add(2*time.Hour))
	assert.ErrorIs(t, err, reservation.ErrInvalidStay)
}

func TestSlot(t *testing.T) {
	start := time.Date(2026, 5, 10, 19, 0, 0, 0, time.UTC)
	slot, err := reservation.NewSlot(start, 90*time.Minute, 4)
	require.NoError(t, err)
	assert.Equal(t, start.Add(90*time.Minute), slot.End())

	_, err = reservation.NewSlot(start, 0, 4)
	assert.ErrorIs(t, err, reservation.ErrInvalidSlot)
	_, err = reservation.NewSlot(start, time.Hour, 0)
	assert.ErrorIs(t, err, reservation.ErrInvalidSlot)
}

func TestRecord_Cancel(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rec, err := reservation.NewRecord(reservation.RecordParams{
		TransactionID: uuid.New(),
		Kind:          reservation.KindTableBooking,
		ResourceKeys:  []string{"table/T1"},
		Quantity:      1,
		CreatedAt:     created,
	})
	require.NoError(t, err)
	assert.True(t, rec.IsCommitted())

	cancelled, err := rec.Cancel(created.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())
	assert.True(t, rec.IsCommitted(), "cancel returns a new value")
	assert.Equal(t, rec.ID(), cancelled.ID())

	_, err = cancelled.Cancel(created.Add(2 * time.Hour))
	assert.ErrorIs(t, err, reservation.ErrRecordCancelled)

	t.Run("validation", func(t *testing.T) {
		_, err := reservation.NewRecord(reservation.RecordParams{Kind: "spa", ResourceKeys: []string{"x"}, Quantity: 1})
		assert.ErrorIs(t, err, reservation.ErrInvalidKind)
		_, err = reservation.NewRecord(reservation.RecordParams{Kind: reservation.KindFoodOrder, Quantity: 1})
		assert.ErrorIs(t, err, reservation.ErrNoResources)
		_, err = reservation.NewRecord(reservation.RecordParams{Kind: reservation.KindFoodOrder, ResourceKeys: []string{"x"}})
		assert.ErrorIs(t, err, reservation.ErrInvalidQuantity)
	})
}
