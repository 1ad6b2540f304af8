//go:build unit

package nlu

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.NewTestConfig().NLU
	cfg.BaseURL = srv.URL
	cfg.APIKey = "secret"
	return NewClient(cfg, discardLogger())
}

const classifyBody = `{
  "atomic": true,
  "intents": [
    {"kind": "book_room", "class": "Double", "check_in": "2026-05-10", "check_out": "2026-05-13", "min_floor": 2},
    {"kind": "order_food", "items": [{"name": "pepperoni pizza", "quantity": 2, "components": [["extra cheese"], ["mushroom"]]}]},
    {"kind": "reserve_table", "party_size": 4, "at": "2026-05-10T19:30:00Z", "duration_minutes": 90, "location": "patio"},
    {"kind": "generate_invoice", "adjustments": [{"description": "late checkout", "amount_minor": 2500}]}
  ]
}`

func TestClient_Classify(t *testing.T) {
	var got classifyRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, classifyPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, classifyBody)
	})

	history := []intent.Message{{Role: intent.RoleUser, Content: "hi"}}
	cls, err := c.Classify(context.Background(), "book a double and dinner", history)
	require.NoError(t, err)

	assert.Equal(t, "book a double and dinner", got.Text)
	assert.Equal(t, []message{{Role: "user", Content: "hi"}}, got.History)

	minFloor := 2
	want := intent.Classification{
		Atomic: true,
		Intents: []intent.Intent{
			intent.BookRoom{
				Class:    inventory.ClassDouble,
				CheckIn:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
				MinFloor: &minFloor,
			},
			intent.OrderFood{Items: []intent.OrderLine{{
				Name:       "pepperoni pizza",
				Quantity:   2,
				Components: [][]string{{"extra cheese"}, {"mushroom"}},
			}}},
			intent.ReserveTable{
				PartySize: 4,
				At:        time.Date(2026, 5, 10, 19, 30, 0, 0, time.UTC),
				Duration:  90 * time.Minute,
				Location:  "patio",
			},
			intent.GenerateInvoice{
				RecordIDs:   []uuid.UUID{},
				Adjustments: []intent.Adjustment{{Description: "late checkout", AmountMinor: 2500}},
			},
		},
	}
	if diff := cmp.Diff(want, cls); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ClassifyErrors(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		body             string
		wantUnclassified bool
	}{
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: `{"error":"no idea"}`, wantUnclassified: true},
		{name: "server error", status: http.StatusBadGateway, body: `upstream down`},
		{name: "unknown kind", status: http.StatusOK, body: `{"intents":[{"kind":"fly_me_to_the_moon"}]}`, wantUnclassified: true},
		{name: "bad date", status: http.StatusOK, body: `{"intents":[{"kind":"book_room","check_in":"10/05/2026"}]}`, wantUnclassified: true},
		{name: "malformed json", status: http.StatusOK, body: `{"intents":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Classify(context.Background(), "text", nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantUnclassified, errs.Is(err, errs.ErrUnclassifiable))
		})
	}
}

func TestClient_ClassifyCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, classifyBody)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, "text", nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCanceled))
}

func TestClient_Render(t *testing.T) {
	var got renderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, renderPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"text": "  Your room is booked.  "}`)
	})

	turnID := uuid.New()
	out := dispatch.Outcome{
		TurnID: turnID,
		State:  dispatch.StateCompleted,
		Parts: []dispatch.Part{
			{Index: 0, Kind: intent.KindBookRoom, Status: dispatch.PartCompleted, Summary: "room/201 booked"},
			{Index: 1, Kind: intent.KindOrderFood, Status: dispatch.PartFailed, Error: &dispatch.Error{Code: "ITEM_NOT_FOUND", Message: "sushi"}},
		},
		Invoice: &pricing.Invoice{
			Currency:   "USD",
			Subtotal:   reservation.NewMoney(45000),
			GrandTotal: reservation.NewMoney(53100),
		},
	}

	reply, err := c.Render(context.Background(), out, "")
	require.NoError(t, err)
	assert.Equal(t, "Your room is booked.", reply)

	assert.Equal(t, "en", got.Language)
	assert.Equal(t, turnID.String(), got.Outcome.TurnID)
	require.Len(t, got.Outcome.Parts, 2)
	assert.Equal(t, "ITEM_NOT_FOUND", got.Outcome.Parts[1].Error.Code)
	require.NotNil(t, got.Outcome.Invoice)
	assert.Equal(t, int64(53100), got.Outcome.Invoice.GrandTotalMinor)
}

type countingClassifier struct {
	calls atomic.Int32
	cls   intent.Classification
	err   error
}

func (c *countingClassifier) Classify(context.Context, string, []intent.Message) (intent.Classification, error) {
	c.calls.Add(1)
	return c.cls, c.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCachedClassifier(t *testing.T) {
	mr, rdb := newRedis(t)
	recordID := uuid.New()
	next := &countingClassifier{cls: intent.Classification{Intents: []intent.Intent{
		intent.CancelReservation{RecordID: recordID},
		intent.CheckAvailability{Resource: inventory.KindTable, PartySize: 3},
	}}}
	c := NewCachedClassifier(next, rdb, time.Minute, discardLogger())
	ctx := context.Background()

	first, err := c.Classify(ctx, "cancel and check tables", nil)
	require.NoError(t, err)
	second, err := c.Classify(ctx, "cancel and check tables", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), next.calls.Load())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached classification mismatch (-first +second):\n%s", diff)
	}

	_, err = c.Classify(ctx, "cancel and check tables", []intent.Message{{Role: intent.RoleUser, Content: "earlier"}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load(), "different history is a different key")

	mr.FastForward(2 * time.Minute)
	_, err = c.Classify(ctx, "cancel and check tables", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), next.calls.Load(), "expired entries are refetched")
}

func TestCachedClassifier_ErrorsAreNotCached(t *testing.T) {
	_, rdb := newRedis(t)
	next := &countingClassifier{err: errs.ErrUnclassifiable}
	c := NewCachedClassifier(next, rdb, time.Minute, discardLogger())

	for range 2 {
		_, err := c.Classify(context.Background(), "???", nil)
		assert.True(t, errs.Is(err, errs.ErrUnclassifiable))
	}
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedClassifier_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	next := &countingClassifier{cls: intent.Classification{Intents: []intent.Intent{intent.DirectAnswer{Reply: "hello"}}}}
	c := NewCachedClassifier(next, rdb, time.Minute, discardLogger())

	cls, err := c.Classify(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, intent.DirectAnswer{Reply: "hello"}, cls.Intents[0])
}
