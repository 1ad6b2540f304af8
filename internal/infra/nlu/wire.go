package nlu

import (
	"fmt"
	"strings"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type classifyRequest struct {
	Text    string    `json:"text"`
	History []message `json:"history,omitempty"`
}

type classification struct {
	Atomic  bool         `json:"atomic"`
	Intents []wireIntent `json:"intents"`
}

type orderLine struct {
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity,omitempty"`
	Components [][]string `json:"components,omitempty"`
}

type adjustment struct {
	Description string `json:"description"`
	AmountMinor int64  `json:"amount_minor"`
}

// wireIntent is the flat JSON form of every intent kind; Kind selects which fields apply.
type wireIntent struct {
	Kind string `json:"kind"`

	RoomID   string `json:"room_id,omitempty"`
	Class    string `json:"class,omitempty"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Floor    *int   `json:"floor,omitempty"`
	MinFloor *int   `json:"min_floor,omitempty"`

	Items []orderLine `json:"items,omitempty"`

	TableID         string `json:"table_id,omitempty"`
	PartySize       int    `json:"party_size,omitempty"`
	At              string `json:"at,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Location        string `json:"location,omitempty"`

	RecordIDs   []string     `json:"record_ids,omitempty"`
	Adjustments []adjustment `json:"adjustments,omitempty"`

	Reply string `json:"reply,omitempty"`

	RecordID string `json:"record_id,omitempty"`

	Resource string `json:"resource,omitempty"`
}

func encodeHistory(history []intent.Message) []message {
	out := make([]message, 0, len(history))
	for _, m := range history {
		out = append(out, message{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func (c classification) toDomain() (intent.Classification, error) {
	out := intent.Classification{Atomic: c.Atomic, Intents: make([]intent.Intent, 0, len(c.Intents))}
	for i, w := range c.Intents {
		in, err := w.toDomain()
		if err != nil {
			return intent.Classification{}, fmt.Errorf("intent %d: %w", i, err)
		}
		out.Intents = append(out.Intents, in)
	}
	return out, nil
}

func (w wireIntent) toDomain() (intent.Intent, error) {
	switch intent.Kind(w.Kind) {
	case intent.KindBookRoom:
		in, err := parseDate(w.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("check_in: %w", err)
		}
		out, err := parseDate(w.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("check_out: %w", err)
		}
		return intent.BookRoom{
			RoomID:   w.RoomID,
			Class:    inventory.Class(strings.ToLower(strings.TrimSpace(w.Class))),
			CheckIn:  in,
			CheckOut: out,
			Floor:    w.Floor,
			MinFloor: w.MinFloor,
		}, nil

	case intent.KindOrderFood:
		lines := make([]intent.OrderLine, 0, len(w.Items))
		for _, it := range w.Items {
			lines = append(lines, intent.OrderLine{Name: it.Name, Quantity: it.Quantity, Components: it.Components})
		}
		return intent.OrderFood{Items: lines}, nil

	case intent.KindReserveTable:
		var at time.Time
		if w.At != "" {
			var err error
			at, err = time.Parse(time.RFC3339, w.At)
			if err != nil {
				return nil, fmt.Errorf("at: %w", err)
			}
		}
		return intent.ReserveTable{
			TableID:   w.TableID,
			PartySize: w.PartySize,
			At:        at,
			Duration:  time.Duration(w.DurationMinutes) * time.Minute,
			Location:  w.Location,
		}, nil

	case intent.KindGenerateInvoice:
		ids, err := parseIDs(w.RecordIDs)
		if err != nil {
			return nil, err
		}
		adjs := make([]intent.Adjustment, 0, len(w.Adjustments))
		for _, a := range w.Adjustments {
			adjs = append(adjs, intent.Adjustment{Description: a.Description, AmountMinor: a.AmountMinor})
		}
		return intent.GenerateInvoice{RecordIDs: ids, Adjustments: adjs}, nil

	case intent.KindDirectAnswer:
		return intent.DirectAnswer{Reply: w.Reply}, nil

	case intent.KindCancelReservation:
		id, err := uuid.Parse(w.RecordID)
		if err != nil {
			return nil, fmt.Errorf("record_id: %w", err)
		}
		return intent.CancelReservation{RecordID: id}, nil

	case intent.KindCheckAvailability:
		return intent.CheckAvailability{
			Resource:  inventory.Kind(w.Resource),
			Class:     inventory.Class(strings.ToLower(strings.TrimSpace(w.Class))),
			PartySize: w.PartySize,
		}, nil

	default:
		return nil, fmt.Errorf("unknown intent kind %q", w.Kind)
	}
}

func fromDomain(cls intent.Classification) classification {
	out := classification{Atomic: cls.Atomic, Intents: make([]wireIntent, 0, len(cls.Intents))}
	for _, in := range cls.Intents {
		w := wireIntent{Kind: in.Kind().String()}
		switch v := in.(type) {
		case intent.BookRoom:
			w.RoomID = v.RoomID
			w.Class = string(v.Class)
			w.CheckIn = formatDate(v.CheckIn)
			w.CheckOut = formatDate(v.CheckOut)
			w.Floor = v.Floor
			w.MinFloor = v.MinFloor
		case intent.OrderFood:
			for _, l := range v.Items {
				w.Items = append(w.Items, orderLine{Name: l.Name, Quantity: l.Quantity, Components: l.Components})
			}
		case intent.ReserveTable:
			w.TableID = v.TableID
			w.PartySize = v.PartySize
			if !v.At.IsZero() {
				w.At = v.At.Format(time.RFC3339)
			}
			w.DurationMinutes = int(v.Duration / time.Minute)
			w.Location = v.Location
		case intent.GenerateInvoice:
			for _, id := range v.RecordIDs {
				w.RecordIDs = append(w.RecordIDs, id.String())
			}
			for _, a := range v.Adjustments {
				w.Adjustments = append(w.Adjustments, adjustment{Description: a.Description, AmountMinor: a.AmountMinor})
			}
		case intent.DirectAnswer:
			w.Reply = v.Reply
		case intent.CancelReservation:
			w.RecordID = v.RecordID.String()
		case intent.CheckAvailability:
			w.Resource = string(v.Resource)
			w.Class = string(v.Class)
			w.PartySize = v.PartySize
		}
		out.Intents = append(out.Intents, w)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("record_ids: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type renderRequest struct {
	Language string      `json:"language"`
	Outcome  wireOutcome `json:"outcome"`
}

type renderResponse struct {
	Text string `json:"text"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wireRecord struct {
	ID            string   `json:"id"`
	Kind          string   `json:"kind"`
	Resources     []string `json:"resources"`
	Quantity      int      `json:"quantity"`
	SubtotalMinor int64    `json:"subtotal_minor"`
	Status        string   `json:"status"`
	CheckIn       string   `json:"check_in,omitempty"`
	CheckOut      string   `json:"check_out,omitempty"`
}

type wirePart struct {
	Index   int          `json:"index"`
	Kind    string       `json:"kind"`
	Status  string       `json:"status"`
	Summary string       `json:"summary,omitempty"`
	Notes   []string     `json:"notes,omitempty"`
	Records []wireRecord `json:"records,omitempty"`
	Error   *wireError   `json:"error,omitempty"`
}

type wireLine struct {
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	SubtotalMinor int64  `json:"subtotal_minor"`
	Cancelled     bool   `json:"cancelled,omitempty"`
}

type wireInvoice struct {
	Currency           string     `json:"currency"`
	Lines              []wireLine `json:"lines"`
	SubtotalMinor      int64      `json:"subtotal_minor"`
	TaxMinor           int64      `json:"tax_minor"`
	ServiceChargeMinor int64      `json:"service_charge_minor"`
	DiscountRule       string     `json:"discount_rule,omitempty"`
	DiscountMinor      int64      `json:"discount_minor,omitempty"`
	GrandTotalMinor    int64      `json:"grand_total_minor"`
}

type wireOutcome struct {
	TurnID  string       `json:"turn_id"`
	State   string       `json:"state"`
	Atomic  bool         `json:"atomic"`
	Parts   []wirePart   `json:"parts"`
	Invoice *wireInvoice `json:"invoice,omitempty"`
	Error   *wireError   `json:"error,omitempty"`
}

func encodeOutcome(o dispatch.Outcome) wireOutcome {
	out := wireOutcome{
		TurnID:  o.TurnID.String(),
		State:   string(o.State),
		Atomic:  o.Atomic,
		Parts:   make([]wirePart, 0, len(o.Parts)),
		Invoice: encodeInvoice(o.Invoice),
		Error:   encodeError(o.Error),
	}
	for _, p := range o.Parts {
		wp := wirePart{
			Index:   p.Index,
			Kind:    p.Kind.String(),
			Status:  string(p.Status),
			Summary: p.Summary,
			Notes:   p.Notes,
			Error:   encodeError(p.Error),
		}
		for _, r := range p.Records {
			wp.Records = append(wp.Records, encodeRecord(r))
		}
		out.Parts = append(out.Parts, wp)
	}
	return out
}

func encodeRecord(r reservation.Record) wireRecord {
	w := wireRecord{
		ID:            r.ID().String(),
		Kind:          r.Kind().String(),
		Resources:     r.ResourceKeys(),
		Quantity:      r.Quantity(),
		SubtotalMinor: r.Subtotal().Minor(),
		Status:        r.Status().String(),
	}
	if !r.Stay().IsZero() {
		w.CheckIn = formatDate(r.Stay().CheckIn())
		w.CheckOut = formatDate(r.Stay().CheckOut())
	}
	return w
}

func encodeInvoice(inv *pricing.Invoice) *wireInvoice {
	if inv == nil {
		return nil
	}
	w := &wireInvoice{
		Currency:           inv.Currency,
		SubtotalMinor:      inv.Subtotal.Minor(),
		TaxMinor:           inv.Tax.Minor(),
		ServiceChargeMinor: inv.ServiceCharge.Minor(),
		GrandTotalMinor:    inv.GrandTotal.Minor(),
	}
	for _, l := range inv.Lines {
		w.Lines = append(w.Lines, wireLine{
			Description:   l.Description,
			Quantity:      l.Quantity,
			SubtotalMinor: l.Subtotal.Minor(),
			Cancelled:     l.Cancelled,
		})
	}
	if inv.Discount != nil {
		w.DiscountRule = string(inv.Discount.Rule)
		w.DiscountMinor = inv.Discount.Amount.Minor()
	}
	return w
}

func encodeError(e *dispatch.Error) *wireError {
	if e == nil {
		return nil
	}
	return &wireError{Code: e.Code, Message: e.Message}
}
