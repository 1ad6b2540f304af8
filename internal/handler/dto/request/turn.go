package request

import (
	"strings"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/google/uuid"
)

type MessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type SubmitTurnRequest struct {
	TurnID        *uuid.UUID       `json:"turn_id,omitempty"`
	Text          string           `json:"text" binding:"required,max=4000"`
	History       []MessageRequest `json:"history,omitempty" binding:"omitempty,max=50,dive"`
	Language      string           `json:"language,omitempty" binding:"omitempty,max=8"`
	LoyaltyMember bool             `json:"loyalty_member"`
}

func (r SubmitTurnRequest) ToTurn() dispatch.Turn {
	turn := dispatch.Turn{
		Text:     strings.TrimSpace(r.Text),
		Language: strings.ToLower(strings.TrimSpace(r.Language)),
		Discount: pricing.DiscountContext{LoyaltyMember: r.LoyaltyMember},
	}
	if r.TurnID != nil {
		turn.ID = *r.TurnID
	}
	for _, m := range r.History {
		turn.History = append(turn.History, intent.Message{Role: intent.Role(m.Role), Content: m.Content})
	}
	return turn
}
