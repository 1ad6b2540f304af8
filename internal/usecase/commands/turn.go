package commands

import (
	"context"

	reqdto "hotel-concierge/internal/handler/dto/request"
	"hotel-concierge/internal/usecase/dispatch"
)

// TurnResult carries the outcome even when Submit also returns an error.
type TurnResult struct {
	Outcome dispatch.Outcome
}

type TurnCommands interface {
	Submit(ctx context.Context, req reqdto.SubmitTurnRequest) (*TurnResult, error)
}

type turnCommandsImpl struct {
	dispatcher  TurnDispatcher
	defaultLang string
}

func NewTurnCommands(dispatcher TurnDispatcher, defaultLang string) TurnCommands {
	return &turnCommandsImpl{dispatcher: dispatcher, defaultLang: defaultLang}
}

func (u *turnCommandsImpl) Submit(ctx context.Context, req reqdto.SubmitTurnRequest) (*TurnResult, error) {
	turn := req.ToTurn()
	if turn.Language == "" {
		turn.Language = u.defaultLang
	}
	out, err := u.dispatcher.Handle(ctx, turn)
	return &TurnResult{Outcome: out}, err
}
