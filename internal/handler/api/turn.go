package api

import (
	"net/http"

	reqdto "hotel-concierge/internal/handler/dto/request"
	resdto "hotel-concierge/internal/handler/dto/response"
	"hotel-concierge/internal/handler/httperr"
	"hotel-concierge/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type TurnHandler struct {
	cmds     commands.TurnCommands
	currency string
}

func NewTurnHandler(cmds commands.TurnCommands, currency string) *TurnHandler {
	return &TurnHandler{cmds: cmds, currency: currency}
}

// @Summary Submit a guest turn
// @Description Classify one guest message, delegate its intents and return the composite outcome
// @Tags turns
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitTurnRequest true "Guest turn"
// @Success 200 {object} resdto.TurnResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /turns [post]
func (h *TurnHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), req)
	if err != nil {
		var detail any
		if result != nil {
			detail = resdto.FromOutcome(result.Outcome, h.currency)
		}
		abortWithDomainError(c, err, detail)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOutcome(result.Outcome, h.currency))
}
