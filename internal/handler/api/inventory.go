package api

import (
	"net/http"

	reqdto "hotel-concierge/internal/handler/dto/request"
	resdto "hotel-concierge/internal/handler/dto/response"
	"hotel-concierge/internal/handler/httperr"
	"hotel-concierge/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	q queries.InventoryQueries
}

func NewInventoryHandler(q queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{q: q}
}

// @Summary List rooms
// @Tags inventory
// @Produce json
// @Param class query string false "single, double or triple"
// @Param floor query int false "Floor"
// @Param available query bool false "Only available rooms"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /rooms [get]
func (h *InventoryHandler) ListRooms(c *gin.Context) {
	var q reqdto.ListRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.Rooms(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWithDomainError(c, err, nil)
		return
	}
	res, err := resdto.FromRoomViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List tables
// @Tags inventory
// @Produce json
// @Param min_capacity query int false "Minimum capacity"
// @Param location query string false "Location"
// @Param available query bool false "Only available tables"
// @Success 200 {array} resdto.TableResponse
// @Failure 400 {object} httperr.Response
// @Router /tables [get]
func (h *InventoryHandler) ListTables(c *gin.Context) {
	var q reqdto.ListTablesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.Tables(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWithDomainError(c, err, nil)
		return
	}
	res, err := resdto.FromTableViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List menu
// @Tags inventory
// @Produce json
// @Param available query bool false "Only orderable items"
// @Success 200 {array} resdto.MenuItemResponse
// @Router /menu [get]
func (h *InventoryHandler) ListMenu(c *gin.Context) {
	var q reqdto.ListMenuQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.Menu(c.Request.Context(), queries.MenuFilter{OnlyAvailable: q.Available})
	if err != nil {
		abortWithDomainError(c, err, nil)
		return
	}
	res, err := resdto.FromMenuViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
