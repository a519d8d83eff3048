package api

import (
	"net/http"

	reqdto "room-booking/internal/handler/dto/request"
	resdto "room-booking/internal/handler/dto/response"
	"room-booking/internal/usecase/commands"
	"room-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Create room request"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /room [post]
func (h *RoomHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToParams(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	writeRoom(c, http.StatusCreated, view)
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size (default 20, max 100)"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.RoomResponse]
// @Failure 400 {object} httperr.Response
// @Router /room [get]
func (h *RoomHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.List(c.Request.Context(), page)
	writeRoomPage(c, result, err)
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /room/id/{id} [get]
func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	writeRoom(c, http.StatusOK, view)
}

// @Summary Get room by identifier
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Room identifier"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} httperr.Response
// @Router /room/identifier/{identifier} [get]
func (h *RoomHandler) GetByIdentifier(c *gin.Context) {
	view, err := h.q.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondError(c, err)
		return
	}
	writeRoom(c, http.StatusOK, view)
}

// @Summary Filter rooms
// @Description Every given criterion must match. A room matches amenityIds only if it has all of them.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring, case-sensitive"
// @Param minCapacity query int false "Minimum capacity"
// @Param maxCapacity query int false "Maximum capacity"
// @Param status query string false "Room status"
// @Param type query string false "Room type"
// @Param amenityIds query []string false "Required amenity IDs" collectionFormat(multi)
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.RoomResponse]
// @Failure 400 {object} httperr.Response
// @Router /room/filter [get]
func (h *RoomHandler) Filter(c *gin.Context) {
	var fq reqdto.RoomFilterQuery
	if err := c.ShouldBindQuery(&fq); err != nil {
		respondBindError(c, err)
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.Filter(c.Request.Context(), fq.ToFilter(), page)
	writeRoomPage(c, result, err)
}

// @Summary Room types
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CatalogEntryResponse
// @Router /room/type [get]
func (h *RoomHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.q.Types()))
}

// @Summary Room statuses
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CatalogEntryResponse
// @Router /room/status [get]
func (h *RoomHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.q.Statuses()))
}

// @Summary Update room
// @Description Blank or omitted fields keep their current value. A given amenity list replaces the current one.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Update room request"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /room/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToParams(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	writeRoom(c, http.StatusOK, view)
}

// @Summary Delete room
// @Description Deletes the room together with its bookings.
// @Tags rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /room/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, principal); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeRoom(c *gin.Context, status int, view *queries.RoomView) {
	res, err := resdto.FromRoomView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, res)
}

func writeRoomPage(c *gin.Context, page *queries.Page[*queries.RoomView], err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := resdto.FromPage(page, resdto.FromRoomView)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
