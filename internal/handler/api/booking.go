package api

import (
	"net/http"

	"room-booking/internal/domain/user"
	reqdto "room-booking/internal/handler/dto/request"
	resdto "room-booking/internal/handler/dto/response"
	"room-booking/internal/handler/httperr"
	"room-booking/internal/handler/middleware"
	"room-booking/internal/pkg/errs"
	"room-booking/internal/usecase/commands"
	"room-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errNoPrincipal     = errs.New("no principal in request context")
	errNotBookingOwner = errs.New("booking belongs to another user")
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request a booking for a room. Callers holding the approval capability get it approved immediately.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking [post]
func (h *BookingHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToParams(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	writeBooking(c, http.StatusCreated, view)
}

// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size (default 20, max 100)"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Router /booking [get]
func (h *BookingHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.List(c.Request.Context(), page)
	writeBookingPage(c, result, err)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/id/{id} [get]
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	writeBooking(c, http.StatusOK, view)
}

// @Summary List bookings of a room
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Router /booking/room/{roomId} [get]
func (h *BookingHandler) ListByRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "roomId")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.ListByRoom(c.Request.Context(), roomID, page)
	writeBookingPage(c, result, err)
}

// @Summary List bookings requested by a user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Router /booking/user/{userId} [get]
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.ListByUser(c.Request.Context(), userID, page)
	writeBookingPage(c, result, err)
}

// @Summary Filter bookings
// @Description Every given criterion must match.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param roomId query string false "Room ID"
// @Param requestedBy query string false "Requesting user ID"
// @Param approvedBy query string false "Approving user ID"
// @Param minStartTime query string false "RFC3339, bookings starting at or after"
// @Param maxEndTime query string false "RFC3339, bookings ending at or before"
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Param sort query string false "field or field,dir"
// @Success 200 {object} resdto.PageResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Router /booking/filter [get]
func (h *BookingHandler) Filter(c *gin.Context) {
	var fq reqdto.BookingFilterQuery
	if err := c.ShouldBindQuery(&fq); err != nil {
		respondBindError(c, err)
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	result, err := h.q.Filter(c.Request.Context(), fq.ToFilter(), page)
	writeBookingPage(c, result, err)
}

// @Summary Approve booking
// @Description Approving an approved booking again only records the new approver.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/{id}/approve [post]
func (h *BookingHandler) Approve(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	view, err := h.cmds.Approve(c.Request.Context(), id, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	writeBooking(c, http.StatusOK, view)
}

// @Summary Update booking
// @Description Reschedule a booking within its room. Users may only touch their own bookings.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !h.authorizeOwned(c, id, user.CapEditBookings) {
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	writeBooking(c, http.StatusOK, view)
}

// @Summary Delete booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if !h.authorizeOwned(c, id, user.CapDeleteBookings) {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authorizeOwned lets holders of anyCap through. Everyone else reached the
// handler through an own-bookings capability and must have requested the
// booking.
func (h *BookingHandler) authorizeOwned(c *gin.Context, id uuid.UUID, anyCap user.Capability) bool {
	principal, ok := principalFrom(c)
	if !ok {
		return false
	}
	if principal.Can(anyCap) {
		return true
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return false
	}
	if view.RequestedBy != principal.ID {
		httperr.Abort(c, http.StatusForbidden, errNotBookingOwner, "Insufficient permissions")
		return false
	}
	return true
}

func principalFrom(c *gin.Context) (user.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized")
	}
	return p, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func bindPage(c *gin.Context) (queries.PageRequest, bool) {
	var pq reqdto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		respondBindError(c, err)
		return queries.PageRequest{}, false
	}
	return pq.ToPageRequest(), true
}

func writeBooking(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, res)
}

func writeBookingPage(c *gin.Context, page *queries.Page[*queries.BookingView], err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := resdto.FromPage(page, resdto.FromBookingView)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
