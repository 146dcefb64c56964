package booking

import (
	"errors"
	"net/http"
	"strconv"

	"fitstudio/internal/auth"
	"fitstudio/internal/freeclass"
	"fitstudio/internal/subscription"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Book a class session
// @Description  Books a slot. Members book for themselves; admins may pass
// @Description  member_id to book on behalf of a member.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking payload"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      402      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only admins may book on behalf of another member.
	if req.MemberID == 0 || c.GetString("member_role") != "admin" {
		req.MemberID = memberID
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Update godoc
// @Summary      Re-assign a booking
// @Description  Admin only. Moves a booking to another member or session
// @Description  without revisiting credit consumption.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                   true  "Booking ID"
// @Param        request    body      UpdateBookingRequest  true  "Patch payload"
// @Success      200        {object}  Booking
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /admin/bookings/{bookingID} [patch]
func (h *Handler) Update(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), bookingID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// MarkAttended godoc
// @Summary      Mark booking attended
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      404        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/attended [post]
func (h *Handler) MarkAttended(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	b, err := h.service.MarkAttended(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// Cancel godoc
// @Summary      Cancel booking
// @Description  Restores the consumed credit and removes the booking. Fails
// @Description  once the session has started.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if b.MemberID != memberID && c.GetString("member_role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only cancel your own bookings"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), bookingID); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GetByID godoc
// @Summary      Get booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      404        {object}  gin.H
// @Router       /bookings/{bookingID} [get]
func (h *Handler) GetByID(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ListMy godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Booking
// @Router       /bookings [get]
func (h *Handler) ListMy(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	bookings, err := h.service.ListForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListMyUpcoming godoc
// @Summary      List my upcoming bookings
// @Description  Future, non-cancelled sessions, soonest first.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  BookingWithDetails
// @Router       /bookings/upcoming [get]
func (h *Handler) ListMyUpcoming(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	bookings, err := h.service.ListUpcomingForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBySchedule godoc
// @Summary      List bookings for a session
// @Description  Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path     int  true  "Session ID"
// @Success      200         {array}  BookingWithDetails
// @Router       /admin/schedules/{scheduleID}/bookings [get]
func (h *Handler) ListBySchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	bookings, err := h.service.ListForSchedule(c.Request.Context(), scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListByMember godoc
// @Summary      List bookings for a member
// @Description  Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path     int  true  "Member ID"
// @Success      200       {array}  Booking
// @Router       /admin/members/{memberID}/bookings [get]
func (h *Handler) ListByMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	bookings, err := h.service.ListForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// respondBookingError maps each failure kind to its own status and message;
// kinds are never collapsed into one another.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
	case errors.Is(err, ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "class session not found"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, ErrMemberInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "member account is deactivated"})
	case errors.Is(err, ErrScheduleCancelled):
		c.JSON(http.StatusBadRequest, gin.H{"error": "class session is cancelled"})
	case errors.Is(err, ErrScheduleAlreadyStarted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "class session has already started"})
	case errors.Is(err, ErrCancellationTooLate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot cancel a class that has already started"})
	case errors.Is(err, ErrScheduleFull):
		c.JSON(http.StatusConflict, gin.H{"error": "class session is full"})
	case errors.Is(err, ErrDuplicateBooking):
		c.JSON(http.StatusConflict, gin.H{"error": "you already have a booking for this session"})
	case errors.Is(err, ErrNoCreditAvailable):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "no subscription allowance or free classes available"})
	case errors.Is(err, freeclass.ErrNoFreeClassesAvailable):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "no free classes available"})
	case errors.Is(err, subscription.ErrNoRemainingClasses):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "no remaining classes on subscription"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process booking"})
	}
}
