package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"fitstudio/internal/trainer"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create class session
// @Description  Admin only. Trainer must be approved; time ranges may not overlap.
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Session payload"
// @Success      201      {object}  ClassSession
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /admin/schedules [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// Update godoc
// @Summary      Update class session
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        scheduleID  path      int                   true  "Session ID"
// @Param        request     body      UpdateSessionRequest  true  "Patch payload"
// @Success      200         {object}  ClassSession
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      409         {object}  gin.H
// @Router       /admin/schedules/{scheduleID} [patch]
func (h *Handler) Update(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.service.Update(c.Request.Context(), scheduleID, req)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Cancel godoc
// @Summary      Cancel class session
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Session ID"
// @Success      200         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Router       /admin/schedules/{scheduleID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), scheduleID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}

// GetByID godoc
// @Summary      Get class session
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Session ID"
// @Success      200         {object}  ClassSession
// @Failure      404         {object}  gin.H
// @Router       /schedules/{scheduleID} [get]
func (h *Handler) GetByID(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	sess, err := h.service.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// ListUpcoming godoc
// @Summary      List upcoming sessions with availability
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  SessionWithAvailability
// @Router       /schedules [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	sessions, err := h.service.ListUpcoming(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "class session not found"})
	case errors.Is(err, trainer.ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
	case errors.Is(err, ErrTrainerNotApproved):
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer is not approved"})
	case errors.Is(err, ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session time range"})
	case errors.Is(err, ErrSessionInPast):
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must start in the future"})
	case errors.Is(err, ErrConflictingSchedule):
		c.JSON(http.StatusConflict, gin.H{"error": "trainer already has a session in this time range"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
	}
}
