package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create trainer
// @Description  Registers a trainer in pending state. Admin only.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainerRequest  true  "Trainer payload"
// @Success      201      {object}  Trainer
// @Failure      400      {object}  gin.H
// @Router       /admin/trainers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create trainer"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// List godoc
// @Summary      List trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Trainer
// @Router       /admin/trainers [get]
func (h *Handler) List(c *gin.Context) {
	trainers, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// Approve godoc
// @Summary      Approve trainer
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/trainers/{trainerID}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.setStatus(c, StatusApproved)
}

// Reject godoc
// @Summary      Reject trainer
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/trainers/{trainerID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.setStatus(c, StatusRejected)
}

func (h *Handler) setStatus(c *gin.Context, status Status) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trainer ID"})
		return
	}

	var opErr error
	if status == StatusApproved {
		opErr = h.service.Approve(c.Request.Context(), trainerID)
	} else {
		opErr = h.service.Reject(c.Request.Context(), trainerID)
	}

	if opErr != nil {
		if errors.Is(opErr, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update trainer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trainer updated"})
}
