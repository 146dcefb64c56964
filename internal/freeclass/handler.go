package freeclass

import (
	"errors"
	"net/http"

	"fitstudio/internal/auth"
	"fitstudio/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Grant godoc
// @Summary      Grant free classes
// @Description  Admin only. Inserts a new allocation row for the member.
// @Tags         free-classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      GrantRequest  true  "Grant payload"
// @Success      201      {object}  Allocation
// @Failure      400      {object}  gin.H
// @Router       /admin/free-classes [post]
func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.Grant(c.Request.Context(), req.MemberID, req.Quantity)
	if err != nil {
		if errors.Is(err, ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		logger.Errorf("Failed to grant free classes to member %d: %v", req.MemberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grant free classes"})
		return
	}

	logger.Info("Free classes granted", "member_id", req.MemberID, "quantity", req.Quantity)
	c.JSON(http.StatusCreated, a)
}

// GetMyPool godoc
// @Summary      Remaining free classes
// @Tags         free-classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  PoolResponse
// @Router       /me/free-classes [get]
func (h *Handler) GetMyPool(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	remaining, err := h.service.Remaining(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch free classes"})
		return
	}

	c.JSON(http.StatusOK, PoolResponse{MemberID: memberID, Remaining: remaining})
}
