package payment

import (
	"net/http"
	"strconv"

	"fitstudio/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMy godoc
// @Summary      List my payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Payment
// @Router       /me/payments [get]
func (h *Handler) ListMy(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	h.list(c, memberID)
}

// ListForMember godoc
// @Summary      List payments for a member
// @Description  Admin only.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path     int  true  "Member ID"
// @Success      200       {array}  Payment
// @Router       /admin/members/{memberID}/payments [get]
func (h *Handler) ListForMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	h.list(c, memberID)
}

func (h *Handler) list(c *gin.Context, memberID int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.service.ListForMember(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
