package subscription

import (
	"errors"
	"net/http"
	"strconv"

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

// ListPlans godoc
// @Summary      List membership plans
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}  MembershipType
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// Purchase godoc
// @Summary      Purchase a membership plan
// @Description  Records the payment and opens a subscription starting today.
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Purchase payload"
// @Success      201      {object}  PurchaseResponse
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /subscriptions [post]
func (h *Handler) Purchase(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, p, err := h.service.Purchase(c.Request.Context(), memberID, req)
	if err != nil {
		if errors.Is(err, ErrMembershipTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "membership type not found"})
			return
		}
		logger.Errorf("Failed to purchase subscription for member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purchase subscription"})
		return
	}

	c.JSON(http.StatusCreated, PurchaseResponse{
		Subscription: sub,
		PaymentRef:   p.Reference,
		Amount:       p.Amount.String(),
	})
}

// GetCurrent godoc
// @Summary      Current subscription
// @Description  The subscription covering today with status active or canceled.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Subscription
// @Failure      404  {object}  gin.H
// @Router       /subscriptions/current [get]
func (h *Handler) GetCurrent(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	sub, err := h.service.Current(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subscription"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no current subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ListMy godoc
// @Summary      List my subscriptions
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Subscription
// @Router       /subscriptions [get]
func (h *Handler) ListMy(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	subs, err := h.service.ListForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// Cancel godoc
// @Summary      Cancel subscription
// @Description  Sets status to canceled and turns auto-renew off. The
// @Description  subscription keeps granting credit until its end date.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        subscriptionID  path      int  true  "Subscription ID"
// @Success      200             {object}  gin.H
// @Failure      404             {object}  gin.H
// @Router       /subscriptions/{subscriptionID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	subscriptionID, err := strconv.Atoi(c.Param("subscriptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), subscriptionID); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscription canceled"})
}

// TriggerSweep godoc
// @Summary      Run expiration sweep now
// @Description  Admin only. Idempotent.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  gin.H
// @Router       /admin/subscriptions/sweep [post]
func (h *Handler) TriggerSweep(c *gin.Context) {
	expired, err := h.service.ExpireDue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": expired})
}
