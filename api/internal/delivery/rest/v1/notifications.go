package v1

import (
	"net/http"
	"strconv"

	"sharkpay/api/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /v1/dashboard/notifications
func (h *Handler) notificationList(c *gin.Context) {
	notifications, err := h.services.Notifications.List(currentMerchant(c).MerchantID)
	if err != nil {
		h.responseServiceErr(c, "list notifications", err)
		return
	}

	response := make([]domain.ResponseNotification, 0, len(notifications))
	for i := range notifications {
		response = append(response, notifications[i].Response())
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

// POST /v1/dashboard/notifications/:id/read
func (h *Handler) notificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if err := h.services.Notifications.MarkRead(currentMerchant(c).MerchantID, uint(id)); err != nil {
		h.responseServiceErr(c, "mark notification read", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) initNotificationsRoutes(g *gin.RouterGroup) {
	g.GET("/notifications", h.notificationList)
	g.POST("/notifications/:id/read", h.notificationRead)
}
