// PRIVATE ROUTES

package v1

import (
	"net/http"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/pkg/logsink"

	"github.com/gin-gonic/gin"
)

// POST /v1/admin/webhook/updateProxyList
func (h *Handler) updateProxyList(c *gin.Context) {
	if h.config.ProxyPath == "" {
		responseErr(c, http.StatusBadRequest, "proxy_path is not configured", "")
		return
	}

	list, err := config.GetProxyList(h.config.ProxyPath)
	if err != nil {
		h.responseInternal(c, "read proxy list", err)
		return
	}

	h.services.WebhookSender.UpdateList(list)
	h.log.Info("proxy list updated", logsink.LogstreamWebhooks, false, "count", len(h.services.WebhookSender.GetList()))
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
	})
}

// POST /v1/admin/webhook/getProxyList
func (h *Handler) getProxyList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"proxies": h.services.WebhookSender.GetList(),
	})
}

func (h *Handler) setFrozen(frozen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, err := h.services.Merchants.SetFrozen(c.Param("merchant_id"), frozen)
		if err != nil {
			h.responseServiceErr(c, "set frozen", err)
			return
		}

		h.log.Info("merchant frozen flag changed", logsink.LogstreamPayments, false, "merchant_id", merchant.MerchantID, "frozen", frozen)
		c.AbortWithStatusJSON(http.StatusOK, merchant.Response())
	}
}

// POST /v1/admin/invoices/:invoice_id/:action
func (h *Handler) invoiceTransition(c *gin.Context) {
	action, ok := domain.StrToInvoiceAction(c.Param("action"))
	if !ok {
		responseErr(c, http.StatusBadRequest, "unknown action", "")
		return
	}

	invoice, err := h.services.Invoices.Transition(c.Param("invoice_id"), action)
	if err != nil {
		h.responseServiceErr(c, "invoice transition", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, invoice.Response())
}

func (h *Handler) initPrivateRoutes(g *gin.RouterGroup) {
	g.POST("/webhook/updateProxyList", h.updateProxyList)
	g.POST("/webhook/getProxyList", h.getProxyList)

	g.POST("/merchants/:merchant_id/freeze", h.setFrozen(true))
	g.POST("/merchants/:merchant_id/unfreeze", h.setFrozen(false))

	g.POST("/invoices/:invoice_id/:action", h.invoiceTransition)
}
