package v1

import (
	"net/http"
	"strconv"

	"sharkpay/api/internal/domain"
	"sharkpay/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// POST /v1/dashboard/payment-links
func (h *Handler) linkCreate(c *gin.Context) {
	data, ok := bindJSON[newLinkData](c)
	if !ok {
		return
	}

	merchant := currentMerchant(c)
	link, err := h.services.PaymentLinks.Create(merchant.MerchantID, decimal.NewFromFloat(data.Amount), data.Description)
	if err != nil {
		h.responseServiceErr(c, "create payment link", err)
		return
	}

	h.log.TemplPaymentInfo("payment link created", link.LinkID, link.Amount, merchant.MerchantID, "")
	c.AbortWithStatusJSON(http.StatusOK, link.Response())
}

// GET /v1/dashboard/payment-links?limit=N
func (h *Handler) linkList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	links, err := h.services.PaymentLinks.List(currentMerchant(c).MerchantID, limit)
	if err != nil {
		h.responseServiceErr(c, "list payment links", err)
		return
	}

	response := make([]domain.ResponsePaymentLink, 0, len(links))
	for i := range links {
		response = append(response, links[i].Response())
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

// GET /v1/dashboard/payment-links/:link_id/qr
func (h *Handler) linkQr(c *gin.Context) {
	link, err := h.services.PaymentLinks.FindForMerchant(currentMerchant(c).MerchantID, c.Param("link_id"))
	if err != nil {
		h.responseServiceErr(c, "find payment link", err)
		return
	}

	h.qrCode(c, string(utils.MustMarshal(domain.QrSharkPay{
		Type:   domain.QR_SHARK_PAY,
		LinkID: link.LinkID,
		Amount: link.Amount,
	})))
}

func (h *Handler) initLinksRoutes(g *gin.RouterGroup) {
	g.POST("/payment-links", h.linkCreate)
	g.GET("/payment-links", h.linkList)
	g.GET("/payment-links/:link_id/qr", h.linkQr)
}
