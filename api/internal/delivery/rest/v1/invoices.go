package v1

import (
	"net/http"

	"sharkpay/api/internal/domain"
	"sharkpay/pkg/utils"

	"github.com/gin-gonic/gin"
)

func invoiceQrPayload(invoice *domain.Invoices) string {
	return string(utils.MustMarshal(domain.QrUpgradeInvoice{
		Type:      domain.QR_UPGRADE_INVOICE,
		InvoiceID: invoice.InvoiceID,
		Amount:    invoice.Amount,
	}))
}

// POST /v1/dashboard/invoices/upgrade
func (h *Handler) invoiceUpgrade(c *gin.Context) {
	data, ok := bindJSON[upgradeData](c)
	if !ok {
		return
	}

	target, ok := domain.StrToPlan(data.TargetPlan)
	if !ok {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgInvalidPlan, "")
		return
	}

	invoice, err := h.services.Invoices.RequestUpgrade(currentMerchant(c).MerchantID, target)
	if err != nil {
		h.responseServiceErr(c, "request upgrade", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, responseInvoiceDetails{invoice.Response(), invoiceQrPayload(invoice)})
}

// GET /v1/dashboard/invoices
func (h *Handler) invoiceList(c *gin.Context) {
	invoices, err := h.services.Invoices.List(currentMerchant(c).MerchantID)
	if err != nil {
		h.responseServiceErr(c, "list invoices", err)
		return
	}

	response := make([]domain.ResponseInvoice, 0, len(invoices))
	for i := range invoices {
		response = append(response, invoices[i].Response())
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

// GET /v1/dashboard/invoices/:invoice_id
func (h *Handler) invoiceGet(c *gin.Context) {
	invoice, err := h.services.Invoices.FindForMerchant(currentMerchant(c).MerchantID, c.Param("invoice_id"))
	if err != nil {
		h.responseServiceErr(c, "find invoice", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, responseInvoiceDetails{invoice.Response(), invoiceQrPayload(invoice)})
}

// GET /v1/dashboard/invoices/:invoice_id/qr
func (h *Handler) invoiceQr(c *gin.Context) {
	invoice, err := h.services.Invoices.FindForMerchant(currentMerchant(c).MerchantID, c.Param("invoice_id"))
	if err != nil {
		h.responseServiceErr(c, "find invoice", err)
		return
	}
	h.qrCode(c, invoiceQrPayload(invoice))
}

func (h *Handler) initInvoicesRoutes(g *gin.RouterGroup) {
	g.POST("/invoices/upgrade", h.invoiceUpgrade)
	g.GET("/invoices", h.invoiceList)
	g.GET("/invoices/:invoice_id", h.invoiceGet)
	g.GET("/invoices/:invoice_id/qr", h.invoiceQr)
}
