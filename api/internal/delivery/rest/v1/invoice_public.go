// PUBLIC BILL ROUTES

package v1

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type billBody struct {
	billURLs
	Amount      decimal.Decimal
	Description string
}

// amounts outside this exponent range are never valid and are costly to compare
const maxAmountExp = 18

// parseBillBody accepts amount only as a positive json number
// with at most 2 decimals and not above max.
func parseBillBody(raw []byte, max decimal.Decimal) (*billBody, string) {
	var body struct {
		Amount      json.RawMessage `json:"amount"`
		Description string          `json:"description"`
		RedirectURL string          `json:"redirectUrl"`
		WebhookURL  string          `json:"webhookUrl"`
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&body); err != nil {
		return nil, domain.ErrMsgBillInvalidAmount
	}

	var amount json.Number
	dec = json.NewDecoder(bytes.NewReader(body.Amount))
	dec.UseNumber()
	if len(body.Amount) == 0 || body.Amount[0] == '"' || dec.Decode(&amount) != nil {
		return nil, domain.ErrMsgBillInvalidAmount
	}
	value, err := decimal.NewFromString(amount.String())
	if err != nil || !value.IsPositive() {
		return nil, domain.ErrMsgBillInvalidAmount
	}
	if exp := value.Exponent(); exp > maxAmountExp || exp < -maxAmountExp {
		return nil, domain.ErrMsgBillInvalidAmount
	}
	if value.GreaterThan(max) || !value.Equal(value.Truncate(2)) {
		return nil, domain.ErrMsgBillInvalidAmount
	}

	urls := billURLs{RedirectURL: strings.TrimSpace(body.RedirectURL), WebhookURL: strings.TrimSpace(body.WebhookURL)}
	if err := validate.Var(urls.WebhookURL, "omitempty,weburl,max=2048"); err != nil {
		return nil, domain.ErrMsgBillInvalidWebhook
	}
	if err := validate.Var(urls.RedirectURL, "omitempty,weburl,max=2048"); err != nil {
		return nil, domain.ErrMsgBillInvalidRedirect
	}

	return &billBody{billURLs: urls, Amount: value, Description: strings.TrimSpace(body.Description)}, ""
}

func bearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// POST /api/:merchant_id/:bill_id
func (h *Handler) billCreate(c *gin.Context) {
	ids := billIDs{MerchantID: c.Param("merchant_id"), BillID: c.Param("bill_id")}

	token, ok := bearerToken(c)
	if !ok {
		responseBillErr(c, http.StatusUnauthorized, domain.ErrMsgBillMissingAuth)
		return
	}

	if err := h.services.Merchants.AuthorizeBillToken(ids.MerchantID, token); err != nil {
		switch {
		case errors.Is(err, domain.ErrServerMisconfigured):
			h.log.TemplRequestErr("bill api: no secret configured", logger.GenErrorId(), c.Request.RequestURI, c.ClientIP(), err)
			responseBillErr(c, http.StatusInternalServerError, domain.ErrMsgBillServerConfig)
		case errors.Is(err, domain.ErrForbidden):
			responseBillErr(c, http.StatusForbidden, domain.ErrMsgBillForbidden)
		default:
			h.log.TemplRequestErr("bill api: authorize: "+err.Error(), logger.GenErrorId(), c.Request.RequestURI, c.ClientIP(), err)
			responseBillErr(c, http.StatusInternalServerError, domain.ErrMsgBillInternal)
		}
		return
	}

	// keyed by a digest so raw secrets never reach the limiter storage
	digest := sha256.Sum256([]byte(token))
	allowed, err := h.services.RateLimiter.Allow(c.Request.Context(), hex.EncodeToString(digest[:]))
	if err != nil {
		h.log.TemplRequestErr("bill api: rate limiter: "+err.Error(), logger.GenErrorId(), c.Request.RequestURI, c.ClientIP(), err)
	}
	if err == nil && !allowed {
		responseBillErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded)
		return
	}

	if err := validate.Struct(ids); err != nil {
		responseBillErr(c, http.StatusBadRequest, domain.ErrMsgBillInvalidIds)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		responseBillErr(c, http.StatusBadRequest, domain.ErrMsgBillInvalidAmount)
		return
	}
	body, msg := parseBillBody(raw, decimal.NewFromInt(h.config.Billing.MaxBillAmount))
	if body == nil {
		responseBillErr(c, http.StatusBadRequest, msg)
		return
	}

	res, err := h.services.PaymentLinks.CreateBill(c.Request.Context(), service.BillRequest{
		MerchantID:  ids.MerchantID,
		BillID:      ids.BillID,
		Amount:      body.Amount,
		Description: body.Description,
		RedirectURL: body.RedirectURL,
		WebhookURL:  body.WebhookURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBillAlreadyPaid),
			errors.Is(err, domain.ErrMerchantNotFound),
			errors.Is(err, domain.ErrMerchantFrozen):
			responseBillErr(c, http.StatusBadRequest, errMsg(err))
		case errors.Is(err, domain.ErrBillBusy):
			responseBillErr(c, http.StatusConflict, errMsg(err))
		default:
			h.log.TemplPaymentErr("bill api: create: "+err.Error(), logger.GenErrorId(), domain.BillLinkID(ids.MerchantID, ids.BillID), body.Amount, c.Request.RequestURI, ids.MerchantID, c.ClientIP())
			responseBillErr(c, http.StatusInternalServerError, domain.ErrMsgBillInternal)
		}
		return
	}

	response := responseBill{Success: true, CheckoutURL: res.CheckoutURL}
	if res.Existing {
		response.Message = domain.ErrMsgBillExists
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

func billPreflight(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}

// GET /pay/:merchant_id/:bill_id
func (h *Handler) checkout(c *gin.Context) {
	merchantID, billID := c.Param("merchant_id"), c.Param("bill_id")

	link, err := h.services.PaymentLinks.FindBill(merchantID, billID)
	if err != nil {
		h.responseServiceErr(c, "checkout: find bill", err)
		return
	}

	response := responseCheckout{
		BusinessName: domain.CheckoutFallbackTitle,
		BillID:       link.BillID,
		Description:  link.Description,
		Amount:       link.Amount.String(),
		Status:       link.Status.ToString(),
		IsPaid:       link.IsPaid(),
		RedirectURL:  link.RedirectURL,
		QrPayload:    domain.DeepLink(link.LinkID),
		QrURL:        h.services.PaymentLinks.CheckoutURL(merchantID, billID) + "/qr",
	}

	merchant, err := h.services.Merchants.FindByID(h.db, merchantID)
	if err == nil {
		if merchant.BusinessName != "" {
			response.BusinessName = merchant.BusinessName
		}
		response.WalletLinked = merchant.HasWallet()
	} else if !errors.Is(err, domain.ErrMerchantNotFound) {
		h.responseInternal(c, "checkout: find merchant", err)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, response)
}

// GET /pay/:merchant_id/:bill_id/qr
func (h *Handler) checkoutQr(c *gin.Context) {
	link, err := h.services.PaymentLinks.FindBill(c.Param("merchant_id"), c.Param("bill_id"))
	if err != nil {
		h.responseServiceErr(c, "checkout qr: find bill", err)
		return
	}
	h.qrCode(c, domain.DeepLink(link.LinkID))
}

func (h *Handler) qrCode(c *gin.Context, content string) {
	qr, err := h.services.QrCodes.FindOrNew(content)
	if err != nil {
		h.responseInternal(c, "qr code find or new", err)
		return
	}
	c.Data(http.StatusOK, "image/png", qr)
}

func (h *Handler) initBillRoutes(r *gin.Engine) {
	g := r.Group("/api", billCors())
	g.POST("/:merchant_id/:bill_id", h.billCreate)
	g.OPTIONS("/:merchant_id/:bill_id", billPreflight)
}

func (h *Handler) initCheckoutRoutes(r *gin.Engine) {
	r.GET("/pay/:merchant_id/:bill_id", h.checkout)
	r.GET("/pay/:merchant_id/:bill_id/qr", h.checkoutQr)
}
