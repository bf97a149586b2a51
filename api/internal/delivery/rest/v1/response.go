package v1

import (
	"errors"
	"net/http"

	"sharkpay/api/internal/domain"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

// POST /api/:merchant_id/:bill_id
type responseBill struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GET /pay/:merchant_id/:bill_id
type responseCheckout struct {
	BusinessName string `json:"business_name"`
	BillID       string `json:"bill_id"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	IsPaid       bool   `json:"is_paid"`
	WalletLinked bool   `json:"wallet_linked"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	QrPayload    string `json:"qr_payload"`
	QrURL        string `json:"qr_url"`
}

type responseSession struct {
	Redirect string `json:"redirect"`
}

type responseApiKey struct {
	ApiKey    string  `json:"api_key"`
	Masked    bool    `json:"masked"`
	CreatedAt *string `json:"created_at"`
}

type responseInvoiceDetails struct {
	domain.ResponseInvoice
	QrPayload string `json:"qr_payload"`
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}

func responseBillErr(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, responseBill{Success: false, Error: msg})
}

// responseServiceErr maps service errors, unexpected ones are logged with an error id.
func (h *Handler) responseServiceErr(c *gin.Context, msg string, err error) {
	status := domain.GetStatusByErr(err)
	if status == http.StatusInternalServerError {
		h.responseInternal(c, msg, err)
		return
	}
	responseErr(c, status, errMsg(err), "")
}

// errMsg drops the wrapped detail of sentinel errors
func errMsg(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
