package domain

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ErrMsgRateLimitExceeded         = "rate limit exceeded"
	ErrMsgInternalServerError       = "internal server error"
	ErrMsgParamsInternalServerError = "internal server error: %s"
	ErrMsgBadRequest                = "bad request"
	ErrMsgParamsBadRequest          = "bad request: %s"
	ErrMsgAccessError               = "access error"
	ErrMsgUnauthorized              = "unauthorized"
	ErrMsgNotFound                  = "not found"

	ErrMsgMerchantNotFound     = "Merchant not found"
	ErrMsgMerchantFrozen       = "Merchant account is frozen"
	ErrMsgAlreadyOnboarded     = "Already onboarded"
	ErrMsgInvalidSector        = "invalid sector"
	ErrMsgInvalidBusinessName  = "business name is required"
	ErrMsgWalletNotFound       = "wallet account not found"
	ErrMsgWalletFrozen         = "wallet account is frozen"
	ErrMsgWalletUnavailable    = "wallet service unavailable"
	ErrMsgLinkNotFound         = "payment link not found"
	ErrMsgAmountTooSmall       = "amount is below the minimum"
	ErrMsgEmptyDescription     = "description is required"
	ErrMsgBillAlreadyPaid      = "bill already paid"
	ErrMsgBillExists           = "bill already exists"
	ErrMsgBillBusy             = "bill is being created, retry later"
	ErrMsgInvoiceNotFound      = "invoice not found"
	ErrMsgInvalidPlan          = "invalid plan"
	ErrMsgPlanNotUpgrade       = "target plan must be higher than the current plan"
	ErrMsgOpenInvoiceExists    = "an upgrade invoice is already open"
	ErrMsgInvalidTransition    = "invalid invoice status transition"
	ErrMsgNotificationNotFound = "notification not found"

	// public bill api
	ErrMsgBillMissingAuth     = "Missing or invalid Authorization header"
	ErrMsgBillServerConfig    = "Server configuration error"
	ErrMsgBillForbidden       = "Forbidden: Invalid secret key"
	ErrMsgBillInvalidAmount   = "Invalid or missing 'amount'"
	ErrMsgBillInvalidWebhook  = "Invalid 'webhookUrl'"
	ErrMsgBillInvalidRedirect = "Invalid 'redirectUrl'"
	ErrMsgBillInvalidIds      = "Invalid merchant or bill id"
	ErrMsgBillInternal        = "Internal Server Error"

	CheckoutFallbackTitle = "Thanh toán hóa đơn"
)

var (
	ErrInternalServerError  = errors.New(ErrMsgInternalServerError)
	ErrUnauthorized         = errors.New(ErrMsgUnauthorized)
	ErrForbidden            = errors.New(ErrMsgBillForbidden)
	ErrServerMisconfigured  = errors.New(ErrMsgBillServerConfig)
	ErrMerchantNotFound     = errors.New(ErrMsgMerchantNotFound)
	ErrMerchantFrozen       = errors.New(ErrMsgMerchantFrozen)
	ErrAlreadyOnboarded     = errors.New(ErrMsgAlreadyOnboarded)
	ErrInvalidSector        = errors.New(ErrMsgInvalidSector)
	ErrInvalidBusinessName  = errors.New(ErrMsgInvalidBusinessName)
	ErrWalletNotFound       = errors.New(ErrMsgWalletNotFound)
	ErrWalletFrozen         = errors.New(ErrMsgWalletFrozen)
	ErrWalletUnavailable    = errors.New(ErrMsgWalletUnavailable)
	ErrLinkNotFound         = errors.New(ErrMsgLinkNotFound)
	ErrAmountTooSmall       = errors.New(ErrMsgAmountTooSmall)
	ErrEmptyDescription     = errors.New(ErrMsgEmptyDescription)
	ErrBillAlreadyPaid      = errors.New(ErrMsgBillAlreadyPaid)
	ErrBillBusy             = errors.New(ErrMsgBillBusy)
	ErrInvoiceNotFound      = errors.New(ErrMsgInvoiceNotFound)
	ErrInvalidPlan          = errors.New(ErrMsgInvalidPlan)
	ErrPlanNotUpgrade       = errors.New(ErrMsgPlanNotUpgrade)
	ErrOpenInvoiceExists    = errors.New(ErrMsgOpenInvoiceExists)
	ErrInvalidTransition    = errors.New(ErrMsgInvalidTransition)
	ErrNotificationNotFound = errors.New(ErrMsgNotificationNotFound)

	// payment messages that can never be applied
	ErrPaymentRejected = errors.New("payment rejected")
)

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrMerchantFrozen):
		status = http.StatusForbidden
	case errors.Is(err, ErrLinkNotFound),
		errors.Is(err, ErrInvoiceNotFound),
		errors.Is(err, ErrNotificationNotFound),
		errors.Is(err, ErrMerchantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrAlreadyOnboarded),
		errors.Is(err, ErrInvalidSector),
		errors.Is(err, ErrInvalidBusinessName),
		errors.Is(err, ErrWalletNotFound),
		errors.Is(err, ErrWalletFrozen),
		errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrEmptyDescription),
		errors.Is(err, ErrBillAlreadyPaid),
		errors.Is(err, ErrInvalidPlan),
		errors.Is(err, ErrPlanNotUpgrade):
		status = http.StatusBadRequest
	case errors.Is(err, ErrOpenInvoiceExists),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrBillBusy):
		status = http.StatusConflict
	case errors.Is(err, ErrWalletUnavailable):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	return status
}

// webhook body sent to the merchant
type WebhookInfo struct {
	Event         string          `json:"event"`
	BillID        string          `json:"billId"`
	MerchantID    string          `json:"merchantId"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	Status        string          `json:"status"`
	Timestamp     string          `json:"timestamp"`
}

const WebhookEventPaymentSuccess = "payment_success"

type ResponseMerchant struct {
	MerchantID   string          `json:"merchant_id"`
	Email        string          `json:"email"`
	BusinessName string          `json:"business_name"`
	Sector       string          `json:"sector"`
	Balance      decimal.Decimal `json:"balance"`
	CurrentPlan  string          `json:"current_plan"`
	IsFrozen     bool            `json:"is_frozen"`
	HasApiKey    bool            `json:"has_api_key"`
	WalletUID    string          `json:"wallet_uid"`
	CreatedAt    string          `json:"created_at"`
}

func (m *Merchants) Response() ResponseMerchant {
	return ResponseMerchant{
		MerchantID:   m.MerchantID,
		Email:        m.Email,
		BusinessName: m.BusinessName,
		Sector:       m.Sector,
		Balance:      m.Balance,
		CurrentPlan:  m.CurrentPlan.ToString(),
		IsFrozen:     m.IsFrozen,
		HasApiKey:    m.ApiKey != "",
		WalletUID:    m.WalletUID,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

type ResponsePaymentLink struct {
	LinkID       string          `json:"link_id"`
	BillID       string          `json:"bill_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	IsPaid       bool            `json:"is_paid"`
	PaidByUserID *string         `json:"paid_by_user_id"`
	DeepLink     string          `json:"deep_link"`
	CreatedAt    string          `json:"created_at"`
}

func (l *PaymentLinks) Response() ResponsePaymentLink {
	return ResponsePaymentLink{
		LinkID:       l.LinkID,
		BillID:       l.BillID,
		Amount:       l.Amount,
		Description:  l.Description,
		Status:       l.Status.ToString(),
		IsPaid:       l.IsPaid(),
		PaidByUserID: l.PaidByUserID,
		DeepLink:     DeepLink(l.LinkID),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}

type ResponseInvoice struct {
	InvoiceID  string          `json:"invoice_id"`
	TargetPlan string          `json:"target_plan"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	IsPaid     bool            `json:"is_paid"`
	CreatedAt  string          `json:"created_at"`
}

func (i *Invoices) Response() ResponseInvoice {
	return ResponseInvoice{
		InvoiceID:  i.InvoiceID,
		TargetPlan: i.TargetPlan.ToString(),
		Amount:     i.Amount,
		Status:     i.Status.ToString(),
		IsPaid:     i.Status.IsPaid(),
		CreatedAt:  i.CreatedAt.Format(time.RFC3339),
	}
}

type ResponseTransaction struct {
	TransactionID string          `json:"transaction_id"`
	SenderID      string          `json:"sender_id"`
	LinkID        string          `json:"link_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	Timestamp     string          `json:"timestamp"`
}

func (t *Transactions) Response() ResponseTransaction {
	return ResponseTransaction{
		TransactionID: t.TransactionID,
		SenderID:      t.SenderID,
		LinkID:        t.LinkID,
		Amount:        t.Amount,
		Fee:           t.Fee,
		NetAmount:     t.NetAmount,
		Category:      t.Category.ToString(),
		Description:   t.Description,
		Status:        t.Status.ToString(),
		Timestamp:     t.Timestamp.Format(time.RFC3339),
	}
}

type ResponseNotification struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func (n *Notifications) Response() ResponseNotification {
	return ResponseNotification{
		ID:        n.ID,
		Type:      n.Type.ToString(),
		Title:     n.Title,
		Body:      n.Body,
		InvoiceID: n.InvoiceID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

type Overview struct {
	Merchant     ResponseMerchant      `json:"merchant"`
	Transactions []ResponseTransaction `json:"transactions"`
	Links        []ResponsePaymentLink `json:"links"`
	TotalRevenue decimal.Decimal       `json:"total_revenue"`
	PaidLinks    int                   `json:"paid_links"`
	Chart        []ChartPoint          `json:"chart"`
}
