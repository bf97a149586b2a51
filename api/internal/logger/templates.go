package logger

import (
	"github.com/shopspring/decimal"

	"sharkpay/pkg/logsink"
)

func (l Logger) TemplPaymentErr(message string, errorId string, linkId string, amount decimal.Decimal, uri string, merchantId string, ip string) string {
	l.Error(message, logsink.LogstreamPayments, true, "link_id", linkId, "amount", amount.String(), "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplPaymentInfo(message string, linkId string, amount decimal.Decimal, merchantId string, transactionId string) {
	l.Info(message, logsink.LogstreamPayments, true, "link_id", linkId, "amount", amount.String(), "merchant_id", merchantId, "transaction_id", transactionId)
}

// request failures that carry an error id back to the client
func (l Logger) TemplRequestErr(message string, errorId string, uri string, ip string, err error) string {
	l.Error(message, logsink.LogstreamPayments, true, "uri", uri, "ip", ip, "error_id", errorId, "error", errString(err))
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, logsink.LogstreamFatal, true, "error", errString(err), "ipv4", ipv4)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, logsink.LogstreamNats, true, "nats_url", natsUrl, "error", errString(err))
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, logsink.LogstreamNats, true, "nats_url", natsUrl, "error", NA)
}

func (l Logger) TemplWebhookErr(message, url string, attempts int, proxy string, payload []byte) {
	l.Error(message, logsink.LogstreamWebhooks, true, "url", url, "attempts", attempts, "proxy", proxy, "payload", string(payload))
}

func (l Logger) TemplWebhookInfo(message, url string, transactionId string) {
	l.Info(message, logsink.LogstreamWebhooks, true, "url", url, "transaction_id", transactionId)
}

func errString(err error) string {
	if err == nil {
		return NA
	}
	return err.Error()
}
