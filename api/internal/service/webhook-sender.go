package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/cache"
	"sharkpay/api/internal/logger"
	"sharkpay/pkg/rr"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/proxy"
)

const (
	SignatureHeader = "X-Shark-Signature"

	webhookTimeout    = 5 * time.Second
	webhookSentTTL    = 24 * time.Hour
	webhookRetryDelay = 5 * time.Second
)

var ErrWebhookAlreadySent = errors.New("webhook already sent")

type WebhookSenderService struct {
	rr         rr.RoundRobin
	list       *atomic.Pointer[[]string]
	l          logger.Logger
	cache      *cache.Cache
	validate   *validator.Validate
	retryDelay time.Duration
}

func NewWebhookSenderService(proxyList []string, l logger.Logger) *WebhookSenderService {
	var list atomic.Pointer[[]string]

	s := &WebhookSenderService{
		rr:         rr.New(&list),
		list:       &list,
		l:          l,
		cache:      cache.InitStorage(),
		validate:   validator.New(),
		retryDelay: webhookRetryDelay,
	}
	s.UpdateList(proxyList)
	return s
}

// Sign returns hex(HMAC-SHA256(body, key)).
func Sign(body []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type headerRoundTripper struct {
	r http.RoundTripper
}

func (h headerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("User-Agent", "sharkpay-webhook")
	return h.r.RoundTrip(r)
}

func (s *WebhookSenderService) newClient(stringProxy string) (*http.Client, error) {
	transport := &http.Transport{DisableKeepAlives: true}

	if stringProxy != "" {
		socks, err := s.parseProxy(stringProxy)
		if err != nil {
			return nil, fmt.Errorf("can't parse proxy: %w", err)
		}

		dialer, err := proxy.SOCKS5("tcp", net.JoinHostPort(socks.Host, socks.Port), &proxy.Auth{User: socks.User, Password: socks.Pass}, proxy.Direct)
		if err != nil {
			return nil, err
		}
		transport.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		}
	}

	return &http.Client{Transport: headerRoundTripper{r: transport}, Timeout: webhookTimeout}, nil
}

func (s *WebhookSenderService) post(url, stringProxy, signature string, payload []byte) error {
	client, err := s.newClient(stringProxy)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}
	return nil
}

// Send posts the signed payload, rotating through the proxies on failure.
// Without proxies the request goes out directly.
func (s *WebhookSenderService) Send(url string, signingKey string, info domain.WebhookInfo) error {
	if s.cache.Load(info.TransactionID) != nil {
		return ErrWebhookAlreadySent
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}

	var signature string
	if signingKey != "" {
		signature = Sign(payload, signingKey)
	}

	maxAttempts := max(s.rr.Len(), 1)
	for attempts := 1; ; attempts++ {
		stringProxy, _ := s.rr.Next()

		err = s.post(url, stringProxy, signature, payload)
		if err == nil {
			break
		}

		s.l.TemplWebhookErr("send webhook error: "+err.Error(), url, attempts, orNA(stringProxy), payload)
		if attempts >= maxAttempts {
			return fmt.Errorf("max attempts exceeded: %w", err)
		}
		time.Sleep(s.retryDelay)
	}

	s.cache.Set(info.TransactionID, true, webhookSentTTL)
	s.l.TemplWebhookInfo("webhook sent", url, info.TransactionID)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return logger.NA
	}
	return s
}

type parsedProxy struct {
	User string `validate:"required"`
	Pass string `validate:"required"`
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`
}

// login:password@ip:port
func (s *WebhookSenderService) parseProxy(str string) (parsedProxy, error) {
	creds, hostport, ok := strings.Cut(strings.TrimSpace(str), "@")
	if !ok {
		return parsedProxy{}, fmt.Errorf("invalid proxy format: given: %s", str)
	}

	user, pass, ok := strings.Cut(creds, ":")
	if !ok {
		return parsedProxy{}, fmt.Errorf("invalid proxy format: given: %s", str)
	}

	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return parsedProxy{}, fmt.Errorf("invalid proxy format: given: %s", str)
	}

	pp := parsedProxy{User: user, Pass: pass, Host: host, Port: port}
	if err := s.validate.Struct(pp); err != nil {
		return parsedProxy{}, err
	}
	return pp, nil
}

// UpdateList replaces the proxy list, invalid entries are skipped.
func (s *WebhookSenderService) UpdateList(proxies []string) {
	validProxies := []string{}

	for _, p := range proxies {
		if _, err := s.parseProxy(p); err != nil {
			s.l.Error("invalid proxy: "+err.Error(), "webhooks", false)
			continue
		}
		validProxies = append(validProxies, p)
	}

	s.list.Store(&validProxies)
}

func (s *WebhookSenderService) GetList() []string {
	listPtr := s.list.Load()
	if listPtr == nil {
		return []string{}
	}
	return *listPtr
}
