package service

import (
	"context"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/cache"
	"sharkpay/api/internal/infra/nats"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/repository"
	"sharkpay/pkg/nats/natsdomain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Merchants interface {
	FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	Onboard(ctx context.Context, idToken, businessName, sector string) (*domain.Merchants, error)
	GenerateApiKey(merchantID string) (*domain.Merchants, error)
	// checks a bill api bearer token against the platform secret and the merchant key
	AuthorizeBillToken(merchantID, token string) error
	LinkWallet(merchantID, walletUID string) (*domain.Merchants, error)
	SetFrozen(merchantID string, frozen bool) (*domain.Merchants, error)
}

type Sessions interface {
	Start(ctx context.Context, idToken string) (*SessionResult, error)
	Authenticate(ctx context.Context, cookie string) (*domain.Merchants, error)
}

type PaymentLinks interface {
	Create(merchantID string, amount decimal.Decimal, description string) (*domain.PaymentLinks, error)
	List(merchantID string, limit int) ([]domain.PaymentLinks, error)
	FindForMerchant(merchantID, linkID string) (*domain.PaymentLinks, error)
	CreateBill(ctx context.Context, req BillRequest) (*BillResult, error)
	// Tries to find from cache, if not found, searches the database
	FindBill(merchantID, billID string) (*domain.PaymentLinks, error)
	CheckoutURL(merchantID, billID string) string
	// refreshes the cached copy after a status change
	Refresh(link *domain.PaymentLinks)
}

type Payments interface {
	StartConsume(ctx context.Context) error
	Handle(payment *natsdomain.PaymentSettled) error
}

type Simulator interface {
	PayLink(ctx context.Context, linkID string) (*natsdomain.PaymentSettled, error)
	PayInvoice(ctx context.Context, invoiceID string) (*natsdomain.PaymentSettled, error)
}

type Invoices interface {
	RequestUpgrade(merchantID string, target domain.Plan) (*domain.Invoices, error)
	List(merchantID string) ([]domain.Invoices, error)
	FindForMerchant(merchantID, invoiceID string) (*domain.Invoices, error)
	Transition(invoiceID string, action domain.InvoiceAction) (*domain.Invoices, error)
}

type Transactions interface {
	List(merchantID string) ([]domain.Transactions, error)
	Analytics(merchantID string) (*domain.Analytics, error)
	Overview(merchant *domain.Merchants) (*domain.Overview, error)
}

type Notifications interface {
	List(merchantID string) ([]domain.Notifications, error)
	MarkRead(merchantID string, id uint) error
}

type Wallets interface {
	VerifyAccount(walletUID string) error
}

type QrCodes interface {
	// generates qr code png and saves it to cache
	New(content string) ([]byte, error)
	// returns qr code from cache or generates new one
	FindOrNew(content string) ([]byte, error)
}

type Locker interface {
	// TryLock returns ok=false when the key is held by someone else
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type OutboxEvents interface {
	StartProcessEvents(ctx context.Context)
	ProcessBatch() int
}

type WebhookSender interface {
	Send(url string, signingKey string, info domain.WebhookInfo) error
	UpdateList(proxies []string)
	GetList() []string
}

type Services struct {
	// autostart
	Payments     Payments
	OutboxEvents OutboxEvents

	Merchants     Merchants
	Sessions      Sessions
	PaymentLinks  PaymentLinks
	Invoices      Invoices
	Transactions  Transactions
	Notifications Notifications
	Wallets       Wallets
	QrCodes       QrCodes
	RateLimiter   RateLimiter
	WebhookSender WebhookSender
	Simulator     Simulator
}

type Deps struct {
	Db       *gorm.DB
	Nats     *nats.NatsInfra // nil for commands that never touch the wallet
	Redis    *goredis.Client // nil falls back to in-process cache
	Identity IdentityProvider
	Log      logger.Logger
	Config   *config.Config
}

func NewServices(d Deps) *Services {
	repos := repository.New()

	var locker Locker
	var limiter RateLimiter
	if d.Redis != nil {
		locker = NewRedisLocker(d.Redis)
		limiter = NewRedisRateLimiter(d.Redis, d.Config.Billing.RateLimit, d.Config.Billing.RateWindow)
	} else {
		locker = NewLockerService(cache.InitStorage())
		limiter = NewCacheRateLimiter(cache.InitStorage(), d.Config.Billing.RateLimit, d.Config.Billing.RateWindow)
	}

	webhookSender := NewWebhookSenderService(d.Config.ProxyList, d.Log)
	paymentLinks := NewPaymentLinksService(d.Db, repos.PaymentLinks, repos.Merchants, locker, cache.InitStorage(), d.Log, d.Config)

	return &Services{
		Payments:      NewPaymentsService(d.Db, repos, paymentLinks, d.Nats, d.Log),
		OutboxEvents:  NewOutboxEventsService(d.Db, repos.Events, repos.Merchants, webhookSender, d.Log, d.Config),
		Merchants:     NewMerchantsService(d.Db, repos.Merchants, repos.Notifications, d.Identity, NewWalletsService(d.Nats, d.Config), d.Config),
		Sessions:      NewSessionsService(d.Db, repos.Merchants, d.Identity, d.Config),
		PaymentLinks:  paymentLinks,
		Invoices:      NewInvoicesService(d.Db, repos.Invoices, repos.Merchants, repos.Notifications, d.Log, d.Config),
		Transactions:  NewTransactionsService(d.Db, repos.Transactions, repos.PaymentLinks, d.Config),
		Notifications: NewNotificationsService(d.Db, repos.Notifications),
		Wallets:       NewWalletsService(d.Nats, d.Config),
		QrCodes:       NewQrCodesService(cache.InitStorage()),
		RateLimiter:   limiter,
		WebhookSender: webhookSender,
		Simulator:     NewSimulatorService(d.Db, repos.PaymentLinks, repos.Invoices, d.Nats, d.Config),
	}
}
