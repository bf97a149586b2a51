package service

import (
	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/repository"

	"gorm.io/gorm"
)

const (
	txListLimit         = 50
	analyticsLimit      = 200
	overviewTxLimit     = 20
	overviewLinksLimit  = 5
	analyticsDays       = 14
	overviewChartPoints = 7
)

type TransactionsService struct {
	repo   repository.Transactions
	links  repository.PaymentLinks
	db     *gorm.DB
	config *config.Config
}

func NewTransactionsService(db *gorm.DB, repo repository.Transactions, links repository.PaymentLinks, config *config.Config) *TransactionsService {
	return &TransactionsService{repo: repo, links: links, db: db, config: config}
}

func (s *TransactionsService) List(merchantID string) ([]domain.Transactions, error) {
	return s.repo.ListByReceiver(s.db, merchantID, txListLimit, false)
}

func (s *TransactionsService) Analytics(merchantID string) (*domain.Analytics, error) {
	txs, err := s.repo.ListByReceiver(s.db, merchantID, analyticsLimit, true)
	if err != nil {
		return nil, err
	}
	analytics := BuildAnalytics(txs, s.config.Location(), analyticsDays)
	return &analytics, nil
}

func (s *TransactionsService) Overview(merchant *domain.Merchants) (*domain.Overview, error) {
	txs, err := s.repo.ListByReceiver(s.db, merchant.MerchantID, overviewTxLimit, false)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListByMerchant(s.db, merchant.MerchantID, overviewLinksLimit)
	if err != nil {
		return nil, err
	}

	overview := &domain.Overview{
		Merchant:     merchant.Response(),
		Transactions: make([]domain.ResponseTransaction, 0, len(txs)),
		Links:        make([]domain.ResponsePaymentLink, 0, len(links)),
		Chart:        BuildChart(txs, s.config.Location(), overviewChartPoints),
	}

	for i := range txs {
		overview.Transactions = append(overview.Transactions, txs[i].Response())
		if txs[i].Status == domain.TX_COMPLETED {
			overview.TotalRevenue = overview.TotalRevenue.Add(txs[i].NetAmount)
		}
	}
	for i := range links {
		overview.Links = append(overview.Links, links[i].Response())
		if links[i].IsPaid() {
			overview.PaidLinks++
		}
	}

	return overview, nil
}
