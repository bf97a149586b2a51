package service

import (
	"fmt"
	"strings"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/nats"
)

type WalletsService struct {
	natsinfra *nats.NatsInfra
	config    *config.Config
}

func NewWalletsService(natsinfra *nats.NatsInfra, config *config.Config) *WalletsService {
	return &WalletsService{natsinfra: natsinfra, config: config}
}

// VerifyAccount asks the wallet service whether the account can receive payouts.
func (s *WalletsService) VerifyAccount(walletUID string) error {
	if strings.TrimSpace(walletUID) == "" {
		return domain.ErrWalletNotFound
	}
	if s.config.Testing.Enabled || s.natsinfra == nil {
		return nil
	}

	res, err := s.natsinfra.ReqVerifyAccount(walletUID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}

	switch {
	case !res.Exists:
		return domain.ErrWalletNotFound
	case res.Frozen:
		return domain.ErrWalletFrozen
	}
	return nil
}
