// Package cli holds the sharkpay commands: the api server and the admin tools.
package cli

import (
	"context"
	"os"

	"sharkpay/api/internal/app"
	"sharkpay/api/internal/config"
	"sharkpay/api/internal/infra/firebase"
	"sharkpay/api/internal/infra/nats"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/infra/redis"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/service"
	"sharkpay/pkg/dlog"

	"github.com/spf13/cobra"
)

type options struct {
	debug bool
}

func (o *options) dlog() dlog.Dlog {
	return dlog.Init(o.debug)
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sharkpay",
		Short:         "SharkPay merchant payment gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose console output")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newMerchantCmd(opts),
		newInvoiceCmd(opts),
		newSimulateCmd(opts),
	)
	return root
}

func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		dlog.Init(false).Error(err.Error())
		os.Exit(1)
	}
}

// newApp connects everything the command needs. Nats is optional for
// admin commands and required for simulate-payment. Only serve verifies
// identities, so the identity provider is left to it.
func newApp(withNats bool) *app.App {
	cfg := config.ReadConfig()
	log := logger.Init(cfg)

	a := &app.App{
		Config: cfg,
		Db:     postgres.Init(cfg),
		Redis:  redis.Init(cfg, log),
		Log:    log,
	}

	if withNats {
		a.NatsInfra = nats.Init(cfg, log)
	}
	return a
}

func newIdentity(ctx context.Context, cfg *config.Config) (service.IdentityProvider, error) {
	if cfg.Testing.Enabled {
		return service.TestingIdentity{}, nil
	}

	client, err := firebase.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return service.NewFirebaseIdentity(client), nil
}
