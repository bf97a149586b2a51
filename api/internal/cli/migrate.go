package cli

import (
	"errors"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/infra/postgres"

	"github.com/spf13/cobra"
)

var errDropInProd = errors.New("refusing to drop tables in prod")

func newMigrateCmd(opts *options) *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.ReadConfig()
			if drop && cfg.Prod_env {
				return errDropInProd
			}

			// Init migrates on open
			db := postgres.Init(cfg)
			if drop {
				if err := postgres.DropTables(db); err != nil {
					return err
				}
				if err := postgres.Migrate(db); err != nil {
					return err
				}
			}

			opts.dlog().Info("schema is up to date", "dropped", drop)
			return nil
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop all tables first")
	return cmd
}
