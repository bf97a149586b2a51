package cli

import (
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var noNats bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the api, the payment consumer and the webhook outbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(!noNats)

			identity, err := newIdentity(cmd.Context(), a.Config)
			if err != nil {
				return err
			}
			a.Identity = identity

			opts.dlog().Info("serve", "addr", a.Config.Api.Ipv4, "testing", a.Config.Testing.Enabled, "redis", a.Redis != nil)
			return a.Start()
		},
	}
	cmd.Flags().BoolVar(&noNats, "no-nats", false, "serve without the wallet connection, payments are not consumed")
	return cmd
}
