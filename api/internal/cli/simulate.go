package cli

import (
	"context"

	"sharkpay/api/internal/service"
	"sharkpay/pkg/nats/natsdomain"

	"github.com/spf13/cobra"
)

// testing mode only, the wallet publishes real payments
func newSimulateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate-payment",
		Short: "Publish a settled payment as the wallet would (testing mode)",
	}

	kinds := []struct {
		use string
		pay func(ctx context.Context, s service.Simulator, id string) (*natsdomain.PaymentSettled, error)
	}{
		{"link <link_id>", func(ctx context.Context, s service.Simulator, id string) (*natsdomain.PaymentSettled, error) {
			return s.PayLink(ctx, id)
		}},
		{"invoice <invoice_id>", func(ctx context.Context, s service.Simulator, id string) (*natsdomain.PaymentSettled, error) {
			return s.PayInvoice(ctx, id)
		}},
	}

	for _, kind := range kinds {
		cmd.AddCommand(&cobra.Command{
			Use:  kind.use,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := newApp(true)
				defer a.NatsInfra.Close()

				payment, err := kind.pay(cmd.Context(), a.Services().Simulator, args[0])
				if err != nil {
					return err
				}
				opts.dlog().Info("payment published",
					"transaction_id", payment.TransactionID,
					"type", payment.Type,
					"amount", payment.Amount.String(),
					"fee", payment.Fee.String(),
				)
				return nil
			},
		})
	}
	return cmd
}
