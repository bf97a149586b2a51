package cli

import (
	"fmt"

	"sharkpay/api/internal/domain"

	"github.com/spf13/cobra"
)

func newMerchantCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchant",
		Short: "Merchant administration",
	}

	for _, frozen := range []bool{true, false} {
		use := "unfreeze"
		if frozen {
			use = "freeze"
		}

		cmd.AddCommand(&cobra.Command{
			Use:   use + " <merchant_id>",
			Short: use + " a merchant account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := newApp(false)

				merchant, err := a.Services().Merchants.SetFrozen(args[0], frozen)
				if err != nil {
					return err
				}
				opts.dlog().Info("merchant updated", "merchant_id", merchant.MerchantID, "frozen", merchant.IsFrozen)
				return nil
			},
		})
	}
	return cmd
}

func newInvoiceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "invoice <action> <invoice_id>",
		Short:     "Move an upgrade invoice through its lifecycle",
		Long:      "Actions: approve, cancel, suspend, resume, refund.",
		ValidArgs: domain.InvoiceActions[:],
		Args:      cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := domain.StrToInvoiceAction(args[0])
			if !ok {
				return fmt.Errorf("unknown action %q", args[0])
			}

			a := newApp(false)

			invoice, err := a.Services().Invoices.Transition(args[1], action)
			if err != nil {
				return err
			}
			opts.dlog().Info("invoice updated", "invoice_id", invoice.InvoiceID, "status", invoice.Status.ToString())
			return nil
		},
	}
}
