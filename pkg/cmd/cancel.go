package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/exchange/retry"
)

var cancelCmd = &cobra.Command{
	Use:          "cancel",
	Short:        "cancel an open order, or all of them",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}
		symbol = normalizeSymbol(symbol)

		orderID, err := cmd.Flags().GetUint64("order-id")
		if err != nil {
			return fmt.Errorf("can't get the order id from flags: %w", err)
		}

		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return fmt.Errorf("can't get the all flag: %w", err)
		}

		if !all && orderID == 0 {
			return fmt.Errorf("either --order-id or --all is required")
		}

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		if all {
			if err := retry.CancelAllOrdersUntilSuccessful(ctx, t, symbol); err != nil {
				return err
			}
			green.Printf("✓ all open orders of %s canceled\n", symbol)
			return nil
		}

		if err := retry.CancelOrderUntilSuccessful(ctx, t, symbol, orderID); err != nil {
			return err
		}

		green.Printf("✓ order #%d canceled\n", orderID)
		return nil
	},
}

func init() {
	cancelCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	cancelCmd.Flags().Uint64("order-id", 0, "the exchange order id to cancel")
	cancelCmd.Flags().Bool("all", false, "cancel all open orders of the symbol")

	RootCmd.AddCommand(cancelCmd)
}
