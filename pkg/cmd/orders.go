package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/exchange/retry"
)

var ordersCmd = &cobra.Command{
	Use:          "orders",
	Short:        "list open orders",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		openOrders, err := retry.QueryOpenOrdersUntilSuccessful(ctx, t, normalizeSymbol(symbol))
		if err != nil {
			return err
		}

		if len(openOrders) == 0 {
			fmt.Println("no open orders")
			return nil
		}

		printOrderTable(openOrders...)
		return nil
	},
}

func init() {
	ordersCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")

	RootCmd.AddCommand(ordersCmd)
}
