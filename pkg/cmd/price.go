package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:          "price",
	Short:        "show the last traded price of a symbol",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}
		symbol = normalizeSymbol(symbol)

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		price, err := t.QueryPrice(ctx, symbol)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", symbol, price.String())
		return nil
	},
}

func init() {
	priceCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")

	RootCmd.AddCommand(priceCmd)
}
