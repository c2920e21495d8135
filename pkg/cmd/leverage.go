package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var leverageCmd = &cobra.Command{
	Use:          "leverage",
	Short:        "change the leverage of a symbol",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}
		symbol = normalizeSymbol(symbol)

		leverage, err := cmd.Flags().GetInt("set")
		if err != nil {
			return fmt.Errorf("can't get the leverage from flags: %w", err)
		}

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		if err := t.SetLeverage(ctx, symbol, leverage); err != nil {
			return err
		}

		green.Printf("✓ leverage of %s set to %dx\n", symbol, leverage)
		return nil
	},
}

func init() {
	leverageCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	leverageCmd.Flags().Int("set", 0, "the target leverage, 1 to 125")

	RootCmd.AddCommand(leverageCmd)
}
