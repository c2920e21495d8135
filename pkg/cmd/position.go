package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/style"
)

var positionCmd = &cobra.Command{
	Use:          "position",
	Short:        "show the position of a symbol",
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

		position, err := t.QueryPosition(ctx, symbol)
		if err != nil {
			return err
		}

		if position.IsClosed() {
			fmt.Printf("no open position on %s\n", symbol)
			return nil
		}

		direction := "LONG"
		if position.IsShort() {
			direction = "SHORT"
		}

		w := style.NewTableWriter(os.Stdout)
		w.AppendHeader(toRow("SYMBOL", "DIRECTION", "AMOUNT", "ENTRY", "MARK", "UNREALIZED PNL", "LEVERAGE"))
		w.AppendRow(toRow(
			position.Symbol,
			direction,
			position.PositionAmount.Abs().String(),
			position.EntryPrice.String(),
			position.MarkPrice.String(),
			position.UnrealizedProfit.FormatString(2),
			fmt.Sprintf("%dx", position.Leverage)))
		w.Render()
		return nil
	},
}

func init() {
	positionCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")

	RootCmd.AddCommand(positionCmd)
}
