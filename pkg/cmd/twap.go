package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/style"
	"github.com/fugotrade/fugo/pkg/twap"
	"github.com/fugotrade/fugo/pkg/types"
)

// go run ./cmd/fugo twap --symbol=BTCUSDT --side=buy --quantity=0.1 --slices=10 --interval=30s
var twapCmd = &cobra.Command{
	Use:          "twap",
	Short:        "execute a twap order",
	Long:         "splits a total quantity into equal market-order slices submitted at a fixed interval",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			return fmt.Errorf("can't get the side from flags: %w", err)
		}

		quantity, err := cmd.Flags().GetString("quantity")
		if err != nil {
			return fmt.Errorf("can't get the quantity from flags: %w", err)
		}

		slices, err := cmd.Flags().GetInt("slices")
		if err != nil {
			return fmt.Errorf("can't get the slices from flags: %w", err)
		}

		interval, err := cmd.Flags().GetDuration("interval")
		if err != nil {
			return fmt.Errorf("can't get the interval from flags: %w", err)
		}

		t, cfg, err := newTrader()
		if err != nil {
			return err
		}

		plan := twap.Plan{
			Symbol:   normalizeSymbol(symbol),
			Side:     types.SideType(strings.ToUpper(side)),
			Slices:   slices,
			Interval: types.Duration(interval),
		}

		if plan.TotalQuantity, err = fixedpoint.NewFromString(quantity); err != nil {
			return fmt.Errorf("invalid quantity %q: %w", quantity, err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		plan.Market = queryMarket(ctx, t, plan.Symbol)

		if err := t.SetLeverage(ctx, plan.Symbol, cfg.Leverage); err != nil {
			return err
		}

		executor := twap.NewExecutor(t, plan)
		executor.OnOrderPlaced(func(i int, order types.Order) {
			green.Printf("✓ slice %d/%d filled: %s %s @ %s\n",
				i+1, plan.Slices, order.Side, order.ExecutedQuantity.String(), order.AvgPrice.String())
		})

		_, runErr := executor.Run(ctx)
		if errors.Is(runErr, twap.ErrInterrupted) {
			log.Warn("twap interrupted, already placed slices stand")
			runErr = nil
		}

		summary := executor.Summary()
		w := style.NewTableWriter(os.Stdout)
		w.AppendHeader(toRow("SYMBOL", "SIDE", "TARGET", "EXECUTED", "AVG PRICE", "COST", "ORDERS"))
		w.AppendRow(toRow(
			summary.Symbol,
			string(summary.Side),
			summary.TotalQuantity.String(),
			summary.ExecutedQuantity.String(),
			summary.AveragePrice.String(),
			summary.TotalCost.FormatString(2),
			summary.Orders))
		w.Render()

		return runErr
	},
}

func init() {
	twapCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	twapCmd.Flags().String("side", "", "BUY or SELL")
	twapCmd.Flags().String("quantity", "", "the total quantity to execute")
	twapCmd.Flags().Int("slices", 1, "the number of child orders")
	twapCmd.Flags().Duration("interval", 0, "the wait between child orders, like 30s or 5m")

	RootCmd.AddCommand(twapCmd)
}
