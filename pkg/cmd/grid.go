package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/grid"
	"github.com/fugotrade/fugo/pkg/types"
)

// stopTimeout bounds the final cancel sweep when the grid shuts down.
const stopTimeout = 30 * time.Second

// go run ./cmd/fugo grid --symbol=BTCUSDT --lower=58000 --upper=62000 --grid-number=10 --quantity=0.001
var gridCmd = &cobra.Command{
	Use:          "grid",
	Short:        "run a grid strategy",
	Long:         "posts a ladder of limit orders between two prices and replaces filled orders with the opposite side until interrupted",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		lower, err := cmd.Flags().GetString("lower")
		if err != nil {
			return fmt.Errorf("can't get the lower price from flags: %w", err)
		}

		upper, err := cmd.Flags().GetString("upper")
		if err != nil {
			return fmt.Errorf("can't get the upper price from flags: %w", err)
		}

		gridNum, err := cmd.Flags().GetInt("grid-number")
		if err != nil {
			return fmt.Errorf("can't get the grid number from flags: %w", err)
		}

		quantity, err := cmd.Flags().GetString("quantity")
		if err != nil {
			return fmt.Errorf("can't get the quantity from flags: %w", err)
		}

		pollInterval, err := cmd.Flags().GetDuration("poll-interval")
		if err != nil {
			return fmt.Errorf("can't get the poll interval from flags: %w", err)
		}

		metricsBind, err := cmd.Flags().GetString("metrics-bind")
		if err != nil {
			return fmt.Errorf("can't get the metrics bind address from flags: %w", err)
		}

		t, cfg, err := newTrader()
		if err != nil {
			return err
		}

		plan := grid.Plan{
			Symbol:       normalizeSymbol(symbol),
			GridNum:      gridNum,
			PollInterval: types.Duration(pollInterval),
		}

		if plan.LowerPrice, err = fixedpoint.NewFromString(lower); err != nil {
			return fmt.Errorf("invalid lower price %q: %w", lower, err)
		}
		if plan.UpperPrice, err = fixedpoint.NewFromString(upper); err != nil {
			return fmt.Errorf("invalid upper price %q: %w", upper, err)
		}
		if plan.QuantityPerLevel, err = fixedpoint.NewFromString(quantity); err != nil {
			return fmt.Errorf("invalid quantity %q: %w", quantity, err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		plan.Market = queryMarket(ctx, t, plan.Symbol)

		if err := t.SetLeverage(ctx, plan.Symbol, cfg.Leverage); err != nil {
			return err
		}

		if metricsBind != "" {
			go func() {
				http.Handle("/metrics", promhttp.Handler())
				if err := http.ListenAndServe(metricsBind, nil); err != nil {
					log.WithError(err).Error("metrics server stopped")
				}
			}()
			log.Infof("serving prometheus metrics on %s/metrics", metricsBind)
		}

		runner := grid.NewRunner(t, plan)
		handle, err := runner.Run(ctx)
		if err != nil {
			return err
		}

		green.Printf("✓ grid started with %d active orders, hit CTRL-C to stop\n", len(handle.ActiveOrders()))

		<-ctx.Done()
		log.Info("shutting down, canceling the remaining grid orders")

		stopCtx, cancelStop := context.WithTimeout(context.Background(), stopTimeout)
		defer cancelStop()

		if err := handle.Stop(stopCtx); err != nil {
			return err
		}

		fmt.Printf("grid stopped, %d round trips completed\n", handle.RoundTrips())
		return nil
	},
}

func init() {
	gridCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	gridCmd.Flags().String("lower", "", "the lowest grid price")
	gridCmd.Flags().String("upper", "", "the highest grid price")
	gridCmd.Flags().Int("grid-number", 0, "the number of price levels, at least 2")
	gridCmd.Flags().String("quantity", "", "the order quantity posted at each level")
	gridCmd.Flags().Duration("poll-interval", grid.DefaultPollInterval.Duration(), "the wait between order status checks")
	gridCmd.Flags().String("metrics-bind", "", "serve prometheus metrics on this address, like :9090")

	RootCmd.AddCommand(gridCmd)
}
