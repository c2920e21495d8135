package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// go run ./cmd/fugo order --symbol=BTCUSDT --side=buy --quantity=0.01
var orderCmd = &cobra.Command{
	Use:          "order",
	Short:        "place an order",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			return fmt.Errorf("can't get the side from flags: %w", err)
		}

		orderType, err := cmd.Flags().GetString("type")
		if err != nil {
			return fmt.Errorf("can't get the order type from flags: %w", err)
		}

		quantity, err := cmd.Flags().GetString("quantity")
		if err != nil {
			return fmt.Errorf("can't get the quantity from flags: %w", err)
		}

		price, err := cmd.Flags().GetString("price")
		if err != nil {
			return fmt.Errorf("can't get the price from flags: %w", err)
		}

		stopPrice, err := cmd.Flags().GetString("stop-price")
		if err != nil {
			return fmt.Errorf("can't get the stop price from flags: %w", err)
		}

		reduceOnly, err := cmd.Flags().GetBool("reduce-only")
		if err != nil {
			return fmt.Errorf("can't get the reduce-only flag: %w", err)
		}

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		submitOrder := types.SubmitOrder{
			Symbol:     normalizeSymbol(symbol),
			Side:       types.SideType(strings.ToUpper(side)),
			Type:       types.OrderType(strings.ToUpper(orderType)),
			ReduceOnly: reduceOnly,
		}

		if submitOrder.Quantity, err = fixedpoint.NewFromString(quantity); err != nil {
			return fmt.Errorf("invalid quantity %q: %w", quantity, err)
		}
		if submitOrder.Price, err = fixedpoint.NewFromString(price); err != nil {
			return fmt.Errorf("invalid price %q: %w", price, err)
		}
		if submitOrder.StopPrice, err = fixedpoint.NewFromString(stopPrice); err != nil {
			return fmt.Errorf("invalid stop price %q: %w", stopPrice, err)
		}

		submitOrder.Market = queryMarket(ctx, t, submitOrder.Symbol)

		createdOrder, err := t.Submit(ctx, submitOrder)
		if err != nil {
			red.Printf("✗ order rejected: %v\n", err)
			return err
		}

		green.Printf("✓ order placed\n")
		printOrderTable(*createdOrder)
		return nil
	},
}

func init() {
	orderCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	orderCmd.Flags().String("side", "", "BUY or SELL")
	orderCmd.Flags().String("type", string(types.OrderTypeMarket), "order type: MARKET, LIMIT, STOP_MARKET or STOP_LIMIT")
	orderCmd.Flags().String("quantity", "", "order quantity in the base asset")
	orderCmd.Flags().String("price", "", "limit price, required by LIMIT and STOP_LIMIT")
	orderCmd.Flags().String("stop-price", "", "stop trigger price, required by STOP_MARKET and STOP_LIMIT")
	orderCmd.Flags().Bool("reduce-only", false, "only reduce the existing position")

	RootCmd.AddCommand(orderCmd)
}
