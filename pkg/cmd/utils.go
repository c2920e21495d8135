package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"

	"github.com/fugotrade/fugo/pkg/config"
	"github.com/fugotrade/fugo/pkg/exchange/binance"
	"github.com/fugotrade/fugo/pkg/style"
	"github.com/fugotrade/fugo/pkg/trader"
	"github.com/fugotrade/fugo/pkg/types"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// newTrader builds the order façade from the resolved configuration.
func newTrader() (*trader.Trader, *config.Config, error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if !cfg.Testnet {
		log.Warn("testnet is disabled, orders will hit the production endpoint")
	}

	exchange := binance.New(cfg.APIKey, cfg.APISecret, cfg.Testnet)
	return trader.New(exchange), cfg, nil
}

// queryMarket fetches the symbol filters so quantities and prices are
// truncated to the live exchange precision instead of the defaults.
func queryMarket(ctx context.Context, t *trader.Trader, symbol string) types.Market {
	market, err := t.Exchange().QueryMarket(ctx, symbol)
	if err != nil {
		log.WithError(err).Warnf("cannot query market filters of %s, falling back to defaults", symbol)
		return types.NewMarket(symbol)
	}
	return market
}

func printOrderTable(orders ...types.Order) {
	w := style.NewTableWriter(os.Stdout)
	w.AppendHeader(toRow("ID", "SYMBOL", "TYPE", "SIDE", "PRICE", "QUANTITY", "EXECUTED", "STATUS"))
	for _, o := range orders {
		price := o.Price.String()
		if o.Type == types.OrderTypeMarket {
			price = "MARKET"
		}
		w.AppendRow(toRow(
			fmt.Sprintf("%d", o.OrderID),
			o.Symbol,
			string(o.Type),
			string(o.Side),
			price,
			o.Quantity.String(),
			o.ExecutedQuantity.String(),
			string(o.Status)))
	}
	w.Render()
}

func toRow(cells ...interface{}) table.Row {
	return table.Row(cells)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
