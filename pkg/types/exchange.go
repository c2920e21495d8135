package types

import (
	"context"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
)

type ExchangeName string

func (n ExchangeName) String() string {
	return string(n)
}

const (
	ExchangeBinance = ExchangeName("binance")
)

// Exchange is the authenticated futures API surface consumed by the order
// façade and the strategy runners. A fake implementation backs the tests.
type Exchange interface {
	Name() ExchangeName

	ExchangeMarketDataService

	ExchangeTradeService
}

type ExchangeMarketDataService interface {
	// QueryTicker returns the last traded price of the symbol.
	QueryTicker(ctx context.Context, symbol string) (fixedpoint.Value, error)

	// QueryMarket returns the trading rules (precisions, filters) of the symbol.
	QueryMarket(ctx context.Context, symbol string) (Market, error)
}

type ExchangeTradeService interface {
	QueryAccount(ctx context.Context) (*FuturesAccount, error)

	QueryPosition(ctx context.Context, symbol string) (*FuturesPosition, error)

	SetLeverage(ctx context.Context, symbol string, leverage int) error

	SubmitOrder(ctx context.Context, order SubmitOrder) (*Order, error)

	QueryOrder(ctx context.Context, symbol string, orderID uint64) (*Order, error)

	QueryOpenOrders(ctx context.Context, symbol string) ([]Order, error)

	CancelOrder(ctx context.Context, symbol string, orderID uint64) error

	CancelAllOrders(ctx context.Context, symbol string) error
}
