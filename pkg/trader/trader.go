package trader

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// MaxLeverage is the hard cap of the USDT-M futures API.
const MaxLeverage = 125

var log = logrus.WithField("component", "trader")

// Trader validates and normalizes order parameters before delegating to the
// exchange. It performs no retry: a transient exchange failure propagates to
// the caller as an *ExchangeError.
type Trader struct {
	exchange types.Exchange
}

func New(exchange types.Exchange) *Trader {
	return &Trader{exchange: exchange}
}

func (t *Trader) Exchange() types.Exchange {
	return t.exchange
}

// Submit validates the order request and forwards it to the exchange. The
// quantity and prices are truncated to the market precision before sending.
func (t *Trader) Submit(ctx context.Context, order types.SubmitOrder) (*types.Order, error) {
	if err := validateSubmitOrder(order); err != nil {
		return nil, err
	}

	if order.Market.Symbol == "" {
		order.Market = types.NewMarket(order.Symbol)
	}

	order.Quantity = order.Market.TruncateQuantity(order.Quantity)
	if order.Quantity.Sign() <= 0 {
		return nil, validationErrorf("quantity", "quantity %s became zero after truncating to precision %d",
			order.Quantity.String(), order.Market.VolumePrecision)
	}

	if order.Price.Sign() > 0 {
		order.Price = order.Market.TruncatePrice(order.Price)
	}
	if order.StopPrice.Sign() > 0 {
		order.StopPrice = order.Market.TruncatePrice(order.StopPrice)
	}

	if order.Type == types.OrderTypeLimit || order.Type == types.OrderTypeStopLimit {
		if order.TimeInForce == "" {
			order.TimeInForce = types.TimeInForceGTC
		}
	}

	log.Infof("submitting %s", order.String())

	createdOrder, err := t.exchange.SubmitOrder(ctx, order)
	if err != nil {
		return nil, &ExchangeError{Op: "submit order", Err: err}
	}

	log.Infof("order placed: %s", createdOrder.String())
	return createdOrder, nil
}

func (t *Trader) QueryPrice(ctx context.Context, symbol string) (fixedpoint.Value, error) {
	if err := validateSymbol(symbol); err != nil {
		return fixedpoint.Zero, err
	}

	price, err := t.exchange.QueryTicker(ctx, symbol)
	if err != nil {
		return fixedpoint.Zero, &ExchangeError{Op: "query ticker", Err: err}
	}

	return price, nil
}

func (t *Trader) QueryOrder(ctx context.Context, symbol string, orderID uint64) (*types.Order, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	order, err := t.exchange.QueryOrder(ctx, symbol, orderID)
	if err != nil {
		return nil, &ExchangeError{Op: "query order", Err: err}
	}

	return order, nil
}

func (t *Trader) QueryOpenOrders(ctx context.Context, symbol string) ([]types.Order, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	orders, err := t.exchange.QueryOpenOrders(ctx, symbol)
	if err != nil {
		return nil, &ExchangeError{Op: "query open orders", Err: err}
	}

	return orders, nil
}

func (t *Trader) CancelOrder(ctx context.Context, symbol string, orderID uint64) error {
	if err := validateSymbol(symbol); err != nil {
		return err
	}

	if err := t.exchange.CancelOrder(ctx, symbol, orderID); err != nil {
		return &ExchangeError{Op: "cancel order", Err: err}
	}

	log.Infof("order %s #%d canceled", symbol, orderID)
	return nil
}

func (t *Trader) CancelAllOrders(ctx context.Context, symbol string) error {
	if err := validateSymbol(symbol); err != nil {
		return err
	}

	if err := t.exchange.CancelAllOrders(ctx, symbol); err != nil {
		return &ExchangeError{Op: "cancel all orders", Err: err}
	}

	log.Infof("all open orders of %s canceled", symbol)
	return nil
}

func (t *Trader) QueryAccount(ctx context.Context) (*types.FuturesAccount, error) {
	account, err := t.exchange.QueryAccount(ctx)
	if err != nil {
		return nil, &ExchangeError{Op: "query account", Err: err}
	}

	return account, nil
}

func (t *Trader) QueryPosition(ctx context.Context, symbol string) (*types.FuturesPosition, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	position, err := t.exchange.QueryPosition(ctx, symbol)
	if err != nil {
		return nil, &ExchangeError{Op: "query position", Err: err}
	}

	return position, nil
}

func (t *Trader) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	if err := validateSymbol(symbol); err != nil {
		return err
	}

	if leverage < 1 || leverage > MaxLeverage {
		return validationErrorf("leverage", "leverage must be between 1 and %d, got %d", MaxLeverage, leverage)
	}

	if err := t.exchange.SetLeverage(ctx, symbol, leverage); err != nil {
		return &ExchangeError{Op: "set leverage", Err: err}
	}

	return nil
}
