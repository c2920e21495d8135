// Package fake provides an in-memory exchange used by tests and dry runs.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

func init() {
	_ = types.Exchange(&Exchange{})
}

// Exchange keeps submitted orders in memory. Limit orders rest as NEW until a
// test fills or cancels them; market orders fill immediately at the last price.
type Exchange struct {
	mu sync.Mutex

	lastPrice   fixedpoint.Value
	nextOrderID uint64
	orders      map[uint64]*types.Order
	leverage    map[string]int

	// submitHook runs before an order is accepted; returning an error makes
	// the submission fail, simulating an API outage.
	submitHook func(order types.SubmitOrder) error

	// cancelHook runs before a cancel is applied, same idea as submitHook.
	cancelHook func(symbol string, orderID uint64) error

	account types.FuturesAccount
}

// SetSubmitHook installs a hook that runs before each order is accepted.
// Returning an error from the hook fails the submission.
func (e *Exchange) SetSubmitHook(hook func(order types.SubmitOrder) error) {
	e.mu.Lock()
	e.submitHook = hook
	e.mu.Unlock()
}

// SetCancelHook installs a hook that runs before each cancel is applied.
// Returning an error from the hook fails the cancel.
func (e *Exchange) SetCancelHook(hook func(symbol string, orderID uint64) error) {
	e.mu.Lock()
	e.cancelHook = hook
	e.mu.Unlock()
}

func New(lastPrice fixedpoint.Value) *Exchange {
	return &Exchange{
		lastPrice: lastPrice,
		orders:    make(map[uint64]*types.Order),
		leverage:  make(map[string]int),
		account: types.FuturesAccount{
			TotalWalletBalance: fixedpoint.NewFromInt(10000),
			AvailableBalance:   fixedpoint.NewFromInt(10000),
			TotalMarginBalance: fixedpoint.NewFromInt(10000),
		},
	}
}

func (e *Exchange) Name() types.ExchangeName {
	return types.ExchangeName("fake")
}

func (e *Exchange) SetLastPrice(price fixedpoint.Value) {
	e.mu.Lock()
	e.lastPrice = price
	e.mu.Unlock()
}

func (e *Exchange) QueryTicker(ctx context.Context, symbol string) (fixedpoint.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPrice, nil
}

func (e *Exchange) QueryMarket(ctx context.Context, symbol string) (types.Market, error) {
	return types.NewMarket(symbol), nil
}

func (e *Exchange) QueryAccount(ctx context.Context) (*types.FuturesAccount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	account := e.account
	return &account, nil
}

func (e *Exchange) QueryPosition(ctx context.Context, symbol string) (*types.FuturesPosition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &types.FuturesPosition{
		Symbol:   symbol,
		Leverage: e.leverage[symbol],
	}, nil
}

func (e *Exchange) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	e.mu.Lock()
	e.leverage[symbol] = leverage
	e.mu.Unlock()
	return nil
}

func (e *Exchange) SubmitOrder(ctx context.Context, order types.SubmitOrder) (*types.Order, error) {
	e.mu.Lock()
	hook := e.submitHook
	e.mu.Unlock()

	if hook != nil {
		if err := hook(order); err != nil {
			return nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextOrderID++
	created := &types.Order{
		SubmitOrder:  order,
		OrderID:      e.nextOrderID,
		Status:       types.OrderStatusNew,
		CreationTime: time.Now(),
		UpdateTime:   time.Now(),
	}

	if order.Type == types.OrderTypeMarket {
		created.Status = types.OrderStatusFilled
		created.ExecutedQuantity = order.Quantity
		created.AvgPrice = e.lastPrice
		created.Price = e.lastPrice
	}

	e.orders[created.OrderID] = created

	copied := *created
	return &copied, nil
}

func (e *Exchange) QueryOrder(ctx context.Context, symbol string, orderID uint64) (*types.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return nil, errors.Errorf("order %s #%d not found", symbol, orderID)
	}

	copied := *order
	return &copied, nil
}

func (e *Exchange) QueryOpenOrders(ctx context.Context, symbol string) (orders []types.Order, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, order := range e.orders {
		if order.Symbol == symbol && !order.Status.Closed() {
			orders = append(orders, *order)
		}
	}

	return orders, nil
}

func (e *Exchange) CancelOrder(ctx context.Context, symbol string, orderID uint64) error {
	e.mu.Lock()
	hook := e.cancelHook
	e.mu.Unlock()

	if hook != nil {
		if err := hook(symbol, orderID); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return errors.Errorf("order %s #%d not found", symbol, orderID)
	}

	if order.Status.Closed() {
		return errors.Errorf("order %s #%d is already %s", symbol, orderID, order.Status)
	}

	order.Status = types.OrderStatusCanceled
	order.UpdateTime = time.Now()
	return nil
}

func (e *Exchange) CancelAllOrders(ctx context.Context, symbol string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, order := range e.orders {
		if order.Symbol == symbol && !order.Status.Closed() {
			order.Status = types.OrderStatusCanceled
			order.UpdateTime = time.Now()
		}
	}

	return nil
}

// FillOrder marks a resting order as filled at the given price so tests can
// drive the grid poll loop.
func (e *Exchange) FillOrder(orderID uint64, avgPrice fixedpoint.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return errors.Errorf("order #%d not found", orderID)
	}

	order.Status = types.OrderStatusFilled
	order.ExecutedQuantity = order.Quantity
	order.AvgPrice = avgPrice
	order.UpdateTime = time.Now()
	return nil
}

// Orders returns a snapshot of every order the exchange has seen.
func (e *Exchange) Orders() (orders []types.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, order := range e.orders {
		orders = append(orders, *order)
	}
	return orders
}
