package grid

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fugotrade/fugo/pkg/exchange/fake"
	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/trader"
	"github.com/fugotrade/fugo/pkg/types"
)

func testGridPlan() Plan {
	return Plan{
		Symbol:           "BTCUSDT",
		Market:           types.NewMarket("BTCUSDT"),
		LowerPrice:       fixedpoint.NewFromInt(100),
		UpperPrice:       fixedpoint.NewFromInt(110),
		GridNum:          3,
		QuantityPerLevel: fixedpoint.MustNewFromString("0.01"),
		PollInterval:     types.Duration(10 * time.Millisecond),
	}
}

func newTestRunner(ex *fake.Exchange, plan Plan) *Runner {
	runner := NewRunner(trader.New(ex), plan)
	runner.SetPlacementRateLimit(rate.NewLimiter(rate.Inf, 0))
	return runner
}

func findOrder(orders []types.Order, price fixedpoint.Value, side types.SideType) *types.Order {
	for i := range orders {
		if orders[i].Price == price && orders[i].Side == side {
			return &orders[i]
		}
	}
	return nil
}

func TestRunPlacesNonCrossingLadder(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)
	defer func() { _ = handle.Stop(context.Background()) }()

	active := handle.ActiveOrders()
	require.Len(t, active, 3)

	// 100 buys below the price, 105 sells on the non-crossing tiebreak, 110 sells
	assert.NotNil(t, findOrder(active, fixedpoint.NewFromInt(100), types.SideTypeBuy))
	assert.NotNil(t, findOrder(active, fixedpoint.NewFromInt(105), types.SideTypeSell))
	assert.NotNil(t, findOrder(active, fixedpoint.NewFromInt(110), types.SideTypeSell))

	for _, order := range active {
		assert.Equal(t, types.OrderTypeLimit, order.Type)
		assert.Equal(t, fixedpoint.MustNewFromString("0.01"), order.Quantity)
	}
}

func TestRunRejectsPriceOutsideRange(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(99))
	runner := newTestRunner(ex, testGridPlan())

	_, err := runner.Run(context.Background())
	assert.Error(t, err)

	ex.SetLastPrice(fixedpoint.NewFromInt(111))
	_, err = runner.Run(context.Background())
	assert.Error(t, err)
}

func TestFilledOrderIsReplacedWithOppositeSide(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)
	defer func() { _ = handle.Stop(context.Background()) }()

	buy := findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeBuy)
	require.NotNil(t, buy)
	require.NoError(t, ex.FillOrder(buy.OrderID, fixedpoint.NewFromInt(100)))

	require.Eventually(t, func() bool {
		return findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeSell) != nil
	}, time.Second, 10*time.Millisecond, "filled buy should be replaced by a sell at the same level")

	// the replacement fill closes the round trip and re-arms the buy
	sell := findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeSell)
	require.NoError(t, ex.FillOrder(sell.OrderID, fixedpoint.NewFromInt(100)))

	require.Eventually(t, func() bool {
		return handle.RoundTrips() == 1 &&
			findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeBuy) != nil
	}, time.Second, 10*time.Millisecond)
}

func TestFailedReplacementIsRetriedNextCycle(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)
	defer func() { _ = handle.Stop(context.Background()) }()

	// wedge the exchange so that replacement submissions fail
	var failing atomic.Bool
	failing.Store(true)
	ex.SetSubmitHook(func(order types.SubmitOrder) error {
		if failing.Load() {
			return errors.New("api timeout")
		}
		return nil
	})

	buy := findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeBuy)
	require.NotNil(t, buy)
	require.NoError(t, ex.FillOrder(buy.OrderID, fixedpoint.NewFromInt(100)))

	// the runner keeps polling through the failures
	require.Eventually(t, func() bool {
		return len(handle.ActiveOrders()) == 2
	}, time.Second, 10*time.Millisecond)

	failing.Store(false)

	require.Eventually(t, func() bool {
		return findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(100), types.SideTypeSell) != nil
	}, time.Second, 10*time.Millisecond, "replacement should succeed once the exchange recovers")
}

func TestStopCancelsPendingOrders(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)

	sell := findOrder(handle.ActiveOrders(), fixedpoint.NewFromInt(110), types.SideTypeSell)
	require.NotNil(t, sell)
	require.NoError(t, ex.FillOrder(sell.OrderID, fixedpoint.NewFromInt(110)))

	require.NoError(t, handle.Stop(context.Background()))

	select {
	case <-handle.Done():
	default:
		t.Fatal("done signal should be emitted after Stop")
	}

	assert.Empty(t, handle.ActiveOrders())

	// pending orders are canceled, the filled one stays filled
	for _, order := range ex.Orders() {
		switch order.OrderID {
		case sell.OrderID:
			assert.Equal(t, types.OrderStatusFilled, order.Status)
		default:
			if order.Status != types.OrderStatusCanceled {
				// replacements may have been placed before the stop
				assert.True(t, order.Status.Closed(), "order #%d is still %s", order.OrderID, order.Status)
			}
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, handle.Stop(context.Background()))
	require.NoError(t, handle.Stop(context.Background()))
	require.NoError(t, handle.Stop(context.Background()))
}

func TestFailedStopCanBeRetried(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))
	runner := newTestRunner(ex, testGridPlan())

	handle, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, handle.ActiveOrders(), 3)

	var failing atomic.Bool
	failing.Store(true)
	ex.SetCancelHook(func(symbol string, orderID uint64) error {
		if failing.Load() {
			return errors.New("api timeout")
		}
		return nil
	})

	// the sweep fails and the resting orders stay on the exchange
	require.Error(t, handle.Stop(context.Background()))

	open, err := ex.QueryOpenOrders(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, open, 3)

	failing.Store(false)

	// a retry finishes the sweep instead of silently doing nothing
	require.NoError(t, handle.Stop(context.Background()))

	open, err = ex.QueryOpenOrders(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Empty(t, open)

	// the grid is fully stopped now, another Stop is a no-op
	require.NoError(t, handle.Stop(context.Background()))
}

func TestInitialPlacementFailureIsRetried(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(105))

	var failing atomic.Bool
	failing.Store(true)
	ex.SetSubmitHook(func(order types.SubmitOrder) error {
		if failing.Load() && order.Side == types.SideTypeBuy {
			return errors.New("api timeout")
		}
		return nil
	})

	runner := newTestRunner(ex, testGridPlan())
	handle, err := runner.Run(context.Background())
	require.NoError(t, err)
	defer func() { _ = handle.Stop(context.Background()) }()

	require.Len(t, handle.ActiveOrders(), 2)

	failing.Store(false)

	require.Eventually(t, func() bool {
		return len(handle.ActiveOrders()) == 3
	}, time.Second, 10*time.Millisecond, "failed initial placement should be retried by the poll loop")
}
