package twap

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// ErrInterrupted reports a user-requested stop. It is a terminal state of the
// execution, not a failure: the already-placed slices stand.
var ErrInterrupted = errors.New("twap execution interrupted")

// OrderSubmitter is the subset of the order façade the executor needs.
type OrderSubmitter interface {
	Submit(ctx context.Context, order types.SubmitOrder) (*types.Order, error)
}

// TimerFunc waits for the given duration and returns early with the context
// error when the context is canceled. Tests inject virtual time through it.
type TimerFunc func(ctx context.Context, d time.Duration) error

func realTimer(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Executor submits the plan's market-order slices strictly in index order,
// waiting the plan interval between slices. It never retries a failed slice:
// the partial result list plus the error is the terminal state.
type Executor struct {
	plan      Plan
	submitter OrderSubmitter

	timer         TimerFunc
	onOrderPlaced func(i int, order types.Order)

	executedOrders []types.Order

	logger logrus.FieldLogger
}

func NewExecutor(submitter OrderSubmitter, plan Plan) *Executor {
	return &Executor{
		plan:      plan,
		submitter: submitter,
		timer:     realTimer,
		logger: logrus.WithFields(logrus.Fields{
			"strategy": "twap",
			"symbol":   plan.Symbol,
		}),
	}
}

// SetTimerFunc replaces the interval wait, letting tests run on virtual time.
func (e *Executor) SetTimerFunc(timer TimerFunc) {
	e.timer = timer
}

// OnOrderPlaced registers a callback observing each slice as it completes, so
// a caller can stream partial progress.
func (e *Executor) OnOrderPlaced(cb func(i int, order types.Order)) {
	e.onOrderPlaced = cb
}

// Run executes the plan. On a slice failure it stops immediately and returns
// the orders placed so far together with the error.
func (e *Executor) Run(ctx context.Context) ([]types.Order, error) {
	if err := e.plan.Validate(); err != nil {
		return nil, err
	}

	quantities, err := e.plan.SliceQuantities()
	if err != nil {
		return nil, err
	}

	// a rerun starts from a clean result list so Summary reflects this run only
	e.executedOrders = nil

	interval := e.plan.Interval.Duration()
	e.logger.Infof("executing twap plan: %s %s %s in %d slices, interval %s",
		e.plan.Side, e.plan.TotalQuantity.String(), e.plan.Symbol, e.plan.Slices, interval)

	for i, quantity := range quantities {
		order, err := e.submitter.Submit(ctx, types.SubmitOrder{
			Symbol:   e.plan.Symbol,
			Side:     e.plan.Side,
			Type:     types.OrderTypeMarket,
			Quantity: quantity,
			Market:   e.plan.Market,
		})
		if err != nil {
			e.logger.WithError(err).Errorf("slice %d/%d failed, stopping execution", i+1, e.plan.Slices)
			return e.executedOrders, err
		}

		e.executedOrders = append(e.executedOrders, *order)
		e.logger.Infof("slice %d/%d placed: %s", i+1, e.plan.Slices, order.String())

		if e.onOrderPlaced != nil {
			e.onOrderPlaced(i, *order)
		}

		// no wait after the last slice
		if i == len(quantities)-1 {
			break
		}

		if err := e.timer(ctx, interval); err != nil {
			e.logger.Infof("interrupted after %d/%d slices", i+1, e.plan.Slices)
			return e.executedOrders, ErrInterrupted
		}
	}

	return e.executedOrders, nil
}

// Summary aggregates the execution result of a finished (or interrupted) run.
type Summary struct {
	Symbol           string
	Side             types.SideType
	TotalQuantity    fixedpoint.Value
	ExecutedQuantity fixedpoint.Value
	AveragePrice     fixedpoint.Value
	TotalCost        fixedpoint.Value
	Orders           int
}

func (e *Executor) Summary() Summary {
	summary := Summary{
		Symbol:        e.plan.Symbol,
		Side:          e.plan.Side,
		TotalQuantity: e.plan.TotalQuantity,
		Orders:        len(e.executedOrders),
	}

	for _, order := range e.executedOrders {
		executed := order.ExecutedQuantity
		price := order.AvgPrice
		if price.IsZero() {
			price = order.Price
		}

		summary.ExecutedQuantity = summary.ExecutedQuantity.Add(executed)
		summary.TotalCost = summary.TotalCost.Add(executed.Mul(price))
	}

	if summary.ExecutedQuantity.Sign() > 0 {
		summary.AveragePrice = summary.TotalCost.Div(summary.ExecutedQuantity)
	}

	return summary
}
