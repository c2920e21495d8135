package grid

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// TradingService is the slice of the order façade the grid runner needs.
type TradingService interface {
	Submit(ctx context.Context, order types.SubmitOrder) (*types.Order, error)
	QueryPrice(ctx context.Context, symbol string) (fixedpoint.Value, error)
	QueryOrder(ctx context.Context, symbol string, orderID uint64) (*types.Order, error)
	CancelOrder(ctx context.Context, symbol string, orderID uint64) error
}

// level tracks the outstanding order of one ladder price. While order is nil
// and refillSide is set, the runner owes the level a submission and retries it
// on every poll cycle.
type level struct {
	price      fixedpoint.Value
	origSide   types.SideType
	order      *types.Order
	refillSide types.SideType
}

// Runner places the initial ladder and keeps it alive by polling for fills
// and replacing filled orders with the opposite side at the same level.
type Runner struct {
	plan    Plan
	market  types.Market
	service TradingService

	// placementLimiter spaces out order submissions
	placementLimiter *rate.Limiter

	logger logrus.FieldLogger
}

func NewRunner(service TradingService, plan Plan) *Runner {
	market := plan.Market
	if market.Symbol == "" {
		market = types.NewMarket(plan.Symbol)
	}

	return &Runner{
		plan:             plan,
		market:           market,
		service:          service,
		placementLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		logger: logrus.WithFields(logrus.Fields{
			"strategy": "grid",
			"symbol":   plan.Symbol,
		}),
	}
}

// SetPlacementRateLimit overrides the limiter that spaces out submissions.
func (r *Runner) SetPlacementRateLimit(limiter *rate.Limiter) {
	r.placementLimiter = limiter
}

// Run validates the plan, places the initial ladder and starts the poll loop.
// A level whose initial placement fails is retried on the poll cycles, so the
// returned handle is live even under a flaky exchange.
func (r *Runner) Run(ctx context.Context) (*Handle, error) {
	if err := r.plan.Validate(); err != nil {
		return nil, err
	}

	prices, err := r.plan.LevelPrices()
	if err != nil {
		return nil, err
	}

	currentPrice, err := r.service.QueryPrice(ctx, r.plan.Symbol)
	if err != nil {
		return nil, err
	}

	if currentPrice.Compare(r.plan.LowerPrice) < 0 || currentPrice.Compare(r.plan.UpperPrice) > 0 {
		return nil, errors.Errorf("current price %s is outside the grid range [%s, %s]",
			currentPrice.String(), r.plan.LowerPrice.String(), r.plan.UpperPrice.String())
	}

	pollInterval := r.plan.PollInterval
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	handle := &Handle{
		runner: r,
		cancel: cancel,
		done:   NewDoneSignal(),
		levels: make([]*level, len(prices)),
	}

	r.logger.Infof("placing grid of %d levels from %s to %s, current price %s",
		len(prices), r.plan.LowerPrice.String(), r.plan.UpperPrice.String(), currentPrice.String())

	for k, price := range prices {
		// levels below the current price buy, everything else sells, so a
		// level sitting exactly on the current price never crosses the market
		side := types.SideTypeSell
		if price.Compare(currentPrice) < 0 {
			side = types.SideTypeBuy
		}

		lv := &level{price: price, origSide: side, refillSide: side}
		handle.levels[k] = lv

		if err := r.submitLevelOrder(runCtx, lv); err != nil {
			r.logger.WithError(err).Warnf("initial %s order at %s failed, will retry on the next poll cycle",
				side, price.String())
		}
	}

	handle.updateActiveOrdersMetric()

	go r.pollLoop(runCtx, handle, pollInterval.Duration())

	return handle, nil
}

func (r *Runner) submitLevelOrder(ctx context.Context, lv *level) error {
	if err := r.placementLimiter.Wait(ctx); err != nil {
		return err
	}

	order, err := r.service.Submit(ctx, types.SubmitOrder{
		Symbol:      r.plan.Symbol,
		Side:        lv.refillSide,
		Type:        types.OrderTypeLimit,
		Quantity:    r.plan.QuantityPerLevel,
		Price:       lv.price,
		Market:      r.market,
		TimeInForce: types.TimeInForceGTC,
	})
	if err != nil {
		return err
	}

	lv.order = order
	lv.refillSide = ""
	r.logger.Infof("%s order placed at %s: #%d", order.Side, lv.price.String(), order.OrderID)
	return nil
}

func (r *Runner) pollLoop(ctx context.Context, handle *Handle, interval time.Duration) {
	defer handle.done.Emit()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			r.checkLevels(ctx, handle)
		}
	}
}

// checkLevels is one poll cycle: reconcile every outstanding order and retry
// pending refills. A failed call is logged and retried on the next cycle; a
// single failure never terminates the runner.
func (r *Runner) checkLevels(ctx context.Context, handle *Handle) {
	handle.mu.Lock()
	defer handle.mu.Unlock()

	for _, lv := range handle.levels {
		if lv == nil {
			continue
		}

		if lv.order != nil {
			r.reconcileLevel(ctx, handle, lv)
		}

		if lv.order == nil && lv.refillSide != "" {
			if err := r.submitLevelOrder(ctx, lv); err != nil {
				metricsGridReplacementFailures.WithLabelValues(r.plan.Symbol).Inc()
				r.logger.WithError(err).Warnf("replacement %s order at %s failed, will retry on the next poll cycle",
					lv.refillSide, lv.price.String())
			}
		}
	}

	handle.updateActiveOrdersMetricLocked()
}

func (r *Runner) reconcileLevel(ctx context.Context, handle *Handle, lv *level) {
	order, err := r.service.QueryOrder(ctx, r.plan.Symbol, lv.order.OrderID)
	if err != nil {
		r.logger.WithError(err).Warnf("order #%d status query failed", lv.order.OrderID)
		return
	}

	switch order.Status {
	case types.OrderStatusFilled:
		r.logger.Infof("grid order filled: %s", order.String())
		metricsGridFilledOrders.WithLabelValues(r.plan.Symbol, string(order.Side)).Inc()

		// a fill on the reversed side closes a buy/sell round trip
		if order.Side != lv.origSide {
			handle.roundTrips++
			metricsGridRoundTrips.WithLabelValues(r.plan.Symbol).Inc()
		}

		lv.order = nil
		lv.refillSide = order.Side.Reverse()

	case types.OrderStatusCanceled, types.OrderStatusRejected, types.OrderStatusExpired:
		// canceled outside the runner, the level is terminal
		r.logger.Infof("grid order #%d is %s, dropping level %s", order.OrderID, order.Status, lv.price.String())
		lv.order = nil
		lv.refillSide = ""

	default:
		lv.order = order
	}
}

// Handle is the running grid returned by Run. Stop cancels all outstanding
// grid orders; orders already filled are not reversed.
type Handle struct {
	runner *Runner
	cancel context.CancelFunc
	done   *DoneSignal

	mu         sync.Mutex
	levels     []*level
	roundTrips int
	stopped    bool
}

// Done is closed when the poll loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done.Chan()
}

// RoundTrips reports how many buy/sell round trips the grid completed.
func (h *Handle) RoundTrips() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roundTrips
}

// ActiveOrders returns a snapshot of the outstanding grid orders.
func (h *Handle) ActiveOrders() (orders []types.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, lv := range h.levels {
		if lv != nil && lv.order != nil {
			orders = append(orders, *lv.order)
		}
	}
	return orders
}

// Stop signals the poll loop, waits for it to reach its suspension point and
// cancels every pending grid order. Calling Stop again after a successful
// stop is a no-op; a Stop that failed mid-sweep can be retried and only
// re-cancels the levels still holding orders.
func (h *Handle) Stop(ctx context.Context) error {
	h.mu.Lock()
	stopped := h.stopped
	h.mu.Unlock()
	if stopped {
		return nil
	}

	h.cancel()

	select {
	case <-h.done.Chan():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := h.cancelPendingOrders(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	return nil
}

func (h *Handle) cancelPendingOrders(ctx context.Context) (lastErr error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.runner
	for _, lv := range h.levels {
		if lv == nil || lv.order == nil {
			continue
		}

		// skip orders that reached a terminal state since the last poll
		if order, err := r.service.QueryOrder(ctx, r.plan.Symbol, lv.order.OrderID); err == nil && order.Status.Closed() {
			lv.order = nil
			continue
		}

		if err := r.service.CancelOrder(ctx, r.plan.Symbol, lv.order.OrderID); err != nil {
			r.logger.WithError(err).Errorf("can not cancel grid order #%d", lv.order.OrderID)
			lastErr = err
			continue
		}

		r.logger.Infof("grid order #%d canceled", lv.order.OrderID)
		lv.order = nil
	}

	h.updateActiveOrdersMetricLocked()
	return lastErr
}

func (h *Handle) updateActiveOrdersMetric() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updateActiveOrdersMetricLocked()
}

func (h *Handle) updateActiveOrdersMetricLocked() {
	active := 0
	for _, lv := range h.levels {
		if lv != nil && lv.order != nil {
			active++
		}
	}

	metricsGridActiveOrders.WithLabelValues(h.runner.plan.Symbol).Set(float64(active))
}
