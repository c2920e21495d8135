package retry

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/fugotrade/fugo/pkg/types"
)

// MaxRetries bounds the exponential backoff used by the helpers below.
var MaxRetries uint64 = 11

type orderQueryService interface {
	QueryOrder(ctx context.Context, symbol string, orderID uint64) (*types.Order, error)
}

type openOrderQueryService interface {
	QueryOpenOrders(ctx context.Context, symbol string) ([]types.Order, error)
}

type orderCancelService interface {
	CancelOrder(ctx context.Context, symbol string, orderID uint64) error
}

type allOrderCancelService interface {
	CancelAllOrders(ctx context.Context, symbol string) error
}

func GeneralBackoff(ctx context.Context, op backoff.Operation) error {
	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			MaxRetries),
		ctx))
}

func QueryOrderUntilSuccessful(ctx context.Context, service orderQueryService, symbol string, orderID uint64) (o *types.Order, err error) {
	var op = func() (err2 error) {
		o, err2 = service.QueryOrder(ctx, symbol, orderID)
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return o, err
}

func QueryOpenOrdersUntilSuccessful(ctx context.Context, service openOrderQueryService, symbol string) (openOrders []types.Order, err error) {
	var op = func() (err2 error) {
		openOrders, err2 = service.QueryOpenOrders(ctx, symbol)
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return openOrders, err
}

func CancelOrderUntilSuccessful(ctx context.Context, service orderCancelService, symbol string, orderID uint64) error {
	var op = func() (err2 error) {
		return service.CancelOrder(ctx, symbol, orderID)
	}

	return GeneralBackoff(ctx, op)
}

func CancelAllOrdersUntilSuccessful(ctx context.Context, service allOrderCancelService, symbol string) error {
	var op = func() (err2 error) {
		return service.CancelAllOrders(ctx, symbol)
	}

	return GeneralBackoff(ctx, op)
}
