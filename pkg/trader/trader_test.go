package trader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fugotrade/fugo/pkg/exchange/fake"
	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

func TestSubmitMarketOrder(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(43000))
	tr := New(ex)

	order, err := tr.Submit(context.Background(), types.SubmitOrder{
		Symbol:   "BTCUSDT",
		Side:     types.SideTypeBuy,
		Type:     types.OrderTypeMarket,
		Quantity: fixedpoint.MustNewFromString("0.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.OrderStatusFilled, order.Status)
	assert.Equal(t, fixedpoint.MustNewFromString("0.25"), order.ExecutedQuantity)
}

func TestSubmitTruncatesQuantityToMarketPrecision(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(43000))
	tr := New(ex)

	order, err := tr.Submit(context.Background(), types.SubmitOrder{
		Symbol:   "BTCUSDT",
		Side:     types.SideTypeBuy,
		Type:     types.OrderTypeMarket,
		Quantity: fixedpoint.MustNewFromString("0.3333339"),
	})
	require.NoError(t, err)
	assert.Equal(t, fixedpoint.MustNewFromString("0.333"), order.Quantity)
}

func TestSubmitValidation(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(43000))
	tr := New(ex)
	ctx := context.Background()

	tests := []struct {
		name  string
		order types.SubmitOrder
	}{
		{
			name: "limit order without price",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     types.SideTypeBuy,
				Type:     types.OrderTypeLimit,
				Quantity: fixedpoint.MustNewFromString("0.1"),
			},
		},
		{
			name: "market order with price",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     types.SideTypeBuy,
				Type:     types.OrderTypeMarket,
				Quantity: fixedpoint.MustNewFromString("0.1"),
				Price:    fixedpoint.NewFromInt(43000),
			},
		},
		{
			name: "stop market without stop price",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     types.SideTypeSell,
				Type:     types.OrderTypeStopMarket,
				Quantity: fixedpoint.MustNewFromString("0.1"),
			},
		},
		{
			name: "stop limit without stop price",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     types.SideTypeSell,
				Type:     types.OrderTypeStopLimit,
				Quantity: fixedpoint.MustNewFromString("0.1"),
				Price:    fixedpoint.NewFromInt(42000),
			},
		},
		{
			name: "zero quantity",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     types.SideTypeBuy,
				Type:     types.OrderTypeMarket,
				Quantity: fixedpoint.Zero,
			},
		},
		{
			name: "bad symbol",
			order: types.SubmitOrder{
				Symbol:   "BTCUSD",
				Side:     types.SideTypeBuy,
				Type:     types.OrderTypeMarket,
				Quantity: fixedpoint.MustNewFromString("0.1"),
			},
		},
		{
			name: "bad side",
			order: types.SubmitOrder{
				Symbol:   "BTCUSDT",
				Side:     "HOLD",
				Type:     types.OrderTypeMarket,
				Quantity: fixedpoint.MustNewFromString("0.1"),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := tr.Submit(ctx, test.order)
			require.Error(t, err)

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr), "expected ValidationError, got %T", err)
		})
	}

	// validation failures never reach the exchange
	assert.Empty(t, ex.Orders())
}

func TestSubmitWrapsExchangeError(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(43000))
	ex.SetSubmitHook(func(order types.SubmitOrder) error {
		return errors.New("connection reset")
	})
	tr := New(ex)

	_, err := tr.Submit(context.Background(), types.SubmitOrder{
		Symbol:   "BTCUSDT",
		Side:     types.SideTypeBuy,
		Type:     types.OrderTypeMarket,
		Quantity: fixedpoint.MustNewFromString("0.1"),
	})
	require.Error(t, err)

	var exchangeErr *ExchangeError
	assert.True(t, errors.As(err, &exchangeErr))
}

func TestSetLeverageBounds(t *testing.T) {
	ex := fake.New(fixedpoint.NewFromInt(43000))
	tr := New(ex)
	ctx := context.Background()

	assert.Error(t, tr.SetLeverage(ctx, "BTCUSDT", 0))
	assert.Error(t, tr.SetLeverage(ctx, "BTCUSDT", 126))
	assert.NoError(t, tr.SetLeverage(ctx, "BTCUSDT", 10))
	assert.NoError(t, tr.SetLeverage(ctx, "BTCUSDT", 125))
}
