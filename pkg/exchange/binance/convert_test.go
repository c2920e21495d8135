package binance

import (
	"testing"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/stretchr/testify/assert"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

func TestToLocalOrderType(t *testing.T) {
	tests := []struct {
		orderType types.OrderType
		expected  futures.OrderType
	}{
		{types.OrderTypeLimit, futures.OrderTypeLimit},
		{types.OrderTypeMarket, futures.OrderTypeMarket},
		{types.OrderTypeStopMarket, futures.OrderTypeStopMarket},
		{types.OrderTypeStopLimit, futures.OrderTypeStop},
	}

	for _, test := range tests {
		localType, err := toLocalOrderType(test.orderType)
		assert.NoError(t, err)
		assert.Equal(t, test.expected, localType)
	}

	_, err := toLocalOrderType("TRAILING_STOP_MARKET")
	assert.Error(t, err)
}

func TestToGlobalOrder(t *testing.T) {
	futuresOrder := &futures.Order{
		Symbol:           "BTCUSDT",
		OrderID:          702761,
		ClientOrderID:    "ios_1234",
		Price:            "43000.50",
		OrigQuantity:     "0.250",
		ExecutedQuantity: "0.100",
		AvgPrice:         "43000.10",
		Status:           futures.OrderStatusTypePartiallyFilled,
		TimeInForce:      futures.TimeInForceTypeGTC,
		Type:             futures.OrderTypeLimit,
		Side:             futures.SideTypeBuy,
		StopPrice:        "0",
	}

	order, err := toGlobalOrder(futuresOrder)
	assert.NoError(t, err)
	assert.Equal(t, uint64(702761), order.OrderID)
	assert.Equal(t, types.SideTypeBuy, order.Side)
	assert.Equal(t, types.OrderTypeLimit, order.Type)
	assert.Equal(t, types.OrderStatusPartiallyFilled, order.Status)
	assert.Equal(t, fixedpoint.MustNewFromString("0.25"), order.Quantity)
	assert.Equal(t, fixedpoint.MustNewFromString("43000.5"), order.Price)
	assert.Equal(t, fixedpoint.MustNewFromString("0.1"), order.ExecutedQuantity)
}

func TestToGlobalOrderMarketOrderUsesAvgPrice(t *testing.T) {
	futuresOrder := &futures.Order{
		Symbol:           "ETHUSDT",
		OrderID:          1,
		Price:            "",
		AvgPrice:         "3100.20",
		OrigQuantity:     "1",
		ExecutedQuantity: "1",
		Status:           futures.OrderStatusTypeFilled,
		Type:             futures.OrderTypeMarket,
		Side:             futures.SideTypeSell,
	}

	order, err := toGlobalOrder(futuresOrder)
	assert.NoError(t, err)
	assert.Equal(t, fixedpoint.MustNewFromString("3100.2"), order.Price)
	assert.Equal(t, types.OrderStatusFilled, order.Status)
}

func TestToGlobalPosition(t *testing.T) {
	risk := &futures.PositionRisk{
		Symbol:           "BTCUSDT",
		PositionAmt:      "-0.5",
		EntryPrice:       "43250.00",
		MarkPrice:        "43100.00",
		UnRealizedProfit: "75.0",
		LiquidationPrice: "51230.25",
		Leverage:         "10",
	}

	position, err := toGlobalPosition(risk)
	assert.NoError(t, err)
	assert.Equal(t, "BTCUSDT", position.Symbol)
	assert.True(t, position.IsShort())
	assert.Equal(t, 10, position.Leverage)
	assert.Equal(t, fixedpoint.MustNewFromString("43250"), position.EntryPrice)
}
