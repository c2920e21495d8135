package binance

import (
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/pkg/errors"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

func toLocalOrderType(orderType types.OrderType) (futures.OrderType, error) {
	switch orderType {
	case types.OrderTypeLimit:
		return futures.OrderTypeLimit, nil

	case types.OrderTypeMarket:
		return futures.OrderTypeMarket, nil

	case types.OrderTypeStopMarket:
		return futures.OrderTypeStopMarket, nil

	case types.OrderTypeStopLimit:
		return futures.OrderTypeStop, nil
	}

	return "", errors.Errorf("order type %s not supported", orderType)
}

func toGlobalOrderType(orderType futures.OrderType) types.OrderType {
	switch orderType {
	case futures.OrderTypeLimit:
		return types.OrderTypeLimit

	case futures.OrderTypeMarket:
		return types.OrderTypeMarket

	case futures.OrderTypeStopMarket:
		return types.OrderTypeStopMarket

	case futures.OrderTypeStop:
		return types.OrderTypeStopLimit

	default:
		log.Errorf("unsupported binance futures order type: %s", orderType)
		return types.OrderType(orderType)
	}
}

func toGlobalSideType(side futures.SideType) types.SideType {
	switch side {
	case futures.SideTypeBuy:
		return types.SideTypeBuy

	case futures.SideTypeSell:
		return types.SideTypeSell

	default:
		log.Errorf("can not convert futures side type: %q", side)
		return ""
	}
}

func toGlobalOrderStatus(orderStatus futures.OrderStatusType) types.OrderStatus {
	switch orderStatus {
	case futures.OrderStatusTypeNew:
		return types.OrderStatusNew

	case futures.OrderStatusTypePartiallyFilled:
		return types.OrderStatusPartiallyFilled

	case futures.OrderStatusTypeFilled:
		return types.OrderStatusFilled

	case futures.OrderStatusTypeCanceled:
		return types.OrderStatusCanceled

	case futures.OrderStatusTypeRejected:
		return types.OrderStatusRejected

	case futures.OrderStatusTypeExpired:
		return types.OrderStatusExpired
	}

	return types.OrderStatus(orderStatus)
}

func toGlobalOrder(futuresOrder *futures.Order) (*types.Order, error) {
	price := futuresOrder.Price
	if price == "" {
		price = futuresOrder.AvgPrice
	}

	return &types.Order{
		SubmitOrder: types.SubmitOrder{
			ClientOrderID: futuresOrder.ClientOrderID,
			Symbol:        futuresOrder.Symbol,
			Side:          toGlobalSideType(futuresOrder.Side),
			Type:          toGlobalOrderType(futuresOrder.Type),
			Quantity:      fixedpoint.MustNewFromString(futuresOrder.OrigQuantity),
			Price:         fixedpoint.MustNewFromString(price),
			StopPrice:     fixedpoint.MustNewFromString(futuresOrder.StopPrice),
			TimeInForce:   types.TimeInForce(futuresOrder.TimeInForce),
			ReduceOnly:    futuresOrder.ReduceOnly,
		},
		OrderID:          uint64(futuresOrder.OrderID),
		Status:           toGlobalOrderStatus(futuresOrder.Status),
		ExecutedQuantity: fixedpoint.MustNewFromString(futuresOrder.ExecutedQuantity),
		AvgPrice:         fixedpoint.MustNewFromString(futuresOrder.AvgPrice),
		CreationTime:     millisecondTime(futuresOrder.Time),
		UpdateTime:       millisecondTime(futuresOrder.UpdateTime),
	}, nil
}

func toGlobalOrderFromCreateResponse(response *futures.CreateOrderResponse) (*types.Order, error) {
	quantity, err := fixedpoint.NewFromString(response.OrigQuantity)
	if err != nil {
		return nil, errors.Wrapf(err, "quantity parse error: %q", response.OrigQuantity)
	}

	price := response.Price
	if price == "" || price == "0" {
		price = response.AvgPrice
	}

	return &types.Order{
		SubmitOrder: types.SubmitOrder{
			ClientOrderID: response.ClientOrderID,
			Symbol:        response.Symbol,
			Side:          toGlobalSideType(response.Side),
			Type:          toGlobalOrderType(response.Type),
			Quantity:      quantity,
			Price:         fixedpoint.MustNewFromString(price),
			StopPrice:     fixedpoint.MustNewFromString(response.StopPrice),
			TimeInForce:   types.TimeInForce(response.TimeInForce),
			ReduceOnly:    response.ReduceOnly,
		},
		OrderID:          uint64(response.OrderID),
		Status:           toGlobalOrderStatus(response.Status),
		ExecutedQuantity: fixedpoint.MustNewFromString(response.ExecutedQuantity),
		AvgPrice:         fixedpoint.MustNewFromString(response.AvgPrice),
		CreationTime:     millisecondTime(response.UpdateTime),
		UpdateTime:       millisecondTime(response.UpdateTime),
	}, nil
}

func toGlobalPosition(risk *futures.PositionRisk) (*types.FuturesPosition, error) {
	positionAmount, err := fixedpoint.NewFromString(risk.PositionAmt)
	if err != nil {
		return nil, errors.Wrapf(err, "position amount parse error: %q", risk.PositionAmt)
	}

	leverage, err := fixedpoint.NewFromString(risk.Leverage)
	if err != nil {
		return nil, errors.Wrapf(err, "leverage parse error: %q", risk.Leverage)
	}

	return &types.FuturesPosition{
		Symbol:           risk.Symbol,
		PositionAmount:   positionAmount,
		EntryPrice:       fixedpoint.MustNewFromString(risk.EntryPrice),
		MarkPrice:        fixedpoint.MustNewFromString(risk.MarkPrice),
		UnrealizedProfit: fixedpoint.MustNewFromString(risk.UnRealizedProfit),
		LiquidationPrice: fixedpoint.MustNewFromString(risk.LiquidationPrice),
		Leverage:         int(leverage.Int64()),
	}, nil
}

func toGlobalMarket(symbol futures.Symbol) (types.Market, error) {
	market := types.Market{
		Symbol:          symbol.Symbol,
		PricePrecision:  symbol.PricePrecision,
		VolumePrecision: symbol.QuantityPrecision,
		BaseCurrency:    symbol.BaseAsset,
		QuoteCurrency:   symbol.QuoteAsset,
	}

	if f := symbol.LotSizeFilter(); f != nil {
		market.MinQuantity = fixedpoint.MustNewFromString(f.MinQuantity)
		market.StepSize = fixedpoint.MustNewFromString(f.StepSize)
	}

	if f := symbol.PriceFilter(); f != nil {
		market.TickSize = fixedpoint.MustNewFromString(f.TickSize)
	}

	if f := symbol.MinNotionalFilter(); f != nil {
		market.MinNotional = fixedpoint.MustNewFromString(f.Notional)
	}

	return market, nil
}

func millisecondTime(t int64) time.Time {
	return time.Unix(0, t*int64(time.Millisecond))
}
