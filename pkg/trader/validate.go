package trader

import (
	"regexp"

	"github.com/fugotrade/fugo/pkg/types"
)

// only USDT-M perpetual contracts are supported, e.g. BTCUSDT
var symbolPattern = regexp.MustCompile(`^[A-Z]+USDT$`)

func validateSymbol(symbol string) error {
	if len(symbol) == 0 {
		return validationErrorf("symbol", "symbol can not be empty")
	}

	if !symbolPattern.MatchString(symbol) {
		return validationErrorf("symbol", "invalid symbol format %q, expected a USDT-M contract like BTCUSDT", symbol)
	}

	return nil
}

func validateSubmitOrder(order types.SubmitOrder) error {
	if err := validateSymbol(order.Symbol); err != nil {
		return err
	}

	switch order.Side {
	case types.SideTypeBuy, types.SideTypeSell:
	default:
		return validationErrorf("side", "side must be BUY or SELL, got %q", order.Side)
	}

	switch order.Type {
	case types.OrderTypeMarket, types.OrderTypeLimit, types.OrderTypeStopMarket, types.OrderTypeStopLimit:
	default:
		return validationErrorf("type", "unsupported order type %q", order.Type)
	}

	if order.Quantity.Sign() <= 0 {
		return validationErrorf("quantity", "quantity must be greater than 0, got %s", order.Quantity.String())
	}

	if order.Type.IsPriceRequired() {
		if order.Price.Sign() <= 0 {
			return validationErrorf("price", "%s order requires a positive price", order.Type)
		}
	} else if order.Price.Sign() != 0 {
		return validationErrorf("price", "%s order must not carry a price", order.Type)
	}

	if order.Type.IsStopPriceRequired() {
		if order.StopPrice.Sign() <= 0 {
			return validationErrorf("stopPrice", "%s order requires a positive stop price", order.Type)
		}
	} else if order.StopPrice.Sign() != 0 {
		return validationErrorf("stopPrice", "%s order must not carry a stop price", order.Type)
	}

	return nil
}
