package binance

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

var log = logrus.WithFields(logrus.Fields{
	"exchange": "binance",
})

func init() {
	_ = types.Exchange(&Exchange{})
}

// Exchange wraps the authenticated binance USDT-M futures REST client.
type Exchange struct {
	client *futures.Client
}

// New creates a futures exchange client. When testnet is true all requests go
// to testnet.binancefuture.com.
func New(key, secret string, testnet bool) *Exchange {
	futures.UseTestnet = testnet
	client := binance.NewFuturesClient(key, secret)
	return &Exchange{
		client: client,
	}
}

func (e *Exchange) Name() types.ExchangeName {
	return types.ExchangeBinance
}

func (e *Exchange) QueryTicker(ctx context.Context, symbol string) (fixedpoint.Value, error) {
	prices, err := e.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return fixedpoint.Zero, errors.Wrapf(err, "can not query ticker of %s", symbol)
	}

	if len(prices) == 0 {
		return fixedpoint.Zero, errors.Errorf("empty ticker response for %s", symbol)
	}

	return fixedpoint.NewFromString(prices[0].Price)
}

func (e *Exchange) QueryMarket(ctx context.Context, symbol string) (types.Market, error) {
	info, err := e.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return types.Market{}, errors.Wrap(err, "can not query exchange info")
	}

	for _, s := range info.Symbols {
		if s.Symbol == symbol {
			return toGlobalMarket(s)
		}
	}

	return types.Market{}, errors.Errorf("symbol %s not found in exchange info", symbol)
}

func (e *Exchange) QueryAccount(ctx context.Context) (*types.FuturesAccount, error) {
	account, err := e.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can not query futures account")
	}

	return &types.FuturesAccount{
		TotalWalletBalance:    fixedpoint.MustNewFromString(account.TotalWalletBalance),
		TotalUnrealizedProfit: fixedpoint.MustNewFromString(account.TotalUnrealizedProfit),
		TotalMarginBalance:    fixedpoint.MustNewFromString(account.TotalMarginBalance),
		AvailableBalance:      fixedpoint.MustNewFromString(account.AvailableBalance),
	}, nil
}

func (e *Exchange) QueryPosition(ctx context.Context, symbol string) (*types.FuturesPosition, error) {
	risks, err := e.client.NewGetPositionRiskService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "can not query position of %s", symbol)
	}

	if len(risks) == 0 {
		return nil, errors.Errorf("no position information for %s", symbol)
	}

	return toGlobalPosition(risks[0])
}

func (e *Exchange) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	resp, err := e.client.NewChangeLeverageService().
		Symbol(symbol).
		Leverage(leverage).
		Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "can not change leverage of %s to %dx", symbol, leverage)
	}

	log.Infof("leverage of %s changed to %dx", resp.Symbol, resp.Leverage)
	return nil
}

func (e *Exchange) SubmitOrder(ctx context.Context, order types.SubmitOrder) (*types.Order, error) {
	orderType, err := toLocalOrderType(order.Type)
	if err != nil {
		return nil, err
	}

	clientOrderID := order.ClientOrderID
	if len(clientOrderID) == 0 {
		clientOrderID = uuid.New().String()
	}

	req := e.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(futures.SideType(order.Side)).
		Type(orderType).
		NewClientOrderID(clientOrderID).
		Quantity(order.Market.FormatQuantity(order.Quantity))

	if order.Type.IsPriceRequired() {
		req.Price(order.Market.FormatPrice(order.Price))
	}

	if order.Type.IsStopPriceRequired() {
		req.StopPrice(order.Market.FormatPrice(order.StopPrice))
	}

	// market orders must not carry a time-in-force parameter
	if len(order.TimeInForce) > 0 && order.Type != types.OrderTypeMarket && order.Type != types.OrderTypeStopMarket {
		req.TimeInForce(futures.TimeInForceType(order.TimeInForce))
	}

	if order.ReduceOnly {
		req.ReduceOnly(order.ReduceOnly)
	}

	response, err := req.Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "can not submit order %s", order.String())
	}

	log.Debugf("order creation response: %+v", response)

	createdOrder, err := toGlobalOrderFromCreateResponse(response)
	if err != nil {
		return nil, err
	}

	createdOrder.Market = order.Market
	return createdOrder, nil
}

func (e *Exchange) QueryOrder(ctx context.Context, symbol string, orderID uint64) (*types.Order, error) {
	futuresOrder, err := e.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(int64(orderID)).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "can not query order %s #%d", symbol, orderID)
	}

	return toGlobalOrder(futuresOrder)
}

func (e *Exchange) QueryOpenOrders(ctx context.Context, symbol string) (orders []types.Order, err error) {
	futuresOrders, err := e.client.NewListOpenOrdersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "can not query open orders of %s", symbol)
	}

	for _, futuresOrder := range futuresOrders {
		order, err := toGlobalOrder(futuresOrder)
		if err != nil {
			return orders, err
		}

		orders = append(orders, *order)
	}

	return orders, nil
}

func (e *Exchange) CancelOrder(ctx context.Context, symbol string, orderID uint64) error {
	_, err := e.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(int64(orderID)).
		Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "can not cancel order %s #%d", symbol, orderID)
	}

	return nil
}

func (e *Exchange) CancelAllOrders(ctx context.Context, symbol string) error {
	if err := e.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx); err != nil {
		return errors.Wrapf(err, "can not cancel all open orders of %s", symbol)
	}

	return nil
}
