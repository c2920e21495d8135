package types

import (
	"fmt"
	"time"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
)

// OrderType define order type
type OrderType string

const (
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeStopLimit  OrderType = "STOP_LIMIT"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
)

// IsPriceRequired tells whether the order type carries a limit price.
func (t OrderType) IsPriceRequired() bool {
	return t == OrderTypeLimit || t == OrderTypeStopLimit
}

// IsStopPriceRequired tells whether the order type carries a stop trigger price.
func (t OrderType) IsStopPriceRequired() bool {
	return t == OrderTypeStopMarket || t == OrderTypeStopLimit
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// Closed means the order is in a terminal state and will never fill further.
func (s OrderStatus) Closed() bool {
	return s == OrderStatusFilled || s == OrderStatusCanceled || s == OrderStatusRejected || s == OrderStatusExpired
}

type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

type SubmitOrder struct {
	ClientOrderID string `json:"clientOrderID,omitempty"`

	Symbol string    `json:"symbol"`
	Side   SideType  `json:"side"`
	Type   OrderType `json:"orderType"`

	Quantity  fixedpoint.Value `json:"quantity"`
	Price     fixedpoint.Value `json:"price,omitempty"`
	StopPrice fixedpoint.Value `json:"stopPrice,omitempty"`

	Market Market `json:"-"`

	TimeInForce TimeInForce `json:"timeInForce,omitempty"`

	ReduceOnly bool `json:"reduceOnly,omitempty"`
}

func (o SubmitOrder) String() string {
	switch o.Type {
	case OrderTypeMarket:
		return fmt.Sprintf("SubmitOrder %s %s %s %s", o.Symbol, o.Type, o.Side, o.Quantity.String())

	case OrderTypeStopMarket:
		return fmt.Sprintf("SubmitOrder %s %s %s %s stop@%s", o.Symbol, o.Type, o.Side, o.Quantity.String(), o.StopPrice.String())

	case OrderTypeStopLimit:
		return fmt.Sprintf("SubmitOrder %s %s %s %s @ %s stop@%s", o.Symbol, o.Type, o.Side, o.Quantity.String(), o.Price.String(), o.StopPrice.String())
	}

	return fmt.Sprintf("SubmitOrder %s %s %s %s @ %s", o.Symbol, o.Type, o.Side, o.Quantity.String(), o.Price.String())
}

type Order struct {
	SubmitOrder

	OrderID          uint64           `json:"orderID"`
	Status           OrderStatus      `json:"status"`
	ExecutedQuantity fixedpoint.Value `json:"executedQuantity"`
	AvgPrice         fixedpoint.Value `json:"avgPrice,omitempty"`
	CreationTime     time.Time        `json:"creationTime"`
	UpdateTime       time.Time        `json:"updateTime"`
}

func (o Order) String() string {
	return fmt.Sprintf("ORDER %s %s %s %s @ %s executed %s status %s id %d",
		o.Symbol,
		o.Type,
		o.Side,
		o.Quantity.String(),
		o.Price.String(),
		o.ExecutedQuantity.String(),
		o.Status,
		o.OrderID)
}
