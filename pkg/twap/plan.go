package twap

import (
	"github.com/pkg/errors"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// Plan splits a total quantity into equal market-order slices submitted at a
// fixed interval.
type Plan struct {
	Symbol string         `json:"symbol"`
	Side   types.SideType `json:"side"`
	Market types.Market   `json:"-"`

	TotalQuantity fixedpoint.Value `json:"totalQuantity"`

	// Slices is the number of child orders, at least 1
	Slices int `json:"slices"`

	// Interval is the wait between child orders. Zero submits back to back.
	Interval types.Duration `json:"interval"`
}

func (p *Plan) Validate() error {
	if p.TotalQuantity.Sign() <= 0 {
		return errors.Errorf("total quantity must be positive, got %s", p.TotalQuantity.String())
	}

	if p.Slices < 1 {
		return errors.Errorf("slices must be at least 1, got %d", p.Slices)
	}

	if p.Interval < 0 {
		return errors.Errorf("interval must not be negative, got %s", p.Interval.Duration())
	}

	switch p.Side {
	case types.SideTypeBuy, types.SideTypeSell:
	default:
		return errors.Errorf("side must be BUY or SELL, got %q", p.Side)
	}

	return nil
}

// SliceQuantities returns the per-slice quantities. Every slice is the total
// divided by the slice count truncated to the market's volume precision; the
// last slice absorbs the truncation remainder so the sum stays within one
// precision unit of the total.
func (p *Plan) SliceQuantities() ([]fixedpoint.Value, error) {
	market := p.Market
	if market.Symbol == "" {
		market = types.NewMarket(p.Symbol)
	}

	base := market.TruncateQuantity(p.TotalQuantity.Div(fixedpoint.NewFromInt(int64(p.Slices))))
	if base.Sign() <= 0 {
		return nil, errors.Errorf("per-slice quantity of %s / %d is zero at precision %d",
			p.TotalQuantity.String(), p.Slices, market.VolumePrecision)
	}

	quantities := make([]fixedpoint.Value, p.Slices)
	for i := 0; i < p.Slices-1; i++ {
		quantities[i] = base
	}

	quantities[p.Slices-1] = p.TotalQuantity.Sub(base.Mul(fixedpoint.NewFromInt(int64(p.Slices - 1))))
	return quantities, nil
}
