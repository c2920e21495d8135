package grid

import (
	"github.com/pkg/errors"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

// DefaultPollInterval is how often the runner checks grid orders for fills.
const DefaultPollInterval = types.Duration(5e9) // 5s

// Plan describes a ladder of limit orders across a price range. Levels below
// the current price are buys, levels above are sells; a filled order is
// replaced with the opposite side at the same level until the grid is stopped.
type Plan struct {
	Symbol string       `json:"symbol"`
	Market types.Market `json:"-"`

	LowerPrice fixedpoint.Value `json:"lowerPrice"`
	UpperPrice fixedpoint.Value `json:"upperPrice"`

	// GridNum is the number of price levels, at least 2
	GridNum int `json:"gridNumber"`

	// QuantityPerLevel is the order quantity posted at each level
	QuantityPerLevel fixedpoint.Value `json:"quantityPerLevel"`

	// PollInterval is the wait between order status checks
	PollInterval types.Duration `json:"pollInterval,omitempty"`
}

func (p *Plan) Validate() error {
	if p.UpperPrice.Compare(p.LowerPrice) <= 0 {
		return errors.Errorf("upper price %s should be greater than lower price %s",
			p.UpperPrice.String(), p.LowerPrice.String())
	}

	if p.GridNum < 2 {
		return errors.Errorf("grid number must be at least 2, got %d", p.GridNum)
	}

	if p.QuantityPerLevel.Sign() <= 0 {
		return errors.Errorf("quantity per level must be positive, got %s", p.QuantityPerLevel.String())
	}

	if p.PollInterval < 0 {
		return errors.Errorf("poll interval must not be negative, got %s", p.PollInterval.Duration())
	}

	return nil
}

// LevelPrices spaces the levels evenly over [lower, upper], truncated to the
// market price precision. The prices are strictly increasing.
func (p *Plan) LevelPrices() ([]fixedpoint.Value, error) {
	market := p.Market
	if market.Symbol == "" {
		market = types.NewMarket(p.Symbol)
	}

	spread := p.UpperPrice.Sub(p.LowerPrice).Div(fixedpoint.NewFromInt(int64(p.GridNum - 1)))

	prices := make([]fixedpoint.Value, p.GridNum)
	for k := 0; k < p.GridNum; k++ {
		price := p.LowerPrice.Add(spread.Mul(fixedpoint.NewFromInt(int64(k))))
		if k == p.GridNum-1 {
			// keep the top of the ladder exactly on the upper bound
			price = p.UpperPrice
		}

		price = market.TruncatePrice(price)
		if k > 0 && price.Compare(prices[k-1]) <= 0 {
			return nil, errors.Errorf("grid levels collapsed at %s: spread %s is below the price precision %d",
				price.String(), spread.String(), market.PricePrecision)
		}

		prices[k] = price
	}

	return prices, nil
}
