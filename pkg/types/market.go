package types

import (
	"strings"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
)

// Market stores the trading rules of a futures symbol, for example
// PricePrecision, VolumePrecision, MinQuantity and MinNotional.
type Market struct {
	Symbol string `json:"symbol"`

	PricePrecision  int `json:"pricePrecision"`
	VolumePrecision int `json:"volumePrecision"`

	BaseCurrency  string `json:"baseCurrency"`
	QuoteCurrency string `json:"quoteCurrency"`

	// MinNotional is the minimum price * quantity allowed for an order
	MinNotional fixedpoint.Value `json:"minNotional,omitempty"`

	// MinQuantity is the LOT_SIZE minimum order quantity
	MinQuantity fixedpoint.Value `json:"minQuantity,omitempty"`

	TickSize fixedpoint.Value `json:"tickSize,omitempty"`
	StepSize fixedpoint.Value `json:"stepSize,omitempty"`
}

// TruncateQuantity rounds the quantity down to the volume precision so the
// exchange's LOT_SIZE filter accepts it.
func (m Market) TruncateQuantity(quantity fixedpoint.Value) fixedpoint.Value {
	return quantity.Trunc(m.VolumePrecision)
}

func (m Market) TruncatePrice(price fixedpoint.Value) fixedpoint.Value {
	return price.Trunc(m.PricePrecision)
}

func (m Market) FormatQuantity(quantity fixedpoint.Value) string {
	return quantity.FormatString(m.VolumePrecision)
}

func (m Market) FormatPrice(price fixedpoint.Value) string {
	return price.FormatString(m.PricePrecision)
}

// IsDustQuantity checks whether the quantity is too small to be accepted.
func (m Market) IsDustQuantity(quantity, price fixedpoint.Value) bool {
	if quantity.Compare(m.MinQuantity) < 0 {
		return true
	}

	return m.MinNotional.Sign() > 0 && quantity.Mul(price).Compare(m.MinNotional) < 0
}

// NewMarket builds a market with the default USDT-M perpetual trading rules.
// The real filters should come from the exchange info endpoint; these defaults
// match the BTCUSDT testnet contract.
func NewMarket(symbol string) Market {
	base := strings.TrimSuffix(strings.ToUpper(symbol), "USDT")
	return Market{
		Symbol:          strings.ToUpper(symbol),
		PricePrecision:  2,
		VolumePrecision: 3,
		BaseCurrency:    base,
		QuoteCurrency:   "USDT",
		MinQuantity:     fixedpoint.MustNewFromString("0.001"),
		MinNotional:     fixedpoint.NewFromInt(5),
		TickSize:        fixedpoint.MustNewFromString("0.01"),
		StepSize:        fixedpoint.MustNewFromString("0.001"),
	}
}
