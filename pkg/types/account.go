package types

import (
	"time"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
)

// FuturesAccount is the USDT-M futures wallet summary.
type FuturesAccount struct {
	TotalWalletBalance    fixedpoint.Value `json:"totalWalletBalance"`
	TotalUnrealizedProfit fixedpoint.Value `json:"totalUnrealizedProfit"`
	TotalMarginBalance    fixedpoint.Value `json:"totalMarginBalance"`
	AvailableBalance      fixedpoint.Value `json:"availableBalance"`
}

// FuturesPosition is a single-symbol position snapshot.
type FuturesPosition struct {
	Symbol string `json:"symbol"`

	// PositionAmount is signed, positive for long and negative for short
	PositionAmount   fixedpoint.Value `json:"positionAmount"`
	EntryPrice       fixedpoint.Value `json:"entryPrice"`
	MarkPrice        fixedpoint.Value `json:"markPrice"`
	UnrealizedProfit fixedpoint.Value `json:"unrealizedProfit"`
	LiquidationPrice fixedpoint.Value `json:"liquidationPrice,omitempty"`
	Leverage         int              `json:"leverage"`

	UpdateTime time.Time `json:"updateTime"`
}

func (p FuturesPosition) IsLong() bool {
	return p.PositionAmount.Sign() > 0
}

func (p FuturesPosition) IsShort() bool {
	return p.PositionAmount.Sign() < 0
}

func (p FuturesPosition) IsClosed() bool {
	return p.PositionAmount.IsZero()
}
