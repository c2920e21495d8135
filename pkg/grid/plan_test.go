package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fugotrade/fugo/pkg/fixedpoint"
	"github.com/fugotrade/fugo/pkg/types"
)

func TestLevelPrices(t *testing.T) {
	plan := Plan{
		Symbol:           "BTCUSDT",
		Market:           types.NewMarket("BTCUSDT"),
		LowerPrice:       fixedpoint.NewFromInt(100),
		UpperPrice:       fixedpoint.NewFromInt(110),
		GridNum:          3,
		QuantityPerLevel: fixedpoint.MustNewFromString("0.01"),
	}

	prices, err := plan.LevelPrices()
	require.NoError(t, err)
	require.Len(t, prices, 3)

	assert.Equal(t, fixedpoint.NewFromInt(100), prices[0])
	assert.Equal(t, fixedpoint.NewFromInt(105), prices[1])
	assert.Equal(t, fixedpoint.NewFromInt(110), prices[2])
}

func TestLevelPricesStrictlyIncreasing(t *testing.T) {
	plan := Plan{
		Symbol:           "BTCUSDT",
		Market:           types.NewMarket("BTCUSDT"),
		LowerPrice:       fixedpoint.MustNewFromString("43000.17"),
		UpperPrice:       fixedpoint.MustNewFromString("44317.53"),
		GridNum:          20,
		QuantityPerLevel: fixedpoint.MustNewFromString("0.01"),
	}

	prices, err := plan.LevelPrices()
	require.NoError(t, err)
	require.Len(t, prices, 20)

	for k := 1; k < len(prices); k++ {
		assert.True(t, prices[k].Compare(prices[k-1]) > 0,
			"level %d price %s is not above %s", k, prices[k].String(), prices[k-1].String())
	}

	assert.Equal(t, plan.LowerPrice, prices[0])
	assert.Equal(t, plan.UpperPrice, prices[len(prices)-1])
}

func TestLevelPricesCollapse(t *testing.T) {
	// 0.02 spread over 5 levels is below the 2-digit price precision
	plan := Plan{
		Symbol:           "BTCUSDT",
		Market:           types.NewMarket("BTCUSDT"),
		LowerPrice:       fixedpoint.MustNewFromString("100.00"),
		UpperPrice:       fixedpoint.MustNewFromString("100.02"),
		GridNum:          5,
		QuantityPerLevel: fixedpoint.MustNewFromString("0.01"),
	}

	_, err := plan.LevelPrices()
	assert.Error(t, err)
}

func TestPlanValidate(t *testing.T) {
	valid := Plan{
		Symbol:           "BTCUSDT",
		LowerPrice:       fixedpoint.NewFromInt(100),
		UpperPrice:       fixedpoint.NewFromInt(110),
		GridNum:          3,
		QuantityPerLevel: fixedpoint.MustNewFromString("0.01"),
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.LowerPrice, inverted.UpperPrice = inverted.UpperPrice, inverted.LowerPrice
	assert.Error(t, inverted.Validate())

	tooFew := valid
	tooFew.GridNum = 1
	assert.Error(t, tooFew.Validate())

	noQuantity := valid
	noQuantity.QuantityPerLevel = fixedpoint.Zero
	assert.Error(t, noQuantity.Validate())

	negativePoll := valid
	negativePoll.PollInterval = types.Duration(-time.Second)
	assert.Error(t, negativePoll.Validate())
}
