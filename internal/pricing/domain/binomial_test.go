package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmericanBinomialPut(t *testing.T) {
	params := MarketParams{Spot: 50, Vol: 0.4, Rate: 0.1, Maturity: 2}

	tests := []struct {
		strike float64
		want   float64
	}{
		{40, 3.418463990620998},
		{50, 7.46761180462987},
		{70, 20.83141692507614},
	}
	for _, tt := range tests {
		price, err := AmericanBinomialPrice(params, ContractSpec{Type: OptionTypePut, Strike: tt.strike}, 200)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, price, 1e-9, "strike=%v", tt.strike)
	}
}

func TestAmericanPutDominatesEuropean(t *testing.T) {
	// 提前行权权利非负：美式看跌价格不低于同参数欧式
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}
	contract := ContractSpec{Type: OptionTypePut, Strike: 100}

	american, err := AmericanBinomialPrice(params, contract, 200)
	require.NoError(t, err)
	assert.InDelta(t, 6.086382749916062, american, 1e-9)

	european, err := EuropeanPrice(params, contract)
	require.NoError(t, err)
	assert.Greater(t, american, european)
}

func TestAmericanCallNoDividendMatchesEuropean(t *testing.T) {
	// 无股息时美式看涨不该提前行权，格点价随步数收敛到闭式解
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}

	american, err := AmericanBinomialPrice(params, contract, 500)
	require.NoError(t, err)
	assert.InDelta(t, 10.44658513644654, american, 1e-9)

	european, err := EuropeanPrice(params, contract)
	require.NoError(t, err)
	assert.InDelta(t, european, american, 0.05)
}

func TestEarlyExercisePremium(t *testing.T) {
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}

	premium, err := EarlyExercisePremium(params, ContractSpec{Type: OptionTypePut, Strike: 100}, 200)
	require.NoError(t, err)
	assert.Positive(t, premium)
	assert.InDelta(t, 6.086382749916062-5.573526022256971, premium, 1e-9)
}

func TestAmericanBinomialValidation(t *testing.T) {
	params := MarketParams{Spot: 50, Vol: 0.4, Rate: 0.1, Maturity: 2}
	contract := ContractSpec{Type: OptionTypePut, Strike: 50}

	_, err := AmericanBinomialPrice(params, contract, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = AmericanBinomialPrice(params, contract, -10)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = AmericanBinomialPrice(MarketParams{}, contract, 100)
	assert.ErrorIs(t, err, ErrValidation)
}
