package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuropeanPrice(t *testing.T) {
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Repo: 0.02, Maturity: 1}

	tests := []struct {
		name string
		typ  OptionType
		want float64
	}{
		{"call with repo rate", OptionTypeCall, 9.227005508154036},
		{"put with repo rate", OptionTypePut, 6.330080627549918},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := EuropeanPrice(params, ContractSpec{Type: tt.typ, Strike: 100})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, price, 1e-9)
		})
	}
}

func TestEuropeanPriceZeroRepo(t *testing.T) {
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}
	price, err := EuropeanPrice(params, ContractSpec{Type: OptionTypeCall, Strike: 100})
	require.NoError(t, err)
	assert.InDelta(t, 10.450583572185565, price, 1e-9)
}

func TestEuropeanPutCallParity(t *testing.T) {
	// C - P = S·e^{-qT} - K·e^{-rT}
	params := MarketParams{Spot: 90, Vol: 0.35, Rate: 0.03, Repo: 0.01, Maturity: 2}
	contract := ContractSpec{Strike: 110}

	contract.Type = OptionTypeCall
	call, err := EuropeanPrice(params, contract)
	require.NoError(t, err)
	contract.Type = OptionTypePut
	put, err := EuropeanPrice(params, contract)
	require.NoError(t, err)

	forward := params.Spot*math.Exp(-params.Repo*params.Maturity) -
		contract.Strike*math.Exp(-params.Rate*params.Maturity)
	assert.InDelta(t, forward, call-put, 1e-9)
}

func TestEuropeanDelta(t *testing.T) {
	params := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Repo: 0.02, Maturity: 1}

	callDelta, err := EuropeanDelta(params, ContractSpec{Type: OptionTypeCall, Strike: 100})
	require.NoError(t, err)
	assert.InDelta(t, 0.586851146134764, callDelta, 1e-9)

	putDelta, err := EuropeanDelta(params, ContractSpec{Type: OptionTypePut, Strike: 100})
	require.NoError(t, err)
	// delta_put = delta_call - e^{-qT}
	assert.InDelta(t, callDelta-math.Exp(-params.Repo*params.Maturity), putDelta, 1e-12)
	assert.Negative(t, putDelta)
}

func TestEuropeanPriceValidation(t *testing.T) {
	valid := MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}

	tests := []struct {
		name   string
		mutate func(*MarketParams, *ContractSpec)
	}{
		{"zero spot", func(p *MarketParams, _ *ContractSpec) { p.Spot = 0 }},
		{"negative volatility", func(p *MarketParams, _ *ContractSpec) { p.Vol = -0.1 }},
		{"rate above one", func(p *MarketParams, _ *ContractSpec) { p.Rate = 1.5 }},
		{"negative repo", func(p *MarketParams, _ *ContractSpec) { p.Repo = -0.01 }},
		{"zero maturity", func(p *MarketParams, _ *ContractSpec) { p.Maturity = 0 }},
		{"zero strike", func(_ *MarketParams, c *ContractSpec) { c.Strike = 0 }},
		{"unknown option type", func(_ *MarketParams, c *ContractSpec) { c.Type = "STRADDLE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := valid, contract
			tt.mutate(&p, &c)
			_, err := EuropeanPrice(p, c)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
