package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basketTestParams() MarketParams {
	return MarketParams{
		Spot: 100, Spot2: 100, Vol: 0.3, Vol2: 0.3,
		Rate: 0.05, Corr: 0.5, Maturity: 3,
	}
}

func TestArithmeticBasketMCPerfectCorrelationMatchesEuropean(t *testing.T) {
	// rho=1 且两资产同参数时，两条终端价恒等，篮子退化为单资产欧式
	params := MarketParams{
		Spot: 100, Spot2: 100, Vol: 0.2, Vol2: 0.2,
		Rate: 0.05, Corr: 1, Maturity: 1,
	}
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}
	cfg := SimulationConfig{Paths: 200000, Seed: 42}

	result, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)

	european, err := EuropeanPrice(MarketParams{Spot: 100, Vol: 0.2, Rate: 0.05, Maturity: 1}, contract)
	require.NoError(t, err)
	assert.InDelta(t, european, result.Price, 4*result.StdErr)
}

func TestArithmeticBasketMCConverges(t *testing.T) {
	// 独立实现的长程模拟参考值
	params := basketTestParams()
	cfg := SimulationConfig{Paths: 200000, Seed: 7}

	call, err := ArithmeticBasketMC(context.Background(), params, ContractSpec{Type: OptionTypeCall, Strike: 100}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 24.53, call.Price, 1.0)

	put, err := ArithmeticBasketMC(context.Background(), params, ContractSpec{Type: OptionTypePut, Strike: 100}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 10.59, put.Price, 1.0)
}

func TestArithmeticBasketMCDeterministic(t *testing.T) {
	params := basketTestParams()
	contract := ContractSpec{Type: OptionTypePut, Strike: 100}
	cfg := SimulationConfig{Paths: 20000, Seed: 1234}

	a, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)
	b, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Price, b.Price)
	assert.Equal(t, a.StdErr, b.StdErr)
}

func TestArithmeticBasketMCWorkerCountInvariant(t *testing.T) {
	params := basketTestParams()
	contract := ContractSpec{Type: OptionTypePut, Strike: 100}

	cfg := SimulationConfig{Paths: 20000, Seed: 99, BatchSize: 1000, Workers: 1}
	serial, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	parallel, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)

	assert.Equal(t, serial.Price, parallel.Price)
	assert.Equal(t, serial.StdErr, parallel.StdErr)
}

func TestArithmeticBasketMCControlVariate(t *testing.T) {
	params := basketTestParams()
	contract := ContractSpec{Type: OptionTypePut, Strike: 100}

	plainCfg := SimulationConfig{Paths: 50000, Seed: 321}
	plain, err := ArithmeticBasketMC(context.Background(), params, contract, plainCfg)
	require.NoError(t, err)

	cvCfg := plainCfg
	cvCfg.ControlVariate = ControlVariateGeometric
	controlled, err := ArithmeticBasketMC(context.Background(), params, contract, cvCfg)
	require.NoError(t, err)

	assert.Less(t, controlled.StdErr, plain.StdErr)
	assert.Empty(t, controlled.Warning)
}

func TestArithmeticBasketMCControlVariateDegeneratesToClosedForm(t *testing.T) {
	// rho=1 且同参数时两条终端价恒等，算术与几何收益逐路径相同，
	// beta=1，调整后估计量坍缩为几何闭式解本身
	params := MarketParams{
		Spot: 100, Spot2: 100, Vol: 0.3, Vol2: 0.3,
		Rate: 0.05, Corr: 1, Maturity: 3,
	}
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}
	cfg := SimulationConfig{Paths: 10000, Seed: 13, ControlVariate: ControlVariateGeometric}

	result, err := ArithmeticBasketMC(context.Background(), params, contract, cfg)
	require.NoError(t, err)

	closed, err := GeometricBasketPrice(params, contract)
	require.NoError(t, err)
	assert.InDelta(t, closed, result.Price, 1e-9)
	assert.InDelta(t, 0, result.StdErr, 1e-9)
}

func TestArithmeticBasketMCCancellation(t *testing.T) {
	params := basketTestParams()
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}
	cfg := SimulationConfig{Paths: 1000000, Seed: 5}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ArithmeticBasketMC(ctx, params, contract, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArithmeticBasketMCValidation(t *testing.T) {
	contract := ContractSpec{Type: OptionTypeCall, Strike: 100}
	cfg := SimulationConfig{Paths: 1000, Seed: 1}

	bad := basketTestParams()
	bad.Spot2 = 0
	_, err := ArithmeticBasketMC(context.Background(), bad, contract, cfg)
	assert.ErrorIs(t, err, ErrValidation)

	bad = basketTestParams()
	bad.Corr = 2
	_, err = ArithmeticBasketMC(context.Background(), bad, contract, cfg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCorrelatedPair(t *testing.T) {
	z1, z2 := correlatedPair(0.7, -1.3, 1)
	assert.Equal(t, 0.7, z1)
	assert.InDelta(t, 0.7, z2, 1e-12)

	_, z2 = correlatedPair(0.7, -1.3, 0)
	assert.Equal(t, -1.3, z2)

	_, z2 = correlatedPair(0.7, -1.3, -1)
	assert.InDelta(t, -0.7, z2, 1e-12)
}
