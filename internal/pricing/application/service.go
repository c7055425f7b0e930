package application

import (
	"context"
	"time"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/logger"
)

// Defaults 引擎默认调参，来自服务配置
type Defaults struct {
	Paths        int // 模拟路径数 N
	BatchSize    int // 单批路径数
	Workers      int // 并发批次上限
	LatticeSteps int // 二叉树默认步数
}

// PricingService 定价应用服务
// 每个合约类型一个入口：装配领域参数 → 调用对应引擎 → 映射 DTO。
// 服务本身无状态，随机种子逐请求注入（未指定时取自时钟），
// 并发请求之间不存在任何共享可变状态。
type PricingService struct {
	defaults Defaults
}

// NewPricingService 构造函数
func NewPricingService(d Defaults) *PricingService {
	if d.Paths <= 0 {
		d.Paths = 10000
	}
	if d.LatticeSteps <= 0 {
		d.LatticeSteps = 200
	}
	return &PricingService{defaults: d}
}

// PriceEuropean 欧式期权闭式定价
func (s *PricingService) PriceEuropean(ctx context.Context, cmd EuropeanCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot, Vol: cmd.Volatility,
		Rate: cmd.Rate, Repo: cmd.Repo, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike}

	price, err := domain.EuropeanPrice(params, contract)
	if err != nil {
		return nil, err
	}
	delta, err := domain.EuropeanDelta(params, contract)
	if err != nil {
		return nil, err
	}
	result := exact(price)
	result.Delta = &delta
	return toDTO("black_scholes", result, 0), nil
}

// ImpliedVolatility 由市场权利金反解隐含波动率
func (s *PricingService) ImpliedVolatility(ctx context.Context, cmd ImpliedVolCommand) (float64, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return 0, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot, Rate: cmd.Rate, Repo: cmd.Repo, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike}
	return domain.ImpliedVolatility(params, contract, cmd.Premium)
}

// PriceAmerican 美式期权二叉树定价
func (s *PricingService) PriceAmerican(ctx context.Context, cmd AmericanCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	steps := cmd.Steps
	if steps <= 0 {
		steps = s.defaults.LatticeSteps
	}
	params := domain.MarketParams{
		Spot: cmd.Spot, Vol: cmd.Volatility, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike}

	defer logger.LogDuration(ctx, "american binomial priced", "steps", steps)()
	price, err := domain.AmericanBinomialPrice(params, contract, steps)
	if err != nil {
		return nil, err
	}
	return toDTO("binomial_tree", exact(price), 0), nil
}

// PriceGeometricAsian 几何亚式闭式定价
func (s *PricingService) PriceGeometricAsian(ctx context.Context, cmd GeometricAsianCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot, Vol: cmd.Volatility, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike, Observations: cmd.Observations}

	price, err := domain.GeometricAsianPrice(params, contract)
	if err != nil {
		return nil, err
	}
	return toDTO("geometric_asian", exact(price), 0), nil
}

// PriceArithmeticAsian 算术亚式蒙特卡洛定价
func (s *PricingService) PriceArithmeticAsian(ctx context.Context, cmd ArithmeticAsianCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	cv, err := domain.ParseControlVariate(cmd.ControlVariate)
	if err != nil {
		return nil, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot, Vol: cmd.Volatility, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike, Observations: cmd.Observations}
	cfg := s.simConfig(cmd.Paths, cmd.Seed, cv)

	defer logger.LogDuration(ctx, "arithmetic asian priced", "paths", cfg.Paths, "control_variate", string(cv))()
	result, err := domain.ArithmeticAsianMC(ctx, params, contract, cfg)
	if err != nil {
		return nil, err
	}
	dto := toDTO("arithmetic_asian_mc", result, cfg.Seed)
	dto.Paths = cfg.Paths
	return dto, nil
}

// PriceGeometricBasket 几何篮子闭式定价
func (s *PricingService) PriceGeometricBasket(ctx context.Context, cmd GeometricBasketCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot1, Spot2: cmd.Spot2,
		Vol: cmd.Volatility1, Vol2: cmd.Volatility2,
		Corr: cmd.Correlation, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike}

	price, err := domain.GeometricBasketPrice(params, contract)
	if err != nil {
		return nil, err
	}
	return toDTO("geometric_basket", exact(price), 0), nil
}

// PriceArithmeticBasket 算术篮子蒙特卡洛定价
func (s *PricingService) PriceArithmeticBasket(ctx context.Context, cmd ArithmeticBasketCommand) (*EstimateDTO, error) {
	typ, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	cv, err := domain.ParseControlVariate(cmd.ControlVariate)
	if err != nil {
		return nil, err
	}
	params := domain.MarketParams{
		Spot: cmd.Spot1, Spot2: cmd.Spot2,
		Vol: cmd.Volatility1, Vol2: cmd.Volatility2,
		Corr: cmd.Correlation, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{Type: typ, Strike: cmd.Strike}
	cfg := s.simConfig(cmd.Paths, cmd.Seed, cv)

	defer logger.LogDuration(ctx, "arithmetic basket priced", "paths", cfg.Paths, "control_variate", string(cv))()
	result, err := domain.ArithmeticBasketMC(ctx, params, contract, cfg)
	if err != nil {
		return nil, err
	}
	dto := toDTO("arithmetic_basket_mc", result, cfg.Seed)
	dto.Paths = cfg.Paths
	return dto, nil
}

// PriceKIKOPut 敲入敲出看跌期权拟蒙特卡洛定价
// Delta 在本层用有限差分实现：现价上下各弹 1% 再完整模拟两次，
// 三次估值复用同一序列种子（公共随机数），压低 Greeks 的抽样噪声。
// 核心定价函数保持纯函数，不感知扰动。
func (s *PricingService) PriceKIKOPut(ctx context.Context, cmd KIKOPutCommand) (*EstimateDTO, error) {
	params := domain.MarketParams{
		Spot: cmd.Spot, Vol: cmd.Volatility, Rate: cmd.Rate, Maturity: cmd.Maturity,
	}
	contract := domain.ContractSpec{
		Type:         domain.OptionTypePut,
		Strike:       cmd.Strike,
		LowerBarrier: cmd.LowerBarrier,
		UpperBarrier: cmd.UpperBarrier,
		Rebate:       cmd.Rebate,
		Observations: cmd.Observations,
	}
	cfg := s.simConfig(cmd.Paths, cmd.Seed, domain.ControlVariateNone)

	defer logger.LogDuration(ctx, "kiko put priced", "paths", cfg.Paths, "with_delta", cmd.WithDelta)()
	result, err := domain.KIKOPutMC(ctx, params, contract, cfg)
	if err != nil {
		return nil, err
	}

	if cmd.WithDelta {
		h := cmd.Spot * 0.01
		up, down := params, params
		up.Spot = cmd.Spot + h
		down.Spot = cmd.Spot - h

		upResult, err := domain.KIKOPutMC(ctx, up, contract, cfg)
		if err != nil {
			return nil, err
		}
		downResult, err := domain.KIKOPutMC(ctx, down, contract, cfg)
		if err != nil {
			return nil, err
		}
		delta := (upResult.Price - downResult.Price) / (2 * h)
		result.Delta = &delta
	}
	dto := toDTO("kiko_quasi_mc", result, cfg.Seed)
	dto.Paths = cfg.Paths
	return dto, nil
}

// simConfig 装配模拟配置：未指定的路径数取默认值，种子缺省取时钟
func (s *PricingService) simConfig(paths int, seed uint64, cv domain.ControlVariateKind) domain.SimulationConfig {
	if paths <= 0 {
		paths = s.defaults.Paths
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return domain.SimulationConfig{
		Paths:          paths,
		Seed:           seed,
		ControlVariate: cv,
		BatchSize:      s.defaults.BatchSize,
		Workers:        s.defaults.Workers,
	}
}

// exact 包装无抽样误差的价格
func exact(price float64) *domain.EstimationResult {
	return &domain.EstimationResult{Price: price, ConfLow: price, ConfHigh: price}
}
