package domain

import (
	"fmt"
	"math"
	"strings"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// ParseOptionType 解析期权类型字符串（大小写不敏感）
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToUpper(s) {
	case "CALL":
		return OptionTypeCall, nil
	case "PUT":
		return OptionTypePut, nil
	default:
		return "", fmt.Errorf("%w: option type must be CALL or PUT, got %q", ErrValidation, s)
	}
}

// MarketParams 市场参数
// 每次定价请求独立携带一份，定价过程中不可变。
// 双资产合约（篮子期权）额外使用 Spot2/Vol2/Corr。
type MarketParams struct {
	Spot     float64 // 标的资产现价 S(0)
	Spot2    float64 // 第二标的资产现价（仅篮子期权）
	Vol      float64 // 波动率 sigma
	Vol2     float64 // 第二标的波动率（仅篮子期权）
	Rate     float64 // 无风险利率 r
	Repo     float64 // 回购/股息率 q
	Corr     float64 // 两资产相关系数 rho（仅篮子期权）
	Maturity float64 // 到期时间 T（年）
}

// Validate 校验单资产市场参数
func (p MarketParams) Validate() error {
	if p.Spot <= 0 {
		return fmt.Errorf("%w: spot price must be positive, got %v", ErrValidation, p.Spot)
	}
	if p.Vol <= 0 {
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrValidation, p.Vol)
	}
	if p.Rate < 0 || p.Rate > 1 {
		return fmt.Errorf("%w: risk-free rate must be in [0,1], got %v", ErrValidation, p.Rate)
	}
	if p.Repo < 0 {
		return fmt.Errorf("%w: repo rate must be non-negative, got %v", ErrValidation, p.Repo)
	}
	if p.Maturity <= 0 {
		return fmt.Errorf("%w: time to maturity must be positive, got %v", ErrValidation, p.Maturity)
	}
	return nil
}

// ValidatePair 校验双资产市场参数
func (p MarketParams) ValidatePair() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Spot2 <= 0 {
		return fmt.Errorf("%w: second spot price must be positive, got %v", ErrValidation, p.Spot2)
	}
	if p.Vol2 <= 0 {
		return fmt.Errorf("%w: second volatility must be positive, got %v", ErrValidation, p.Vol2)
	}
	if p.Corr < -1 || p.Corr > 1 {
		return fmt.Errorf("%w: correlation must be in [-1,1], got %v", ErrValidation, p.Corr)
	}
	return nil
}

// ContractSpec 合约条款
type ContractSpec struct {
	Type         OptionType
	Strike       float64
	LowerBarrier float64 // 下障碍 L（仅障碍期权）
	UpperBarrier float64 // 上障碍 U（仅障碍期权）
	Rebate       float64 // 敲出现金补偿 R（仅障碍期权）
	Observations int     // 观察/监控次数 n
}

// Validate 校验基础合约条款
func (c ContractSpec) Validate() error {
	if c.Type != OptionTypeCall && c.Type != OptionTypePut {
		return fmt.Errorf("%w: option type must be CALL or PUT, got %q", ErrValidation, c.Type)
	}
	if c.Strike <= 0 {
		return fmt.Errorf("%w: strike price must be positive, got %v", ErrValidation, c.Strike)
	}
	return nil
}

// ValidateObservations 校验观察次数
func (c ContractSpec) ValidateObservations() error {
	if c.Observations <= 0 {
		return fmt.Errorf("%w: observation count must be positive, got %d", ErrValidation, c.Observations)
	}
	return nil
}

// ValidateBarriers 校验障碍条款：L < U 严格成立，补偿非负
func (c ContractSpec) ValidateBarriers() error {
	if c.LowerBarrier >= c.UpperBarrier {
		return fmt.Errorf("%w: lower barrier %v must be strictly below upper barrier %v",
			ErrValidation, c.LowerBarrier, c.UpperBarrier)
	}
	if c.Rebate < 0 {
		return fmt.Errorf("%w: cash rebate must be non-negative, got %v", ErrValidation, c.Rebate)
	}
	return nil
}

// ControlVariateKind 控制变量方法
type ControlVariateKind string

const (
	ControlVariateNone      ControlVariateKind = "none"
	ControlVariateGeometric ControlVariateKind = "geometric"
)

// ParseControlVariate 解析控制变量方法（空串视作 none）
func ParseControlVariate(s string) (ControlVariateKind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ControlVariateNone, nil
	case "geometric":
		return ControlVariateGeometric, nil
	default:
		return "", fmt.Errorf("%w: control variate must be none or geometric, got %q", ErrValidation, s)
	}
}

// SimulationConfig 模拟引擎调参
// Seed 为每次请求显式注入，保证结果可复现且并发请求互不干扰。
type SimulationConfig struct {
	Paths          int                // 模拟路径数 N
	Seed           uint64             // 随机源种子
	ControlVariate ControlVariateKind // 控制变量方法
	BatchSize      int                // 单批路径数，限制峰值内存
	Workers        int                // 并发批次上限
}

// Validate 校验模拟配置并填充批次默认值
func (c *SimulationConfig) Validate() error {
	if c.Paths <= 0 {
		return fmt.Errorf("%w: path count must be positive, got %d", ErrValidation, c.Paths)
	}
	if c.ControlVariate == "" {
		c.ControlVariate = ControlVariateNone
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return nil
}

const (
	defaultBatchSize = 4096
	defaultWorkers   = 4
)

// EstimationResult 估值结果
// 闭式解与树方法 StdErr 为 0，置信区间收缩为点。
type EstimationResult struct {
	Price    float64
	StdErr   float64
	ConfLow  float64
	ConfHigh float64
	Delta    *float64 // 请求时才计算
	Warning  string   // 非致命告警（如控制变量退化）
}

// newEstimationResult 组装结果，置信区间取 price ± 1.96·stderr
func newEstimationResult(price, stderr float64) *EstimationResult {
	return &EstimationResult{
		Price:    price,
		StdErr:   stderr,
		ConfLow:  price - 1.96*stderr,
		ConfHigh: price + 1.96*stderr,
	}
}

// exactResult 无抽样误差的结果（闭式解、格点法）
func exactResult(price float64) *EstimationResult {
	return newEstimationResult(price, 0)
}

// payoff 欧式到期收益
func payoff(typ OptionType, value, strike float64) float64 {
	if typ == OptionTypeCall {
		return math.Max(value-strike, 0)
	}
	return math.Max(strike-value, 0)
}
