package domain

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal 标准正态分布，仅使用 CDF/Quantile，不涉及随机源
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// EuropeanPrice 计算欧式期权的 Black-Scholes 价格（含回购/股息率 q）
func EuropeanPrice(p MarketParams, c ContractSpec) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return europeanPrice(p.Spot, c.Strike, p.Rate, p.Repo, p.Maturity, p.Vol, c.Type), nil
}

// europeanPrice 不做校验的内部实现，供求根等高频调用复用
func europeanPrice(s, k, r, q, t, sigma float64, typ OptionType) float64 {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	if typ == OptionTypeCall {
		return s*math.Exp(-q*t)*stdNormal.CDF(d1) - k*math.Exp(-r*t)*stdNormal.CDF(d2)
	}
	return k*math.Exp(-r*t)*stdNormal.CDF(-d2) - s*math.Exp(-q*t)*stdNormal.CDF(-d1)
}

// EuropeanDelta 欧式期权解析 Delta
func EuropeanDelta(p MarketParams, c ContractSpec) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	d1 := (math.Log(p.Spot/c.Strike) + (p.Rate-p.Repo+0.5*p.Vol*p.Vol)*p.Maturity) /
		(p.Vol * math.Sqrt(p.Maturity))
	if c.Type == OptionTypeCall {
		return math.Exp(-p.Repo*p.Maturity) * stdNormal.CDF(d1), nil
	}
	return math.Exp(-p.Repo*p.Maturity) * (stdNormal.CDF(d1) - 1), nil
}
