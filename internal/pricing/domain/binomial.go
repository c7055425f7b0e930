package domain

import (
	"fmt"
	"math"
)

// AmericanBinomialPrice 美式期权 CRR 二叉树定价
// 参数化：dt = T/N, u = exp(sigma·sqrt(dt)), d = 1/u,
// 风险中性概率 p = (exp(r·dt) - d)/(u - d)。
// 末层 N+1 个节点，逐层向前归纳，每个节点取 max(贴现延续价值, 立即行权价值)。
// 归纳原地复用末层数组，空间 O(N)，时间 O(N^2)。
func AmericanBinomialPrice(p MarketParams, c ContractSpec, steps int) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if steps <= 0 {
		return 0, fmt.Errorf("%w: lattice step count must be positive, got %d", ErrValidation, steps)
	}

	dt := p.Maturity / float64(steps)
	u := math.Exp(p.Vol * math.Sqrt(dt))
	d := 1 / u
	prob := (math.Exp(p.Rate*dt) - d) / (u - d)
	disc := math.Exp(-p.Rate * dt)

	// 末层资产价格 S·u^(N-i)·d^i 与期权价值
	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		s := p.Spot * math.Pow(u, float64(steps-i)) * math.Pow(d, float64(i))
		values[i] = payoff(c.Type, s, c.Strike)
	}

	for j := steps - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			continuation := disc * (prob*values[i] + (1-prob)*values[i+1])
			s := p.Spot * math.Pow(u, float64(j-i)) * math.Pow(d, float64(i))
			exercise := payoff(c.Type, s, c.Strike)
			values[i] = math.Max(continuation, exercise)
		}
	}
	return values[0], nil
}

// EarlyExercisePremium 提前行权溢价：美式价格减去同参数欧式闭式价格
func EarlyExercisePremium(p MarketParams, c ContractSpec, steps int) (float64, error) {
	american, err := AmericanBinomialPrice(p, c, steps)
	if err != nil {
		return 0, err
	}
	european, err := EuropeanPrice(p, c)
	if err != nil {
		return 0, err
	}
	return american - european, nil
}
