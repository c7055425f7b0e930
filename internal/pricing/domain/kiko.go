package domain

import (
	"context"
	"math"
)

// KIKOPutMC 敲入敲出（KIKO）看跌期权的拟蒙特卡洛定价
// 驱动随机数来自 Observations 维的随机化低差异序列（每个监控时点
// 占一维），经逆正态 CDF 变换；障碍只在离散观察时点判定。
// 序列点必须按序消费，批次仅用于限制峰值内存并提供取消检查点，
// 路径生成本身是顺序的：相同种子严格复现同一结果。
func KIKOPutMC(ctx context.Context, p MarketParams, c ContractSpec, cfg SimulationConfig) (*EstimationResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.ValidateObservations(); err != nil {
		return nil, err
	}
	if err := c.ValidateBarriers(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seq := NewLowDiscrepancySequence(c.Observations, cfg.Seed)
	params := newPathParams(p.Spot, p.Rate, p.Vol, p.Maturity, c.Observations)
	monitor := BarrierMonitor{Lower: c.LowerBarrier, Upper: c.UpperBarrier}

	shocks := make([]float64, c.Observations)
	path := make([]float64, c.Observations+1)

	var acc welford
	for start := 0; start < cfg.Paths; start += cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + cfg.BatchSize
		if end > cfg.Paths {
			end = cfg.Paths
		}
		for i := start; i < end; i++ {
			seq.NextNormals(shocks)
			params.fill(path, shocks)
			state := monitor.Walk(path)
			acc.Add(monitor.Payoff(state, c.Strike, path[len(path)-1], c.Rebate))
		}
	}

	disc := math.Exp(-p.Rate * p.Maturity)
	return newEstimationResult(disc*acc.Mean(), disc*acc.StdErr()), nil
}
