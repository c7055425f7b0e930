package domain

import "math"

// pathParams 单资产对数正态路径的预计算常量
type pathParams struct {
	spot  float64
	drift float64 // (r - sigma^2/2)·dt
	vol   float64 // sigma·sqrt(dt)
	steps int
}

func newPathParams(spot, rate, sigma, maturity float64, steps int) pathParams {
	dt := maturity / float64(steps)
	return pathParams{
		spot:  spot,
		drift: (rate - 0.5*sigma*sigma) * dt,
		vol:   sigma * math.Sqrt(dt),
		steps: steps,
	}
}

// fill 用给定的标准正态驱动生成一条完整轨迹写入 dst
// dst 长度为 steps+1，dst[0] = S(0)；shocks 长度为 steps。
// 轨迹缓冲由调用方持有并复用，承载批次内的瞬态路径集合。
func (p pathParams) fill(dst, shocks []float64) {
	dst[0] = p.spot
	for i := 0; i < p.steps; i++ {
		dst[i+1] = dst[i] * math.Exp(p.drift+p.vol*shocks[i])
	}
}

// terminal 仅需终端分布时一步到位（dt = T）
func terminalPrice(spot, rate, sigma, maturity, z float64) float64 {
	return spot * math.Exp((rate-0.5*sigma*sigma)*maturity+sigma*math.Sqrt(maturity)*z)
}

// correlatedPair 由独立标准正态 z1, z2 构造相关驱动
// Z2 = rho·Z1 + sqrt(1-rho^2)·Z2'，即 2×2 相关阵的单因子 Cholesky 分解。
func correlatedPair(z1, z2, rho float64) (float64, float64) {
	return z1, rho*z1 + math.Sqrt(1-rho*rho)*z2
}

// arithmeticMean 路径观察值（不含起点）的算术平均
func arithmeticMean(path []float64) float64 {
	sum := 0.0
	for _, v := range path[1:] {
		sum += v
	}
	return sum / float64(len(path)-1)
}

// geometricMean 路径观察值（不含起点）的几何平均，对数域累加避免溢出
func geometricMean(path []float64) float64 {
	sum := 0.0
	for _, v := range path[1:] {
		sum += math.Log(v)
	}
	return math.Exp(sum / float64(len(path)-1))
}
