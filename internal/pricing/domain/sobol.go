package domain

import (
	"golang.org/x/exp/rand"
)

// LowDiscrepancySequence 随机化低差异序列
// 以逐维素数基的 Halton 序列为骨架，叠加按维度的 Cranley-Patterson
// 随机平移（由显式种子决定）打乱。维度对应一条路径的监控时点数，
// 同一种子生成完全相同的点列；有限差分 Greeks 通过复用同一种子
// 使基准与扰动估计共享抽样噪声。
type LowDiscrepancySequence struct {
	bases  []uint64
	shifts []float64
	index  uint64
}

// NewLowDiscrepancySequence 创建 dim 维随机化低差异序列
func NewLowDiscrepancySequence(dim int, seed uint64) *LowDiscrepancySequence {
	rng := rand.New(rand.NewSource(seed))
	shifts := make([]float64, dim)
	for i := range shifts {
		shifts[i] = rng.Float64()
	}
	return &LowDiscrepancySequence{
		bases:  firstPrimes(dim),
		shifts: shifts,
		index:  1, // Halton 下标从 1 起，跳过原点
	}
}

// Next 返回下一个点，填入 dst（长度为序列维度），各分量落在 (0,1)
func (s *LowDiscrepancySequence) Next(dst []float64) {
	for d := range dst {
		v := radicalInverse(s.index, s.bases[d]) + s.shifts[d]
		if v >= 1 {
			v -= 1
		}
		dst[d] = v
	}
	s.index++
}

// NextNormals 返回经逆正态 CDF 变换后的下一组标准正态驱动
func (s *LowDiscrepancySequence) NextNormals(dst []float64) {
	s.Next(dst)
	for d, v := range dst {
		// 防止端点映射到 ±Inf
		if v < quantileFloor {
			v = quantileFloor
		} else if v > 1-quantileFloor {
			v = 1 - quantileFloor
		}
		dst[d] = stdNormal.Quantile(v)
	}
}

const quantileFloor = 1e-12

// radicalInverse 以 base 为基的根逆函数：整数各位倒序映射到 (0,1)
func radicalInverse(i, base uint64) float64 {
	var digit, radix float64 = 1, float64(base)
	v := 0.0
	for i > 0 {
		digit /= radix
		v += float64(i%base) * digit
		i /= base
	}
	return v
}

// firstPrimes 返回前 n 个素数
func firstPrimes(n int) []uint64 {
	primes := make([]uint64, 0, n)
	for candidate := uint64(2); len(primes) < n; candidate++ {
		isPrime := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
	}
	return primes
}
