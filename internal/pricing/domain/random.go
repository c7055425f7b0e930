package domain

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalSource 按请求显式播种的标准正态抽样源
// 不共享任何进程级状态：相同种子产生完全相同的序列，
// 并发请求各持一份互不干扰。
type NormalSource struct {
	dist distuv.Normal
}

// NewNormalSource 创建标准正态抽样源
func NewNormalSource(seed uint64) *NormalSource {
	return &NormalSource{
		dist: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)},
	}
}

// Next 抽取一个标准正态随机数
func (s *NormalSource) Next() float64 {
	return s.dist.Rand()
}

// batchSeed 派生批次种子：基准种子偏移批次序号
// 批次各自持源，结果与调度顺序无关。
func batchSeed(base uint64, batch int) uint64 {
	return base + uint64(batch)*0x9e3779b97f4a7c15
}
