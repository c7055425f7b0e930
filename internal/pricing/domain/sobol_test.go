package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstPrimes(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, firstPrimes(10))
}

func TestRadicalInverse(t *testing.T) {
	// 基 2 的 van der Corput 序列前几项
	wants := []float64{0.5, 0.25, 0.75, 0.125, 0.625, 0.375, 0.875}
	for i, want := range wants {
		assert.InDelta(t, want, radicalInverse(uint64(i+1), 2), 1e-15)
	}
	// 基 3
	assert.InDelta(t, 1.0/3, radicalInverse(1, 3), 1e-15)
	assert.InDelta(t, 2.0/3, radicalInverse(2, 3), 1e-15)
	assert.InDelta(t, 1.0/9, radicalInverse(3, 3), 1e-15)
}

func TestLowDiscrepancySequenceRange(t *testing.T) {
	seq := NewLowDiscrepancySequence(8, 42)
	point := make([]float64, 8)
	for i := 0; i < 1000; i++ {
		seq.Next(point)
		for d, v := range point {
			require.GreaterOrEqual(t, v, 0.0, "i=%d d=%d", i, d)
			require.Less(t, v, 1.0, "i=%d d=%d", i, d)
		}
	}
}

func TestLowDiscrepancySequenceDeterministic(t *testing.T) {
	a := NewLowDiscrepancySequence(5, 7)
	b := NewLowDiscrepancySequence(5, 7)
	pa := make([]float64, 5)
	pb := make([]float64, 5)
	for i := 0; i < 100; i++ {
		a.Next(pa)
		b.Next(pb)
		require.Equal(t, pa, pb, "i=%d", i)
	}
}

func TestLowDiscrepancySequenceSeedShifts(t *testing.T) {
	a := NewLowDiscrepancySequence(3, 1)
	b := NewLowDiscrepancySequence(3, 2)
	pa := make([]float64, 3)
	pb := make([]float64, 3)
	a.Next(pa)
	b.Next(pb)
	assert.NotEqual(t, pa, pb)
}

func TestLowDiscrepancySequenceEquidistribution(t *testing.T) {
	// 每一维的样本均值收敛到 1/2
	const n = 4096
	dim := 4
	seq := NewLowDiscrepancySequence(dim, 99)
	point := make([]float64, dim)
	sums := make([]float64, dim)
	for i := 0; i < n; i++ {
		seq.Next(point)
		for d, v := range point {
			sums[d] += v
		}
	}
	for d := range sums {
		assert.InDelta(t, 0.5, sums[d]/n, 0.01, "dim=%d", d)
	}
}

func TestNextNormalsFinite(t *testing.T) {
	seq := NewLowDiscrepancySequence(6, 11)
	shocks := make([]float64, 6)
	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		seq.NextNormals(shocks)
		for d, z := range shocks {
			require.False(t, math.IsNaN(z) || math.IsInf(z, 0), "i=%d d=%d", i, d)
			sum += z
		}
	}
	// 变换后整体均值接近 0
	assert.InDelta(t, 0.0, sum/float64(n*6), 0.02)
}

func TestNormalSourceDeterministic(t *testing.T) {
	a := NewNormalSource(123)
	b := NewNormalSource(123)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Next(), b.Next(), "i=%d", i)
	}
}

func TestBatchSeedDistinct(t *testing.T) {
	seen := map[uint64]bool{}
	for b := 0; b < 64; b++ {
		s := batchSeed(42, b)
		assert.False(t, seen[s], "batch=%d", b)
		seen[s] = true
	}
}
