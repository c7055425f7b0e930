package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarrierObserveTransitions(t *testing.T) {
	m := BarrierMonitor{Lower: 80, Upper: 120}

	assert.Equal(t, stateNeither, m.Observe(stateNeither, 100))
	assert.Equal(t, stateKnockedIn, m.Observe(stateNeither, 80))
	assert.Equal(t, stateKnockedIn, m.Observe(stateNeither, 75))
	assert.Equal(t, stateKnockedOut, m.Observe(stateNeither, 120))
	assert.Equal(t, stateKnockedOut, m.Observe(stateNeither, 130))

	// 敲入后继续观察：区间内维持敲入，触及上障碍转为敲出
	assert.Equal(t, stateKnockedIn, m.Observe(stateKnockedIn, 100))
	assert.Equal(t, stateKnockedOut, m.Observe(stateKnockedIn, 125))

	// 敲出是终态
	assert.Equal(t, stateKnockedOut, m.Observe(stateKnockedOut, 70))
	assert.Equal(t, stateKnockedOut, m.Observe(stateKnockedOut, 100))
}

func TestBarrierWalk(t *testing.T) {
	m := BarrierMonitor{Lower: 80, Upper: 120}

	tests := []struct {
		name string
		path []float64
		want barrierState
	}{
		{"never touches", []float64{100, 95, 110, 105}, stateNeither},
		{"knocks in", []float64{100, 78, 100, 105}, stateKnockedIn},
		{"knocks out", []float64{100, 110, 121, 90}, stateKnockedOut},
		{"in then out still settles as out", []float64{100, 75, 100, 125, 70}, stateKnockedOut},
		{"out before in stays out", []float64{100, 125, 70, 70}, stateKnockedOut},
		{"starting spot at lower barrier", []float64{80, 100, 100}, stateKnockedIn},
		{"starting spot at upper barrier", []float64{120, 100, 70}, stateKnockedOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Walk(tt.path))
		})
	}
}

func TestBarrierPayoff(t *testing.T) {
	m := BarrierMonitor{Lower: 80, Upper: 120}

	// 敲出拿固定补偿，与终端价无关
	assert.Equal(t, 1.5, m.Payoff(stateKnockedOut, 100, 60, 1.5))
	assert.Equal(t, 0.0, m.Payoff(stateKnockedOut, 100, 60, 0))

	// 敲入按标准看跌结算
	assert.Equal(t, 40.0, m.Payoff(stateKnockedIn, 100, 60, 1.5))
	assert.Equal(t, 0.0, m.Payoff(stateKnockedIn, 100, 110, 1.5))

	// 两侧都未触及一无所得
	assert.Equal(t, 0.0, m.Payoff(stateNeither, 100, 60, 1.5))
}
