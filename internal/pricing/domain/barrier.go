package domain

// barrierState KIKO 路径状态机
// Neither --S<=L--> KnockedIn（非终态，之后仍可能敲出）
// 任意状态 --S>=U--> KnockedOut（终态，收益固定为补偿 R）
type barrierState int

const (
	stateNeither barrierState = iota
	stateKnockedIn
	stateKnockedOut
)

// BarrierMonitor 离散观察的双障碍监控器
type BarrierMonitor struct {
	Lower float64
	Upper float64
}

// Observe 吸收一次观察价格并返回迁移后的状态
// 上障碍优先判定：敲出是终态，一经触发与后续路径无关。
func (m BarrierMonitor) Observe(state barrierState, price float64) barrierState {
	if state == stateKnockedOut {
		return stateKnockedOut
	}
	if price >= m.Upper {
		return stateKnockedOut
	}
	if price <= m.Lower {
		return stateKnockedIn
	}
	return state
}

// Walk 沿整条轨迹（含起点观察）推进状态机
// 设计取舍：路径先敲入后触及上障碍时，敲出仍然胜出——
// 即“只要敲出发生过就按敲出结算”，与事件先后次序无关。
func (m BarrierMonitor) Walk(path []float64) barrierState {
	state := stateNeither
	for _, price := range path {
		state = m.Observe(state, price)
		if state == stateKnockedOut {
			break
		}
	}
	return state
}

// Payoff 终态结算：敲出得补偿 R；敲入且未敲出得标准看跌收益；
// 两侧障碍都未触及则一无所得。
func (m BarrierMonitor) Payoff(state barrierState, strike, terminal, rebate float64) float64 {
	switch state {
	case stateKnockedOut:
		return rebate
	case stateKnockedIn:
		return payoff(OptionTypePut, terminal, strike)
	default:
		return 0
	}
}
