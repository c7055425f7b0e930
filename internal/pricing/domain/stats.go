package domain

import "math"

// welford 流式均值/方差累加器（Welford 算法）
// 跨批次合并统计量，不要求一次性物化全部样本。
type welford struct {
	n    int64
	mean float64
	m2   float64
}

func (w *welford) Add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// Merge 合并另一个累加器（Chan 并行合并公式）
func (w *welford) Merge(o welford) {
	if o.n == 0 {
		return
	}
	if w.n == 0 {
		*w = o
		return
	}
	n := w.n + o.n
	delta := o.mean - w.mean
	w.m2 += o.m2 + delta*delta*float64(w.n)*float64(o.n)/float64(n)
	w.mean += delta * float64(o.n) / float64(n)
	w.n = n
}

func (w welford) Mean() float64 { return w.mean }

// Variance 总体方差（与原实现的 np.std 口径一致）
func (w welford) Variance() float64 {
	if w.n == 0 {
		return 0
	}
	return w.m2 / float64(w.n)
}

func (w welford) StdDev() float64 { return math.Sqrt(w.Variance()) }

// StdErr 均值标准误 std/sqrt(n)
func (w welford) StdErr() float64 {
	if w.n == 0 {
		return 0
	}
	return w.StdDev() / math.Sqrt(float64(w.n))
}

// biWelford 二元流式矩累加器：在 welford 基础上追加协矩
// 控制变量法全部所需统计量（beta、调整后均值与方差）都可由
// 一次遍历累积的矩推出，无需二次扫描样本。
type biWelford struct {
	n             int64
	meanX, meanY  float64
	m2x, m2y, cxy float64
}

func (b *biWelford) Add(x, y float64) {
	b.n++
	nf := float64(b.n)
	dx := x - b.meanX
	dy := y - b.meanY
	b.meanX += dx / nf
	b.meanY += dy / nf
	b.m2x += dx * (x - b.meanX)
	b.cxy += dx * (y - b.meanY)
	b.m2y += dy * (y - b.meanY)
}

// Merge 合并另一个累加器
func (b *biWelford) Merge(o biWelford) {
	if o.n == 0 {
		return
	}
	if b.n == 0 {
		*b = o
		return
	}
	n := b.n + o.n
	nw, no, nf := float64(b.n), float64(o.n), float64(b.n+o.n)
	dx := o.meanX - b.meanX
	dy := o.meanY - b.meanY
	b.m2x += o.m2x + dx*dx*nw*no/nf
	b.m2y += o.m2y + dy*dy*nw*no/nf
	b.cxy += o.cxy + dx*dy*nw*no/nf
	b.meanX += dx * no / nf
	b.meanY += dy * no / nf
	b.n = n
}

func (b biWelford) VarX() float64 {
	if b.n == 0 {
		return 0
	}
	return b.m2x / float64(b.n)
}

func (b biWelford) VarY() float64 {
	if b.n == 0 {
		return 0
	}
	return b.m2y / float64(b.n)
}

func (b biWelford) Cov() float64 {
	if b.n == 0 {
		return 0
	}
	return b.cxy / float64(b.n)
}

// Beta 控制变量系数 Cov(X,Y)/Var(Y)；Var(Y)=0 时返回 ok=false
func (b biWelford) Beta() (float64, bool) {
	varY := b.VarY()
	if varY == 0 {
		return 0, false
	}
	return b.Cov() / varY, true
}

// Controlled 调整后估计量 X' = X - beta·(Y - muY) 的均值与标准误
// 由累积矩直接推出：
//
//	mean(X') = mean(X) - beta·(mean(Y) - muY)
//	Var(X')  = Var(X) - 2·beta·Cov(X,Y) + beta^2·Var(Y)
//
// 对任意 beta 有 E[X'] = E[X]（无偏）；代入 beta = Cov/Var 后
// Var(X') = Var(X) - Cov^2/Var(Y) ≤ Var(X)。
func (b biWelford) Controlled(beta, muY float64) (mean, stderr float64) {
	mean = b.meanX - beta*(b.meanY-muY)
	variance := b.VarX() - 2*beta*b.Cov() + beta*beta*b.VarY()
	if variance < 0 {
		variance = 0 // 浮点噪声
	}
	return mean, math.Sqrt(variance / float64(b.n))
}

// Plain 原始估计量的均值与标准误
func (b biWelford) Plain() (mean, stderr float64) {
	return b.meanX, math.Sqrt(b.VarX() / float64(b.n))
}
