package domain

import (
	"fmt"
	"math"
)

// 求根参数：括号区间覆盖现实中可能出现的任何波动率
const (
	ivBracketLow  = 1e-6
	ivBracketHigh = 5.0
	ivTolerance   = 1e-9
	ivMaxIter     = 200
)

// ImpliedVolatility 由市场权利金反解 Black-Scholes 隐含波动率
// f(sigma) = BS(sigma) - premium 在 sigma 上严格单调（vega > 0），
// 在 [1e-6, 5] 上用 Brent 法求根；区间内无变号视作权利金超出模型可达范围。
func ImpliedVolatility(p MarketParams, c ContractSpec, premium float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if p.Spot <= 0 {
		return 0, fmt.Errorf("%w: spot price must be positive, got %v", ErrValidation, p.Spot)
	}
	if p.Rate < 0 || p.Rate > 1 {
		return 0, fmt.Errorf("%w: risk-free rate must be in [0,1], got %v", ErrValidation, p.Rate)
	}
	if p.Repo < 0 {
		return 0, fmt.Errorf("%w: repo rate must be non-negative, got %v", ErrValidation, p.Repo)
	}
	if p.Maturity <= 0 {
		return 0, fmt.Errorf("%w: time to maturity must be positive, got %v", ErrValidation, p.Maturity)
	}
	if premium <= 0 {
		return 0, fmt.Errorf("%w: option premium must be positive, got %v", ErrValidation, premium)
	}

	f := func(sigma float64) float64 {
		return europeanPrice(p.Spot, c.Strike, p.Rate, p.Repo, p.Maturity, sigma, c.Type) - premium
	}
	iv, err := brent(f, ivBracketLow, ivBracketHigh, ivTolerance, ivMaxIter)
	if err != nil {
		return 0, fmt.Errorf("%w: no implied volatility in [%g, %g] matches premium %v",
			ErrNumerical, ivBracketLow, ivBracketHigh, premium)
	}
	return iv, nil
}

// brent 带括号的 Brent 求根：二分保底，逆二次插值/割线加速
func brent(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return 0, fmt.Errorf("root not bracketed")
	}

	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	d := b - a
	mflag := true

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// 逆二次插值
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// 割线法
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		cond := s < lo || s > hi
		if mflag {
			cond = cond || math.Abs(s-b) >= math.Abs(b-c)/2 || math.Abs(b-c) < tol
		} else {
			cond = cond || math.Abs(s-b) >= math.Abs(c-d)/2 || math.Abs(c-d) < tol
		}
		if cond {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return 0, fmt.Errorf("did not converge in %d iterations", maxIter)
}
