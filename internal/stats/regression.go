package stats

import "math"

// Regression is a least-squares fit of value against period index 0..n-1.
type Regression struct {
	Slope     float64
	Intercept float64
	R2        float64
	N         int
}

// LinearRegression fits value = intercept + slope*index. Fewer than two
// values, or a zero-variance series, yield a flat fit with R2 = 0.
func LinearRegression(values []float64) Regression {
	n := len(values)
	if n < 2 {
		reg := Regression{N: n}
		if n == 1 {
			reg.Intercept = values[0]
		}
		return reg
	}

	meanY := Mean(values)
	meanX := float64(n-1) / 2

	var sxx, sxy, syy float64
	for i, v := range values {
		dx := float64(i) - meanX
		dy := v - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	reg := Regression{N: n}
	if sxx == 0 {
		reg.Intercept = meanY
		return reg
	}
	reg.Slope = sxy / sxx
	reg.Intercept = meanY - reg.Slope*meanX

	if syy == 0 {
		// Flat series: the fit is exact but explains no variance.
		return Regression{Intercept: meanY, N: n}
	}
	reg.R2 = (sxy * sxy) / (sxx * syy)
	if math.IsNaN(reg.R2) || reg.R2 < 0 {
		reg.R2 = 0
	}
	if reg.R2 > 1 {
		reg.R2 = 1
	}
	return reg
}

// FittedAt returns the fitted value at period index i.
func (r Regression) FittedAt(i int) float64 {
	return r.Intercept + r.Slope*float64(i)
}

// PercentChange returns the percentage change from the first to the last
// fitted value. A zero or near-zero starting fit returns 0.
func (r Regression) PercentChange() float64 {
	if r.N < 2 {
		return 0
	}
	first := r.FittedAt(0)
	last := r.FittedAt(r.N - 1)
	if first == 0 {
		return 0
	}
	pct := (last - first) / math.Abs(first) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}

// Residuals returns the observed-minus-fitted sequence for the series the
// regression was computed from.
func (r Regression) Residuals(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - r.FittedAt(i)
	}
	return out
}
