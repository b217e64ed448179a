package stats

import (
	"math"
	"math/rand"
	"sort"
)

// TestResult is the outcome of a two-sided comparison test between two
// samples. PValue is always in [0,1] and Statistic is always finite.
type TestResult struct {
	Method    string
	Statistic float64
	PValue    float64
}

// Test method names reported in analysis output.
const (
	MethodWelchT      = "welch-t"
	MethodMannWhitney = "mann-whitney-u"
	MethodBootstrap   = "bootstrap"
)

// maxStatistic caps degenerate test statistics (zero pooled variance with a
// real mean difference) at a finite value.
const maxStatistic = 40

// WelchT runs Welch's unequal-variance t-test between two samples. Samples
// with fewer than two values each, or zero pooled variance, return defined
// degenerate results instead of NaN.
func WelchT(a, b []float64) TestResult {
	res := TestResult{Method: MethodWelchT}
	na, nb := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		res.PValue = 1
		return res
	}

	meanA, meanB := Mean(a), Mean(b)
	varA := StdDev(a) * StdDev(a)
	varB := StdDev(b) * StdDev(b)

	se := math.Sqrt(varA/na + varB/nb)
	diff := meanB - meanA
	if se == 0 {
		if diff == 0 {
			res.PValue = 1
			return res
		}
		res.Statistic = math.Copysign(maxStatistic, diff)
		return res
	}

	res.Statistic = diff / se

	// Welch-Satterthwaite degrees of freedom.
	num := varA/na + varB/nb
	den := (varA*varA)/(na*na*(na-1)) + (varB*varB)/(nb*nb*(nb-1))
	df := num * num / den
	if df < 1 {
		df = 1
	}

	res.PValue = 2 * studentTUpperTail(math.Abs(res.Statistic), df)
	if res.PValue > 1 {
		res.PValue = 1
	}
	return res
}

// MannWhitneyU runs the Mann-Whitney U test with midranks for ties and the
// normal approximation for the p-value. Appropriate when the series is not
// roughly normal.
func MannWhitneyU(a, b []float64) TestResult {
	res := TestResult{Method: MethodMannWhitney}
	na, nb := float64(len(a)), float64(len(b))
	if len(a) == 0 || len(b) == 0 {
		res.PValue = 1
		return res
	}

	type obs struct {
		value float64
		fromA bool
	}
	all := make([]obs, 0, len(a)+len(b))
	for _, v := range a {
		all = append(all, obs{value: v, fromA: true})
	}
	for _, v := range b {
		all = append(all, obs{value: v})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	// Midranks for tied runs.
	ranks := make([]float64, len(all))
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].value == all[i].value {
			j++
		}
		mid := float64(i+j+1) / 2 // average of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		i = j
	}

	var rankSumA float64
	for i, o := range all {
		if o.fromA {
			rankSumA += ranks[i]
		}
	}

	u := rankSumA - na*(na+1)/2
	mu := na * nb / 2
	sigma := math.Sqrt(na * nb * (na + nb + 1) / 12)
	if sigma == 0 {
		res.PValue = 1
		return res
	}

	res.Statistic = (u - mu) / sigma
	res.PValue = 2 * (1 - NormalCDF(math.Abs(res.Statistic)))
	if res.PValue > 1 {
		res.PValue = 1
	}
	return res
}

// BootstrapMeanDiff estimates the significance of the observed mean
// difference between two samples by resampling from the pooled data under
// the null hypothesis of no difference. Used when autocorrelation rules out
// the parametric tests. The resampling seed is fixed so identical inputs
// always produce identical output.
func BootstrapMeanDiff(a, b []float64, iterations int) TestResult {
	res := TestResult{Method: MethodBootstrap}
	if len(a) == 0 || len(b) == 0 {
		res.PValue = 1
		return res
	}
	if iterations <= 0 {
		iterations = 1000
	}

	observed := Mean(b) - Mean(a)
	res.Statistic = observed

	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)

	rng := rand.New(rand.NewSource(1))
	resampleMean := func(n int) float64 {
		var sum float64
		for i := 0; i < n; i++ {
			sum += pooled[rng.Intn(len(pooled))]
		}
		return sum / float64(n)
	}

	extreme := 0
	for i := 0; i < iterations; i++ {
		diff := resampleMean(len(b)) - resampleMean(len(a))
		if math.Abs(diff) >= math.Abs(observed) {
			extreme++
		}
	}
	res.PValue = float64(extreme) / float64(iterations)
	return res
}

// NormalCDF returns the standard normal cumulative distribution at z.
func NormalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// studentTUpperTail returns P(T > t) for Student's t with df degrees of
// freedom, t >= 0, via the regularized incomplete beta function.
func studentTUpperTail(t, df float64) float64 {
	if t <= 0 {
		return 0.5
	}
	x := df / (df + t*t)
	return 0.5 * regularizedIncompleteBeta(df/2, 0.5, x)
}

// regularizedIncompleteBeta computes I_x(a, b) using the continued fraction
// expansion (Lentz's method).
func regularizedIncompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lgA, _ := math.Lgamma(a)
	lgB, _ := math.Lgamma(b)
	lgAB, _ := math.Lgamma(a + b)
	front := math.Exp(lgAB - lgA - lgB + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaContinuedFraction(a, b, x) / a
	}
	return 1 - front*betaContinuedFraction(b, a, 1-x)/b
}

func betaContinuedFraction(a, b, x float64) float64 {
	const (
		maxIterations = 200
		epsilon       = 1e-12
		tiny          = 1e-30
	)

	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < epsilon {
			break
		}
	}
	return h
}
