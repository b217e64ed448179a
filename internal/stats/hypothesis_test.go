package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelchT_ClearSeparation(t *testing.T) {
	a := []float64{10, 11, 9, 10, 10.5, 9.5}
	b := []float64{20, 21, 19, 20, 20.5, 19.5}

	res := WelchT(a, b)
	assert.Equal(t, MethodWelchT, res.Method)
	assert.Greater(t, res.Statistic, 5.0)
	assert.Less(t, res.PValue, 0.01)
}

func TestWelchT_NoDifference(t *testing.T) {
	a := []float64{10, 11, 9, 10, 12, 8}
	res := WelchT(a, a)
	assert.InDelta(t, 0, res.Statistic, 1e-9)
	assert.Greater(t, res.PValue, 0.9)
}

func TestWelchT_Degenerate(t *testing.T) {
	// Too few points.
	res := WelchT([]float64{1}, []float64{2})
	assert.InDelta(t, 1, res.PValue, 1e-9)

	// Zero variance, equal means.
	res = WelchT([]float64{5, 5, 5}, []float64{5, 5, 5})
	assert.InDelta(t, 1, res.PValue, 1e-9)

	// Zero variance, different means: maximally significant, still finite.
	res = WelchT([]float64{5, 5, 5}, []float64{9, 9, 9})
	assert.False(t, math.IsNaN(res.Statistic))
	assert.False(t, math.IsInf(res.Statistic, 0))
	assert.Zero(t, res.PValue)
}

func TestWelchT_PValueSymmetry(t *testing.T) {
	a := []float64{10, 11, 9, 10, 10.5, 9.5}
	b := []float64{12, 13, 11, 12, 12.5, 11.5}

	up := WelchT(a, b)
	down := WelchT(b, a)
	assert.InDelta(t, up.PValue, down.PValue, 1e-9)
	assert.InDelta(t, up.Statistic, -down.Statistic, 1e-9)
}

func TestMannWhitneyU_ClearSeparation(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{10, 11, 12, 13, 14, 15}

	res := MannWhitneyU(a, b)
	assert.Equal(t, MethodMannWhitney, res.Method)
	assert.Less(t, res.PValue, 0.01)
}

func TestMannWhitneyU_Identical(t *testing.T) {
	a := []float64{3, 3, 3, 3, 3, 3}
	res := MannWhitneyU(a, a)
	assert.InDelta(t, 0, res.Statistic, 1e-9)
	assert.Greater(t, res.PValue, 0.9)
}

func TestMannWhitneyU_Empty(t *testing.T) {
	res := MannWhitneyU(nil, []float64{1, 2})
	assert.InDelta(t, 1, res.PValue, 1e-9)
}

func TestBootstrapMeanDiff(t *testing.T) {
	a := []float64{10, 11, 9, 10, 10.5, 9.5}
	b := []float64{20, 21, 19, 20, 20.5, 19.5}

	res := BootstrapMeanDiff(a, b, 500)
	assert.Equal(t, MethodBootstrap, res.Method)
	assert.InDelta(t, 10, res.Statistic, 0.5)
	assert.Less(t, res.PValue, 0.05)
}

func TestBootstrapMeanDiff_Deterministic(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{2, 3, 4, 5, 6, 7}

	first := BootstrapMeanDiff(a, b, 300)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, BootstrapMeanDiff(a, b, 300))
	}
}

func TestBootstrapMeanDiff_NoDifference(t *testing.T) {
	a := []float64{5, 6, 4, 5, 6, 4}
	res := BootstrapMeanDiff(a, a, 500)
	assert.Greater(t, res.PValue, 0.5)
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-9)
	assert.InDelta(t, 0.9772, NormalCDF(2), 1e-3)
	assert.InDelta(t, 0.0228, NormalCDF(-2), 1e-3)
}

func TestStudentTUpperTail(t *testing.T) {
	// Known critical values: P(T > 2.228) with df=10 is 0.025.
	assert.InDelta(t, 0.025, studentTUpperTail(2.228, 10), 1e-3)
	// With large df the t distribution approaches the normal.
	assert.InDelta(t, 1-NormalCDF(1.96), studentTUpperTail(1.96, 1000), 1e-3)
}
