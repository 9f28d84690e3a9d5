package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics_Basic(t *testing.T) {
	m := ComputeMetrics(seq(60, 70, 80, 90))

	assert.Equal(t, 4, m.TotalAttempts)
	assert.Equal(t, 75.0, m.AveragePercentage)
	assert.Equal(t, 75.0, m.AverageScore)
	assert.Equal(t, 90.0, m.BestPercentage)
	assert.Equal(t, 60.0, m.WorstPercentage)
	assert.Equal(t, 90.0, m.BestScore)
	assert.Equal(t, 60.0, m.WorstScore)
	// population sd of 60,70,80,90 = sqrt(125)
	assert.Equal(t, 11.18, m.StandardDeviation)
	assert.Equal(t, 10.0, m.ImprovementRate)
	assert.Equal(t, round2(100-math.Sqrt(125)/75*100), m.ConsistencyScore)
}

func TestComputeMetrics_MedianTakesUpperMiddleIndex(t *testing.T) {
	// sorted: 10 20 30 40 -> index floor(4/2)=2 -> 30, no averaging
	m := ComputeMetrics(seq(40, 10, 30, 20))
	assert.Equal(t, 30.0, m.MedianPercentage)

	odd := ComputeMetrics(seq(50, 10, 30))
	assert.Equal(t, 30.0, odd.MedianPercentage)
}

func TestComputeMetrics_MedianBetweenExtremes(t *testing.T) {
	inputs := [][]float64{
		{5},
		{100, 0},
		{33.3, 66.6, 99.9, 12.5, 70},
		{80, 80, 80, 10, 95, 60},
	}
	for _, in := range inputs {
		m := ComputeMetrics(seq(in...))
		assert.LessOrEqual(t, m.WorstPercentage, m.MedianPercentage)
		assert.LessOrEqual(t, m.MedianPercentage, m.BestPercentage)
		assert.GreaterOrEqual(t, m.ConsistencyScore, 0.0)
		assert.LessOrEqual(t, m.ConsistencyScore, 100.0)
	}
}

func TestComputeMetrics_FlatInputIsFullyConsistent(t *testing.T) {
	for _, v := range []float64{0, 33.3, 72.5, 100} {
		m := ComputeMetrics(seq(v, v, v, v, v))
		assert.Equal(t, 100.0, m.ConsistencyScore, "value %v", v)
		assert.Equal(t, 0.0, m.ImprovementRate, "value %v", v)
		assert.Equal(t, 0.0, m.StandardDeviation, "value %v", v)
	}
}

func TestComputeMetrics_ConsistencyFloorsAtZero(t *testing.T) {
	// mean 25, sd 43.3 -> 100 - 173 < 0
	m := ComputeMetrics(seq(100, 0, 0, 0))
	assert.Equal(t, 0.0, m.ConsistencyScore)
}

func TestRegressionSlope(t *testing.T) {
	assert.Equal(t, 0.0, RegressionSlope(nil))
	assert.Equal(t, 0.0, RegressionSlope([]float64{42}))
	assert.Equal(t, 5.0, RegressionSlope([]float64{10, 15, 20}))
	assert.Equal(t, -10.0, RegressionSlope([]float64{90, 80, 70, 60}))
	assert.Equal(t, 0.0, RegressionSlope([]float64{33.3, 33.3, 33.3}))
}

func TestComputeMetrics_Empty(t *testing.T) {
	assert.Equal(t, PerformanceMetrics{}, ComputeMetrics(nil))
}

func TestComputeMetrics_NonFiniteValuesBecomeZero(t *testing.T) {
	records := seq(80, 90)
	records[1].Percentage = math.NaN()
	records[1].Score = math.Inf(1)

	m := ComputeMetrics(records)
	assert.Equal(t, 40.0, m.AveragePercentage)
	assert.Equal(t, 80.0, m.BestScore)
	assert.False(t, math.IsNaN(m.ConsistencyScore))
}
