package analytics

import (
	"math"
	"sort"
	"stats_hub_backend/internal/model"
)

// ComputeMetrics 计算一组有序记录的标量表现指标。
// 回归斜率按入参顺序计算，调用方负责传入时间升序的记录。
func ComputeMetrics(records []model.ActivityRecord) PerformanceMetrics {
	n := len(records)
	if n == 0 {
		return PerformanceMetrics{}
	}

	pcts := percentages(records)
	scs := scores(records)

	bestScore, worstScore := scs[0], scs[0]
	for _, s := range scs[1:] {
		bestScore = math.Max(bestScore, s)
		worstScore = math.Min(worstScore, s)
	}

	sorted := append([]float64(nil), pcts...)
	sort.Float64s(sorted)
	// 偶数个时取 n/2 处的元素，不取两数平均
	median := sorted[n/2]

	avgPct := mean(pcts)
	stdDev := populationStdDev(pcts)

	return PerformanceMetrics{
		TotalAttempts:     n,
		AverageScore:      round2(mean(scs)),
		AveragePercentage: round2(avgPct),
		BestScore:         bestScore,
		WorstScore:        worstScore,
		BestPercentage:    sorted[n-1],
		WorstPercentage:   sorted[0],
		MedianPercentage:  median,
		StandardDeviation: round2(stdDev),
		ImprovementRate:   round2(RegressionSlope(pcts)),
		ConsistencyScore:  round2(consistency(stdDev, avgPct)),
	}
}

// RegressionSlope 以序号 1..n 为自变量的最小二乘斜率
func RegressionSlope(values []float64) float64 {
	n := float64(len(values))
	if len(values) < 2 {
		return 0
	}

	flat := true
	for _, y := range values[1:] {
		if y != values[0] {
			flat = false
			break
		}
	}
	if flat {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return finite((n*sumXY - sumX*sumY) / denominator)
}

func consistency(stdDev, meanPct float64) float64 {
	return clamp(0, 100, 100-safeDiv(stdDev, meanPct)*100)
}
