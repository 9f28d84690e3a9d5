package analytics

import "stats_hub_backend/internal/model"

// PeerBenchmark 与其他用户对比的扩展点
type PeerBenchmark interface {
	Compare(m PerformanceMetrics, records []model.ActivityRecord) ComparativeAnalysis
}

// placeholderBenchmark 未实现的同伴对比，返回固定占位值
type placeholderBenchmark struct{}

const placeholderPercentile = 50

func (placeholderBenchmark) Compare(PerformanceMetrics, []model.ActivityRecord) ComparativeAnalysis {
	return ComparativeAnalysis{
		PercentileRank: placeholderPercentile,
		Available:      false,
		Note:           "peer benchmarking not available",
	}
}
