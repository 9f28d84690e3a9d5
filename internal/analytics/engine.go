// Package analytics turns a snapshot of activity records into performance
// metrics, trend series, category breakdowns, streaks, projections and
// cross-module comparisons. Every function is a pure computation over its
// inputs; nothing here touches storage.
package analytics

import (
	"stats_hub_backend/internal/model"
	"time"
)

// Engine 统计计算入口
type Engine struct {
	now  func() time.Time
	peer PeerBenchmark
}

type Option func(*Engine)

// WithClock 替换时间源，目标日期与近期计数都基于它
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithPeerBenchmark(p PeerBenchmark) Option {
	return func(e *Engine) {
		e.peer = p
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:  time.Now,
		peer: placeholderBenchmark{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute 基于记录快照生成完整统计结果。
// 空输入返回全零、列表为空的结果而不是错误。
func (e *Engine) Compute(records []model.ActivityRecord, includeComparative bool) *StatisticsBundle {
	if len(records) == 0 {
		return EmptyBundle(includeComparative)
	}

	ordered := sortedAscending(records)
	metrics := ComputeMetrics(ordered)

	bundle := &StatisticsBundle{
		PerformanceMetrics: metrics,
		Trends:             BuildTrends(ordered),
		CategoryAnalysis:   AnalyzeCategories(ordered),
		TimeAnalysis:       AnalyzeTime(ordered),
		StreakAnalysis:     AnalyzeStreaks(ordered),
		PredictiveInsights: PredictInsights(metrics, RegressionSlope(percentages(ordered)), ordered, e.now()),
	}
	if includeComparative {
		cmp := e.peer.Compare(metrics, ordered)
		bundle.ComparativeAnalysis = &cmp
	}
	return bundle
}

// EmptyBundle 无数据时的结果：数值全零，列表全空
func EmptyBundle(includeComparative bool) *StatisticsBundle {
	bundle := &StatisticsBundle{
		Trends: Trends{
			Daily:   []PeriodStats{},
			Weekly:  []PeriodStats{},
			Monthly: []PeriodStats{},
		},
		CategoryAnalysis: []CategoryAnalysis{},
		TimeAnalysis:     emptyTimeAnalysis(),
		StreakAnalysis: StreakAnalysis{
			StreakThreshold: StreakThreshold,
			StreakHistory:   []StreakEpisode{},
		},
		PredictiveInsights: PredictiveInsights{
			Suggestions: []Suggestion{},
			Goals:       []GoalProposal{},
		},
	}
	if includeComparative {
		bundle.ComparativeAnalysis = &ComparativeAnalysis{Note: "no activity recorded"}
	}
	return bundle
}
