package analytics

import (
	"fmt"
	"math"
	"sort"
	"stats_hub_backend/internal/model"
)

const (
	topPerformerShare   = 0.25
	minBucketMinutes    = 10
	maxHistogramBuckets = 10
)

// AnalyzeTime 分析用时与成绩的关系，只使用有正用时的记录
func AnalyzeTime(records []model.ActivityRecord) TimeAnalysis {
	timed := make([]model.ActivityRecord, 0, len(records))
	for _, r := range records {
		if finite(r.DurationMinutes) > 0 {
			timed = append(timed, r)
		}
	}
	if len(timed) == 0 {
		return emptyTimeAnalysis()
	}

	byPct := append([]model.ActivityRecord(nil), timed...)
	sort.SliceStable(byPct, func(i, j int) bool {
		return byPct[i].Percentage > byPct[j].Percentage
	})
	topCount := int(math.Max(1, math.Floor(topPerformerShare*float64(len(byPct)))))
	top := byPct[:topCount]

	minTop, maxTop := top[0].DurationMinutes, top[0].DurationMinutes
	for _, r := range top[1:] {
		minTop = math.Min(minTop, r.DurationMinutes)
		maxTop = math.Max(maxTop, r.DurationMinutes)
	}

	fastest, slowest := timed[0].DurationMinutes, timed[0].DurationMinutes
	for _, r := range timed[1:] {
		fastest = math.Min(fastest, r.DurationMinutes)
		slowest = math.Max(slowest, r.DurationMinutes)
	}

	return TimeAnalysis{
		OptimalTimeRange: OptimalTimeRange{
			MinMinutes:        minTop,
			MaxMinutes:        maxTop,
			AveragePercentage: round2(mean(percentages(top))),
		},
		DurationDistribution: durationHistogram(timed, slowest),
		SpeedAnalysis: SpeedAnalysis{
			AverageSecondsPerItem: round2(secondsPerItem(timed)),
			FastestCompletion:     fastest,
			SlowestCompletion:     slowest,
			OptimalPace:           round2(secondsPerItem(top)),
		},
	}
}

func emptyTimeAnalysis() TimeAnalysis {
	return TimeAnalysis{DurationDistribution: []DurationBucket{}}
}

// BucketSize 直方图桶宽：至少 10 分钟，最多约 10 个桶
func BucketSize(maxDuration float64) float64 {
	return math.Max(minBucketMinutes, math.Ceil(maxDuration/maxHistogramBuckets))
}

// durationHistogram 按桶宽分组，最多 maxHistogramBuckets+1 个桶
func durationHistogram(timed []model.ActivityRecord, maxDuration float64) []DurationBucket {
	size := BucketSize(maxDuration)
	out := []DurationBucket{}
	for i := 0; i <= maxHistogramBuckets; i++ {
		start := float64(i) * size
		if start > maxDuration {
			break
		}
		end := start + size
		var pcts []float64
		for _, r := range timed {
			if r.DurationMinutes >= start && r.DurationMinutes < end {
				pcts = append(pcts, finite(r.Percentage))
			}
		}
		if len(pcts) == 0 {
			continue
		}
		out = append(out, DurationBucket{
			Range:             fmt.Sprintf("%.0f-%.0fmin", start, end),
			Count:             len(pcts),
			AveragePercentage: round2(mean(pcts)),
		})
	}
	return out
}

// secondsPerItem 每题平均秒数，忽略没有题目数的记录
func secondsPerItem(records []model.ActivityRecord) float64 {
	var paces []float64
	for _, r := range records {
		if r.ItemCount <= 0 {
			continue
		}
		paces = append(paces, r.DurationMinutes*60/float64(r.ItemCount))
	}
	return finite(mean(paces))
}
