package analytics

import (
	"math"
	"sort"
	"stats_hub_backend/internal/model"
	"time"
)

// PeriodKey 返回记录所在周期的键，三种格式都可以按字典序排序
func PeriodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		// 周从周日开始
		start := t.AddDate(0, 0, -int(t.Weekday()))
		return start.Format(dateLayout)
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format(dateLayout)
	}
}

type periodAccumulator struct {
	attempts int
	sumPct   float64
	bestPct  float64
	duration float64
}

// BuildTrend 按周期聚合记录并计算环比变化
func BuildTrend(records []model.ActivityRecord, g Granularity) []PeriodStats {
	buckets := make(map[string]*periodAccumulator)
	for _, r := range records {
		key := PeriodKey(r.Timestamp, g)
		acc, ok := buckets[key]
		if !ok {
			acc = &periodAccumulator{bestPct: math.Inf(-1)}
			buckets[key] = acc
		}
		pct := finite(r.Percentage)
		acc.attempts++
		acc.sumPct += pct
		acc.bestPct = math.Max(acc.bestPct, pct)
		acc.duration += finite(r.DurationMinutes)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]PeriodStats, 0, len(keys))
	var prevAvg float64
	for i, k := range keys {
		acc := buckets[k]
		avg := acc.sumPct / float64(acc.attempts)

		stats := PeriodStats{
			Period:               k,
			Attempts:             acc.attempts,
			AveragePercentage:    round2(avg),
			BestPercentage:       acc.bestPct,
			TotalDurationMinutes: round2(acc.duration),
		}
		if i > 0 {
			stats.ImprovementFromPrevious = round2(avg - prevAvg)
		}
		out = append(out, stats)
		prevAvg = avg
	}
	return out
}

// BuildTrends 计算日、周、月三种粒度
func BuildTrends(records []model.ActivityRecord) Trends {
	return Trends{
		Daily:   BuildTrend(records, GranularityDay),
		Weekly:  BuildTrend(records, GranularityWeek),
		Monthly: BuildTrend(records, GranularityMonth),
	}
}
