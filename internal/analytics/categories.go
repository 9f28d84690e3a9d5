package analytics

import (
	"math"
	"sort"
	"stats_hub_backend/internal/model"
)

const (
	unknownCategory    = "unknown"
	categoryLabelChars = 8
)

// AnalyzeCategories 按分类键分组统计，结果按尝试次数降序
func AnalyzeCategories(records []model.ActivityRecord) []CategoryAnalysis {
	groups := make(map[string][]model.ActivityRecord)
	for _, r := range records {
		key := r.CategoryKey
		if key == "" {
			key = unknownCategory
		}
		groups[key] = append(groups[key], r)
	}

	out := make([]CategoryAnalysis, 0, len(groups))
	for key, group := range groups {
		out = append(out, analyzeCategory(key, sortedAscending(group)))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Attempts != out[j].Attempts {
			return out[i].Attempts > out[j].Attempts
		}
		return out[i].CategoryKey < out[j].CategoryKey
	})
	return out
}

func analyzeCategory(key string, group []model.ActivityRecord) CategoryAnalysis {
	pcts := percentages(group)

	best, worst := pcts[0], pcts[0]
	var duration float64
	var items int
	for i, r := range group {
		best = math.Max(best, pcts[i])
		worst = math.Min(worst, pcts[i])
		duration += finite(r.DurationMinutes)
		items += r.ItemCount
	}

	avg := mean(pcts)
	efficiency := 0.0
	if duration > 0 {
		efficiency = float64(items) / duration
	}

	return CategoryAnalysis{
		CategoryKey:          key,
		Label:                lastRunes(key, categoryLabelChars),
		Attempts:             len(group),
		AveragePercentage:    round2(avg),
		BestPercentage:       best,
		WorstPercentage:      worst,
		ImprovementTrend:     round2(RegressionSlope(pcts)),
		DifficultyRating:     round2(clamp(1, 10, 11-avg/10)),
		TotalDurationMinutes: round2(duration),
		TotalItems:           items,
		TimeEfficiency:       round2(efficiency),
		MasteryLevel:         masteryFor(avg),
	}
}

func masteryFor(avg float64) MasteryLevel {
	switch {
	case avg >= 90:
		return MasteryExpert
	case avg >= 75:
		return MasteryAdvanced
	case avg >= 60:
		return MasteryIntermediate
	default:
		return MasteryBeginner
	}
}
