package analytics

import (
	"fmt"
	"math"
	"stats_hub_backend/internal/model"
	"time"
)

const (
	projectionSteps          = 5
	longSessionMinutes       = 120
	foundationThreshold      = 70
	performanceGoalDays      = 30
	consistencyGoalDays      = 14
	consistencyGoalAttempts  = 5
	performanceGoalIncrement = 10
)

// suggestionRule 单条规则，命中时返回建议
type suggestionRule func(m PerformanceMetrics, records []model.ActivityRecord) (Suggestion, bool)

var suggestionRules = []suggestionRule{
	func(m PerformanceMetrics, _ []model.ActivityRecord) (Suggestion, bool) {
		return Suggestion{
			Type:        "foundation",
			Priority:    PriorityHigh,
			Title:       "Strengthen the fundamentals",
			Description: fmt.Sprintf("Your average of %.1f%% is below %d%%. Review core material before attempting new content.", m.AveragePercentage, foundationThreshold),
		}, m.AveragePercentage < foundationThreshold
	},
	func(_ PerformanceMetrics, records []model.ActivityRecord) (Suggestion, bool) {
		for _, r := range records {
			if r.DurationMinutes > longSessionMinutes {
				return Suggestion{
					Type:        "time_management",
					Priority:    PriorityMedium,
					Title:       "Manage session length",
					Description: fmt.Sprintf("Some sessions ran longer than %d minutes. Split long sessions and take breaks to keep focus.", longSessionMinutes),
				}, true
			}
		}
		return Suggestion{}, false
	},
	func(m PerformanceMetrics, _ []model.ActivityRecord) (Suggestion, bool) {
		return Suggestion{
			Type:        "consistency",
			Priority:    PriorityHigh,
			Title:       "Reverse the downward trend",
			Description: "Recent results are trending down. Keep a regular schedule and revisit the topics of your weakest attempts.",
		}, m.ImprovementRate < 0
	},
}

// PredictInsights 基于整体回归斜率做短期预测，并给出规则建议与目标。
// slope 为未取整的回归斜率，m.ImprovementRate 只用于展示与规则判断。
func PredictInsights(m PerformanceMetrics, slope float64, records []model.ActivityRecord, now time.Time) PredictiveInsights {
	suggestions := []Suggestion{}
	for _, rule := range suggestionRules {
		if s, ok := rule(m, records); ok {
			suggestions = append(suggestions, s)
		}
	}

	performanceAchievability := 65.0
	if m.ImprovementRate > 0 {
		performanceAchievability = 85
	}

	goals := []GoalProposal{
		{
			Type:          "performance",
			Description:   "Raise your average percentage",
			Target:        round2(math.Min(100, m.AveragePercentage+performanceGoalIncrement)),
			Current:       m.AveragePercentage,
			TargetDate:    now.AddDate(0, 0, performanceGoalDays).Format(dateLayout),
			Achievability: performanceAchievability,
		},
		{
			Type:          "consistency",
			Description:   fmt.Sprintf("Complete %d attempts scoring at least %.0f%%", consistencyGoalAttempts, StreakThreshold),
			Target:        consistencyGoalAttempts,
			Current:       float64(qualifyingCount(records)),
			TargetDate:    now.AddDate(0, 0, consistencyGoalDays).Format(dateLayout),
			Achievability: 75,
		},
	}

	return PredictiveInsights{
		PredictedPercentage: round2(clamp(0, 100, m.AveragePercentage+finite(slope)*projectionSteps)),
		ConfidenceLevel:     round2(clamp(20, 95, 80-math.Abs(finite(slope))*10)),
		Suggestions:         suggestions,
		Goals:               goals,
	}
}

func qualifyingCount(records []model.ActivityRecord) int {
	n := 0
	for _, r := range records {
		if finite(r.Percentage) >= StreakThreshold {
			n++
		}
	}
	return n
}
