package analytics

import (
	"fmt"
	"math"
	"stats_hub_backend/internal/model"
	"time"
)

const (
	trendWindow        = 2
	trendDelta         = 5.0
	recentGoalWindow   = 5
	streakGoalLength   = 5
	streakGoalIncrease = 5
)

// Widgets 为每个模块生成仪表盘卡片
func (e *Engine) Widgets(byModule map[string][]model.ActivityRecord, modules []string) []ModuleWidget {
	now := e.now()
	out := make([]ModuleWidget, 0, len(modules))
	for _, m := range modules {
		out = append(out, buildWidget(m, byModule[m], now))
	}
	return out
}

func buildWidget(module string, records []model.ActivityRecord, now time.Time) ModuleWidget {
	streak := AnalyzeStreaks(records)
	recent := sortedDescending(records)

	w := ModuleWidget{
		Module: module,
		Streak: WidgetStreak{
			Current: streak.CurrentStreak,
			Longest: streak.LongestStreak,
		},
		RecentTrend: recentTrend(recent),
		QuickStats:  quickStats(recent, now),
	}

	for i, r := range recent {
		if i == 0 || r.Score > w.BestPerformance.Score {
			w.BestPerformance.Score = finite(r.Score)
		}
		w.BestPerformance.Percentage = math.Max(w.BestPerformance.Percentage, finite(r.Percentage))
	}

	w.NextGoal = nextGoal(recent, streak.CurrentStreak, now)
	return w
}

// recentTrend 比较最近两条与之前两条的平均百分比
func recentTrend(recent []model.ActivityRecord) TrendDirection {
	if len(recent) <= trendWindow {
		return TrendStable
	}
	end := 2 * trendWindow
	if end > len(recent) {
		end = len(recent)
	}

	diff := mean(percentages(recent[:trendWindow])) - mean(percentages(recent[trendWindow:end]))
	switch {
	case diff > trendDelta:
		return TrendImproving
	case diff < -trendDelta:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func quickStats(recent []model.ActivityRecord, now time.Time) QuickStats {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	qs := QuickStats{Total: len(recent)}
	for _, r := range recent {
		if !r.Timestamp.Before(weekAgo) {
			qs.ThisWeek++
		}
		if !r.Timestamp.Before(monthAgo) {
			qs.ThisMonth++
		}
	}
	return qs
}

// nextGoal 依据近期平均和当前连续段挑选下一个目标
func nextGoal(recent []model.ActivityRecord, currentStreak int, now time.Time) NextGoal {
	target := func(days int) string {
		return now.AddDate(0, 0, days).Format(dateLayout)
	}

	if len(recent) == 0 {
		return NextGoal{
			Description: "Log your first activity",
			Progress:    0,
			TargetDate:  target(7),
		}
	}

	window := recent
	if len(window) > recentGoalWindow {
		window = window[:recentGoalWindow]
	}
	recentAvg := mean(percentages(window))

	switch {
	case recentAvg < StreakThreshold:
		return NextGoal{
			Description: fmt.Sprintf("Raise your recent average to %.0f%%", StreakThreshold),
			Progress:    round2(clamp(0, 100, recentAvg/StreakThreshold*100)),
			TargetDate:  target(14),
		}
	case currentStreak < streakGoalLength:
		return NextGoal{
			Description: fmt.Sprintf("Reach a streak of %d qualifying activities", streakGoalLength),
			Progress:    round2(float64(currentStreak) / streakGoalLength * 100),
			TargetDate:  target(7),
		}
	case recentAvg < 90:
		return NextGoal{
			Description: "Raise your recent average to 90%",
			Progress:    round2(clamp(0, 100, recentAvg/90*100)),
			TargetDate:  target(30),
		}
	default:
		goal := currentStreak + streakGoalIncrease
		return NextGoal{
			Description: fmt.Sprintf("Extend your streak to %d", goal),
			Progress:    round2(float64(currentStreak) / float64(goal) * 100),
			TargetDate:  target(14),
		}
	}
}
