package analytics

import "stats_hub_backend/internal/model"

const maxRecommendations = 3

// recommendationRule 命中时返回一条建议
type recommendationRule func(in ModuleInsight) (string, bool)

func below(threshold float64, msg string) recommendationRule {
	return func(in ModuleInsight) (string, bool) {
		return msg, in.ActivityCount > 0 && in.AveragePerformance < threshold
	}
}

func atLeast(threshold float64, msg string) recommendationRule {
	return func(in ModuleInsight) (string, bool) {
		return msg, in.ActivityCount > 0 && in.AveragePerformance >= threshold
	}
}

func fewerThan(count int, msg string) recommendationRule {
	return func(in ModuleInsight) (string, bool) {
		return msg, in.ActivityCount < count
	}
}

func declining(msg string) recommendationRule {
	return func(in ModuleInsight) (string, bool) {
		return msg, in.ImprovementRate < 0
	}
}

func hoursBelow(hours float64, msg string) recommendationRule {
	return func(in ModuleInsight) (string, bool) {
		return msg, in.ActivityCount > 0 && in.TotalTimeHours < hours
	}
}

// moduleRecommendations 按模块划分的规则表，按顺序取前三条命中的建议
var moduleRecommendations = map[string][]recommendationRule{
	model.ModuleStudy: {
		fewerThan(5, "Schedule short daily study sessions to build a routine."),
		below(60, "Revisit the subjects with the lowest success rate before moving on."),
		declining("Your recent sessions scored lower; use spaced repetition on recent material."),
		hoursBelow(5, "Increase total study time; aim for at least five hours a week."),
		atLeast(80, "Strong results: add harder material to keep progressing."),
	},
	model.ModuleSimulation: {
		fewerThan(3, "Take more practice exams to get a reliable baseline."),
		below(70, "Review incorrect answers after each simulation before the next attempt."),
		declining("Recent exam scores dropped; simulate real exam conditions with a timer."),
		atLeast(85, "You are exam-ready in this area; focus on weaker subjects."),
	},
	model.ModuleSleep: {
		fewerThan(7, "Log your sleep every night to see meaningful patterns."),
		below(60, "Keep a consistent bedtime and limit screens before sleep."),
		declining("Sleep quality is declining; check caffeine intake and evening routine."),
	},
	model.ModuleHealth: {
		fewerThan(5, "Track health metrics regularly to measure progress."),
		below(70, "Set smaller daily targets that are easier to reach consistently."),
		declining("Recent health metrics are falling behind target; plan activity into your calendar."),
	},
	model.ModuleRecipes: {
		fewerThan(3, "Try cooking a few more recipes to find favourites."),
		below(60, "Pick simpler recipes and rate them after cooking to track improvement."),
	},
}

var defaultRecommendations = []recommendationRule{
	fewerThan(1, "Start logging activity in this module to unlock insights."),
	below(60, "Focus on steady practice in this area to raise your average."),
	declining("Recent results are lower than earlier ones; review what changed."),
	atLeast(0, "Keep up the regular activity in this area."),
}

// Recommendations 为模块生成至多三条建议，模块规则未命中时使用通用建议
func Recommendations(in ModuleInsight) []string {
	rules, ok := moduleRecommendations[in.Module]
	if !ok {
		rules = defaultRecommendations
	}

	out := applyRules(rules, in)
	if len(out) == 0 && ok {
		out = applyRules(defaultRecommendations, in)
	}
	return out
}

func applyRules(rules []recommendationRule, in ModuleInsight) []string {
	out := []string{}
	for _, rule := range rules {
		if len(out) == maxRecommendations {
			break
		}
		if msg, hit := rule(in); hit {
			out = append(out, msg)
		}
	}
	return out
}
