package analytics

import (
	"math"
	"sort"
	"stats_hub_backend/internal/model"
)

const (
	improvementWindow = 20
	rankedAreas       = 3
)

// peakPerformanceHours 固定占位值，未基于数据计算
var peakPerformanceHours = []string{"09:00-11:00", "14:00-16:00", "19:00-21:00"}

// CrossModule 汇总各模块的记录。byModule 中缺失的模块视为空列表。
func (e *Engine) CrossModule(byModule map[string][]model.ActivityRecord, modules []string) *CrossModuleReport {
	insights := make([]ModuleInsight, 0, len(modules))
	for _, m := range modules {
		insights = append(insights, moduleInsight(m, byModule[m]))
	}

	return &CrossModuleReport{
		OverallPerformance:  overallPerformance(byModule, modules, insights),
		ModuleInsights:      insights,
		Correlations:        correlations(byModule, insights),
		ComparativeAnalysis: compareModules(insights),
	}
}

func moduleInsight(module string, records []model.ActivityRecord) ModuleInsight {
	in := ModuleInsight{
		Module:              module,
		ActivityCount:       len(records),
		PerformanceCategory: PerformanceNeedsImprovement,
	}

	if len(records) > 0 {
		recent := sortedDescending(records)

		var minutes float64
		for _, r := range recent {
			minutes += finite(r.DurationMinutes)
		}

		avg := mean(percentages(recent))
		in.AveragePerformance = round2(avg)
		in.TotalTimeHours = round2(minutes / 60)
		// 简化的提升值：最近一次得分减去最早一次得分
		in.ImprovementRate = round2(recent[0].Score - recent[len(recent)-1].Score)
		in.LastActivity = recent[0].Timestamp.Format(dateLayout)
		in.PerformanceCategory = performanceCategory(avg)
	}

	in.Recommendations = Recommendations(in)
	return in
}

func performanceCategory(avg float64) PerformanceCategory {
	switch {
	case avg >= 80:
		return PerformanceExcellent
	case avg >= 60:
		return PerformanceGood
	default:
		return PerformanceNeedsImprovement
	}
}

func overallPerformance(byModule map[string][]model.ActivityRecord, modules []string, insights []ModuleInsight) OverallPerformance {
	var combined []model.ActivityRecord
	for _, m := range modules {
		combined = append(combined, byModule[m]...)
	}
	if len(combined) == 0 {
		return OverallPerformance{}
	}

	var scored []float64
	for _, r := range combined {
		if r.Score != 0 {
			scored = append(scored, finite(r.Percentage))
		}
	}

	counts := make([]float64, len(insights))
	most, least := insights[0], insights[0]
	for i, in := range insights {
		counts[i] = float64(in.ActivityCount)
		if in.ActivityCount > most.ActivityCount {
			most = in
		}
		if in.ActivityCount < least.ActivityCount {
			least = in
		}
	}
	countConsistency := math.Max(0, 100-safeDiv(populationStdDev(counts), mean(counts))*100)

	return OverallPerformance{
		TotalActivities:    len(combined),
		AveragePerformance: round2(mean(scored)),
		MostActiveModule:   most.Module,
		LeastActiveModule:  least.Module,
		ConsistencyScore:   round2(countConsistency),
		ImprovementTrend:   round2(windowImprovement(combined)),
	}
}

// windowImprovement 最近 20 条的平均得分减去最早 20 条的平均得分。
// 合并列表先按时间降序排列，正值表示近期表现更好。
func windowImprovement(combined []model.ActivityRecord) float64 {
	recent := sortedDescending(combined)
	n := len(recent)
	w := improvementWindow
	if n < w {
		w = n
	}
	first := scores(recent[:w])
	last := scores(recent[n-w:])
	return mean(first) - mean(last)
}

func correlations(byModule map[string][]model.ActivityRecord, insights []ModuleInsight) Correlations {
	out := Correlations{
		TimeDistribution:     map[string]float64{},
		PeakPerformanceHours: []string{},
	}

	var totalMinutes float64
	minutes := make(map[string]float64)
	var consistencies []float64
	averages := make(map[string]float64)
	for _, in := range insights {
		records := byModule[in.Module]
		if len(records) == 0 {
			continue
		}
		averages[in.Module] = in.AveragePerformance
		consistencies = append(consistencies, math.Max(0, 100-populationStdDev(percentages(records))))
		for _, r := range records {
			minutes[in.Module] += finite(r.DurationMinutes)
		}
		totalMinutes += minutes[in.Module]
	}
	if len(consistencies) == 0 {
		return out
	}

	study, simulation := averages[model.ModuleStudy], averages[model.ModuleSimulation]
	out.StudySimulationRatio = round2(safeDiv(math.Min(study, simulation), math.Max(study, simulation)) * 100)
	out.CrossModuleConsistency = round2(mean(consistencies))
	for m, v := range minutes {
		out.TimeDistribution[m] = round2(safeDiv(v, totalMinutes) * 100)
	}
	out.PeakPerformanceHours = append(out.PeakPerformanceHours, peakPerformanceHours...)
	return out
}

// compareModules 只对有记录的模块按平均表现排名
func compareModules(insights []ModuleInsight) ModuleComparison {
	ranks := []ModuleRank{}
	for _, in := range insights {
		if in.ActivityCount > 0 {
			ranks = append(ranks, ModuleRank{Module: in.Module, AveragePerformance: in.AveragePerformance})
		}
	}
	out := ModuleComparison{
		StrongestAreas:   []ModuleRank{},
		ImprovementAreas: []ModuleRank{},
	}
	if len(ranks) == 0 {
		return out
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].AveragePerformance > ranks[j].AveragePerformance
	})

	k := rankedAreas
	if len(ranks) < k {
		k = len(ranks)
	}
	out.StrongestAreas = append(out.StrongestAreas, ranks[:k]...)
	// 待提升领域按最弱在前排列
	for i := len(ranks) - 1; i >= len(ranks)-k; i-- {
		out.ImprovementAreas = append(out.ImprovementAreas, ranks[i])
	}

	avgs := make([]float64, len(ranks))
	for i, r := range ranks {
		avgs[i] = r.AveragePerformance
	}
	best, worst := avgs[0], avgs[len(avgs)-1]
	out.BalancedScore = round2(math.Max(0, 100-populationStdDev(avgs)))
	out.SpecializationIndex = round2(safeDiv(best-worst, best) * 100)
	return out
}
