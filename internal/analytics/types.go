package analytics

// StatisticsBundle 单次请求的完整统计结果，不落库
type StatisticsBundle struct {
	PerformanceMetrics  PerformanceMetrics   `json:"performanceMetrics" yaml:"performanceMetrics"`
	Trends              Trends               `json:"trends" yaml:"trends"`
	CategoryAnalysis    []CategoryAnalysis   `json:"categoryAnalysis" yaml:"categoryAnalysis"`
	TimeAnalysis        TimeAnalysis         `json:"timeAnalysis" yaml:"timeAnalysis"`
	StreakAnalysis      StreakAnalysis       `json:"streakAnalysis" yaml:"streakAnalysis"`
	PredictiveInsights  PredictiveInsights   `json:"predictiveInsights" yaml:"predictiveInsights"`
	ComparativeAnalysis *ComparativeAnalysis `json:"comparativeAnalysis,omitempty" yaml:"comparativeAnalysis,omitempty"`
}

// PerformanceMetrics 标量表现统计
type PerformanceMetrics struct {
	TotalAttempts     int     `json:"totalAttempts" yaml:"totalAttempts"`
	AverageScore      float64 `json:"averageScore" yaml:"averageScore"`
	AveragePercentage float64 `json:"averagePercentage" yaml:"averagePercentage"`
	BestScore         float64 `json:"bestScore" yaml:"bestScore"`
	WorstScore        float64 `json:"worstScore" yaml:"worstScore"`
	BestPercentage    float64 `json:"bestPercentage" yaml:"bestPercentage"`
	WorstPercentage   float64 `json:"worstPercentage" yaml:"worstPercentage"`
	MedianPercentage  float64 `json:"medianPercentage" yaml:"medianPercentage"`
	StandardDeviation float64 `json:"standardDeviation" yaml:"standardDeviation"`
	ImprovementRate   float64 `json:"improvementRate" yaml:"improvementRate"`
	ConsistencyScore  float64 `json:"consistencyScore" yaml:"consistencyScore"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Trends 三种粒度的趋势序列
type Trends struct {
	Daily   []PeriodStats `json:"daily" yaml:"daily"`
	Weekly  []PeriodStats `json:"weekly" yaml:"weekly"`
	Monthly []PeriodStats `json:"monthly" yaml:"monthly"`
}

type PeriodStats struct {
	Period                  string  `json:"period" yaml:"period"`
	Attempts                int     `json:"attempts" yaml:"attempts"`
	AveragePercentage       float64 `json:"averagePercentage" yaml:"averagePercentage"`
	BestPercentage          float64 `json:"bestPercentage" yaml:"bestPercentage"`
	TotalDurationMinutes    float64 `json:"totalDurationMinutes" yaml:"totalDurationMinutes"`
	ImprovementFromPrevious float64 `json:"improvementFromPrevious" yaml:"improvementFromPrevious"`
}

type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "beginner"
	MasteryIntermediate MasteryLevel = "intermediate"
	MasteryAdvanced     MasteryLevel = "advanced"
	MasteryExpert       MasteryLevel = "expert"
)

type CategoryAnalysis struct {
	CategoryKey          string       `json:"categoryKey" yaml:"categoryKey"`
	Label                string       `json:"label" yaml:"label"`
	Attempts             int          `json:"attempts" yaml:"attempts"`
	AveragePercentage    float64      `json:"averagePercentage" yaml:"averagePercentage"`
	BestPercentage       float64      `json:"bestPercentage" yaml:"bestPercentage"`
	WorstPercentage      float64      `json:"worstPercentage" yaml:"worstPercentage"`
	ImprovementTrend     float64      `json:"improvementTrend" yaml:"improvementTrend"`
	DifficultyRating     float64      `json:"difficultyRating" yaml:"difficultyRating"`
	TotalDurationMinutes float64      `json:"totalDurationMinutes" yaml:"totalDurationMinutes"`
	TotalItems           int          `json:"totalItems" yaml:"totalItems"`
	TimeEfficiency       float64      `json:"timeEfficiency" yaml:"timeEfficiency"`
	MasteryLevel         MasteryLevel `json:"masteryLevel" yaml:"masteryLevel"`
}

type TimeAnalysis struct {
	OptimalTimeRange     OptimalTimeRange `json:"optimalTimeRange" yaml:"optimalTimeRange"`
	DurationDistribution []DurationBucket `json:"durationDistribution" yaml:"durationDistribution"`
	SpeedAnalysis        SpeedAnalysis    `json:"speedAnalysis" yaml:"speedAnalysis"`
}

type OptimalTimeRange struct {
	MinMinutes        float64 `json:"minMinutes" yaml:"minMinutes"`
	MaxMinutes        float64 `json:"maxMinutes" yaml:"maxMinutes"`
	AveragePercentage float64 `json:"averagePercentage" yaml:"averagePercentage"`
}

type DurationBucket struct {
	Range             string  `json:"range" yaml:"range"`
	Count             int     `json:"count" yaml:"count"`
	AveragePercentage float64 `json:"averagePercentage" yaml:"averagePercentage"`
}

type SpeedAnalysis struct {
	AverageSecondsPerItem float64 `json:"averageSecondsPerItem" yaml:"averageSecondsPerItem"`
	FastestCompletion     float64 `json:"fastestCompletion" yaml:"fastestCompletion"`
	SlowestCompletion     float64 `json:"slowestCompletion" yaml:"slowestCompletion"`
	OptimalPace           float64 `json:"optimalPace" yaml:"optimalPace"`
}

type StreakAnalysis struct {
	CurrentStreak   int             `json:"currentStreak" yaml:"currentStreak"`
	LongestStreak   int             `json:"longestStreak" yaml:"longestStreak"`
	StreakThreshold float64         `json:"streakThreshold" yaml:"streakThreshold"`
	StreakHistory   []StreakEpisode `json:"streakHistory" yaml:"streakHistory"`
}

type StreakEpisode struct {
	StartDate         string  `json:"startDate" yaml:"startDate"`
	EndDate           string  `json:"endDate" yaml:"endDate"`
	Length            int     `json:"length" yaml:"length"`
	AveragePercentage float64 `json:"averagePercentage" yaml:"averagePercentage"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type PredictiveInsights struct {
	PredictedPercentage float64        `json:"predictedPercentage" yaml:"predictedPercentage"`
	ConfidenceLevel     float64        `json:"confidenceLevel" yaml:"confidenceLevel"`
	Suggestions         []Suggestion   `json:"suggestions" yaml:"suggestions"`
	Goals               []GoalProposal `json:"goals" yaml:"goals"`
}

type Suggestion struct {
	Type        string   `json:"type" yaml:"type"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
}

type GoalProposal struct {
	Type          string  `json:"type" yaml:"type"`
	Description   string  `json:"description" yaml:"description"`
	Target        float64 `json:"target" yaml:"target"`
	Current       float64 `json:"current" yaml:"current"`
	TargetDate    string  `json:"targetDate" yaml:"targetDate"`
	Achievability float64 `json:"achievability" yaml:"achievability"`
}

// ComparativeAnalysis 同伴对比结果，目前只有占位实现
type ComparativeAnalysis struct {
	PercentileRank float64 `json:"percentileRank" yaml:"percentileRank"`
	Available      bool    `json:"available" yaml:"available"`
	Note           string  `json:"note" yaml:"note"`
}

// CrossModuleReport 跨模块聚合结果
type CrossModuleReport struct {
	OverallPerformance  OverallPerformance `json:"overallPerformance" yaml:"overallPerformance"`
	ModuleInsights      []ModuleInsight    `json:"moduleInsights" yaml:"moduleInsights"`
	Correlations        Correlations       `json:"correlations" yaml:"correlations"`
	ComparativeAnalysis ModuleComparison   `json:"comparativeAnalysis" yaml:"comparativeAnalysis"`
}

type OverallPerformance struct {
	TotalActivities    int     `json:"totalActivities" yaml:"totalActivities"`
	AveragePerformance float64 `json:"averagePerformance" yaml:"averagePerformance"`
	MostActiveModule   string  `json:"mostActiveModule" yaml:"mostActiveModule"`
	LeastActiveModule  string  `json:"leastActiveModule" yaml:"leastActiveModule"`
	ConsistencyScore   float64 `json:"consistencyScore" yaml:"consistencyScore"`
	ImprovementTrend   float64 `json:"improvementTrend" yaml:"improvementTrend"`
}

type PerformanceCategory string

const (
	PerformanceExcellent        PerformanceCategory = "excellent"
	PerformanceGood             PerformanceCategory = "good"
	PerformanceNeedsImprovement PerformanceCategory = "needs_improvement"
)

type ModuleInsight struct {
	Module              string              `json:"module" yaml:"module"`
	ActivityCount       int                 `json:"activityCount" yaml:"activityCount"`
	AveragePerformance  float64             `json:"averagePerformance" yaml:"averagePerformance"`
	TotalTimeHours      float64             `json:"totalTimeHours" yaml:"totalTimeHours"`
	ImprovementRate     float64             `json:"improvementRate" yaml:"improvementRate"`
	LastActivity        string              `json:"lastActivity" yaml:"lastActivity"`
	PerformanceCategory PerformanceCategory `json:"performanceCategory" yaml:"performanceCategory"`
	Recommendations     []string            `json:"recommendations" yaml:"recommendations"`
}

type Correlations struct {
	StudySimulationRatio   float64            `json:"studySimulationRatio" yaml:"studySimulationRatio"`
	CrossModuleConsistency float64            `json:"crossModuleConsistency" yaml:"crossModuleConsistency"`
	TimeDistribution       map[string]float64 `json:"timeDistribution" yaml:"timeDistribution"`
	PeakPerformanceHours   []string           `json:"peakPerformanceHours" yaml:"peakPerformanceHours"`
}

type ModuleRank struct {
	Module             string  `json:"module" yaml:"module"`
	AveragePerformance float64 `json:"averagePerformance" yaml:"averagePerformance"`
}

type ModuleComparison struct {
	StrongestAreas      []ModuleRank `json:"strongestAreas" yaml:"strongestAreas"`
	ImprovementAreas    []ModuleRank `json:"improvementAreas" yaml:"improvementAreas"`
	BalancedScore       float64      `json:"balancedScore" yaml:"balancedScore"`
	SpecializationIndex float64      `json:"specializationIndex" yaml:"specializationIndex"`
}

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// ModuleWidget 仪表盘模块卡片数据
type ModuleWidget struct {
	Module          string          `json:"module" yaml:"module"`
	Streak          WidgetStreak    `json:"streak" yaml:"streak"`
	BestPerformance BestPerformance `json:"bestPerformance" yaml:"bestPerformance"`
	RecentTrend     TrendDirection  `json:"recentTrend" yaml:"recentTrend"`
	QuickStats      QuickStats      `json:"quickStats" yaml:"quickStats"`
	NextGoal        NextGoal        `json:"nextGoal" yaml:"nextGoal"`
}

type WidgetStreak struct {
	Current int `json:"current" yaml:"current"`
	Longest int `json:"longest" yaml:"longest"`
}

type BestPerformance struct {
	Score      float64 `json:"score" yaml:"score"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

type QuickStats struct {
	ThisWeek  int `json:"thisWeek" yaml:"thisWeek"`
	ThisMonth int `json:"thisMonth" yaml:"thisMonth"`
	Total     int `json:"total" yaml:"total"`
}

type NextGoal struct {
	Description string  `json:"description" yaml:"description"`
	Progress    float64 `json:"progress" yaml:"progress"`
	TargetDate  string  `json:"targetDate" yaml:"targetDate"`
}
