package model

import "time"

// 业务模块标识
const (
	ModuleStudy      = "study"
	ModuleSimulation = "simulation"
	ModuleSleep      = "sleep"
	ModuleHealth     = "health"
	ModuleRecipes    = "recipes"
)

// ActivityRecord 归一化后的活动记录，所有分析器只接收这一种形态
type ActivityRecord struct {
	ID              string    `json:"id" yaml:"id"`
	Module          string    `json:"module" yaml:"module"`
	CategoryKey     string    `json:"categoryKey" yaml:"categoryKey"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	Score           float64   `json:"score" yaml:"score"`
	Percentage      float64   `json:"percentage" yaml:"percentage"`
	DurationMinutes float64   `json:"durationMinutes" yaml:"durationMinutes"`
	ItemCount       int       `json:"itemCount" yaml:"itemCount"`
}

// RecordQuery 记录源查询条件，日期均为闭区间
type RecordQuery struct {
	UserID     uint
	Modules    []string
	Categories []string
	DateFrom   *time.Time
	DateTo     *time.Time
}
