package model

import "time"

// ExamAttempt 模拟考试的一次作答
type ExamAttempt struct {
	UUIDBase
	UserID          uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	SimulationID    string     `gorm:"index;type:varchar(36)" json:"simulationId"`
	Score           float64    `json:"score"`
	MaxScore        float64    `json:"maxScore"`
	Percentage      *float64   `json:"percentage,omitempty"`
	TotalQuestions  int        `json:"totalQuestions"`
	DurationMinutes *float64   `json:"durationMinutes,omitempty"`
	CompletedAt     *time.Time `gorm:"index" json:"completedAt,omitempty"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// StudySession 学习记录；旧数据只有 score，新数据使用 success_rate
type StudySession struct {
	BaseModel
	UserID          uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	SubjectID       string     `gorm:"index;size:64" json:"subjectId"`
	Score           float64    `json:"score"`
	SuccessRate     *float64   `json:"successRate,omitempty"`
	DurationMinutes *float64   `json:"durationMinutes,omitempty"`
	ItemsReviewed   int        `json:"itemsReviewed"`
	CompletedAt     *time.Time `gorm:"index" json:"completedAt,omitempty"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// SleepLog 睡眠记录，quality 取值 1-10
type SleepLog struct {
	BaseModel
	UserID   uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	Quality  int       `json:"quality"`
	Hours    float64   `json:"hours"`
	LoggedAt time.Time `gorm:"index" json:"loggedAt"`
}

func (SleepLog) TableName() string {
	return "sleep_logs"
}

// HealthLog 健康指标记录（步数、饮水、运动等）
type HealthLog struct {
	BaseModel
	UserID          uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	Metric          string    `gorm:"size:64" json:"metric"`
	Value           float64   `json:"value"`
	Target          float64   `json:"target"`
	DurationMinutes float64   `json:"durationMinutes"`
	LoggedAt        time.Time `gorm:"index" json:"loggedAt"`
}

func (HealthLog) TableName() string {
	return "health_logs"
}

// RecipeLog 菜谱烹饪记录，rating 取值 1-5
type RecipeLog struct {
	BaseModel
	UserID      uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	RecipeID    string    `gorm:"index;size:64" json:"recipeId"`
	Rating      int       `json:"rating"`
	PrepMinutes float64   `json:"prepMinutes"`
	CookedAt    time.Time `gorm:"index" json:"cookedAt"`
}

func (RecipeLog) TableName() string {
	return "recipe_logs"
}
