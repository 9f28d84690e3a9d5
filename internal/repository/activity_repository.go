package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"stats_hub_backend/internal/model"
	"stats_hub_backend/internal/util"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ActivityRepository 从各业务模块的源表读取活动记录并归一化为 ActivityRecord，只读
type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// moduleSource 描述一个模块的源表：时间列、分类列以及读取并归一化的方法
type moduleSource struct {
	timeExpr       string
	categoryColumn string // 为空表示该模块只有一个固定分类
	fixedCategory  string
	load           func(tx *gorm.DB) ([]model.ActivityRecord, error)
}

var moduleSources = map[string]moduleSource{
	model.ModuleSimulation: {
		timeExpr:       "COALESCE(completed_at, created_at)",
		categoryColumn: "simulation_id",
		load: func(tx *gorm.DB) ([]model.ActivityRecord, error) {
			var rows []model.ExamAttempt
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]model.ActivityRecord, len(rows))
			for i, row := range rows {
				out[i] = normalizeExamAttempt(row)
			}
			return out, nil
		},
	},
	model.ModuleStudy: {
		timeExpr:       "COALESCE(completed_at, created_at)",
		categoryColumn: "subject_id",
		load: func(tx *gorm.DB) ([]model.ActivityRecord, error) {
			var rows []model.StudySession
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]model.ActivityRecord, len(rows))
			for i, row := range rows {
				out[i] = normalizeStudySession(row)
			}
			return out, nil
		},
	},
	model.ModuleSleep: {
		timeExpr:      "logged_at",
		fixedCategory: model.ModuleSleep,
		load: func(tx *gorm.DB) ([]model.ActivityRecord, error) {
			var rows []model.SleepLog
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]model.ActivityRecord, len(rows))
			for i, row := range rows {
				out[i] = normalizeSleepLog(row)
			}
			return out, nil
		},
	},
	model.ModuleHealth: {
		timeExpr:       "logged_at",
		categoryColumn: "metric",
		load: func(tx *gorm.DB) ([]model.ActivityRecord, error) {
			var rows []model.HealthLog
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]model.ActivityRecord, len(rows))
			for i, row := range rows {
				out[i] = normalizeHealthLog(row)
			}
			return out, nil
		},
	},
	model.ModuleRecipes: {
		timeExpr:       "cooked_at",
		categoryColumn: "recipe_id",
		load: func(tx *gorm.DB) ([]model.ActivityRecord, error) {
			var rows []model.RecipeLog
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]model.ActivityRecord, len(rows))
			for i, row := range rows {
				out[i] = normalizeRecipeLog(row)
			}
			return out, nil
		},
	},
}

// KnownModule 判断模块是否有对应的源表
func KnownModule(module string) bool {
	_, ok := moduleSources[module]
	return ok
}

// Fetch 读取用户在指定模块内的记录，按时间升序返回（时间相同按 id）。
// Modules 为空时读取全部已知模块。
func (r *ActivityRepository) Fetch(ctx context.Context, q model.RecordQuery) ([]model.ActivityRecord, error) {
	modules := q.Modules
	if len(modules) == 0 {
		modules = allModules()
	}

	var records []model.ActivityRecord
	for _, module := range modules {
		src, ok := moduleSources[module]
		if !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrUnknownModule, module)
		}

		rows, err := r.fetchModule(ctx, src, q)
		if err != nil {
			return nil, fmt.Errorf("fetch %s records: %w", module, err)
		}
		records = append(records, rows...)
	}

	sortRecords(records)
	if records == nil {
		records = []model.ActivityRecord{}
	}
	return records, nil
}

func (r *ActivityRepository) fetchModule(ctx context.Context, src moduleSource, q model.RecordQuery) ([]model.ActivityRecord, error) {
	if len(q.Categories) > 0 && src.categoryColumn == "" && !containsString(q.Categories, src.fixedCategory) {
		return nil, nil
	}

	tx := r.DB.WithContext(ctx).Where("user_id = ?", q.UserID)
	if q.DateFrom != nil {
		tx = tx.Where(src.timeExpr+" >= ?", startOfDay(*q.DateFrom))
	}
	if q.DateTo != nil {
		// 闭区间：包含 DateTo 当天
		tx = tx.Where(src.timeExpr+" < ?", startOfDay(*q.DateTo).AddDate(0, 0, 1))
	}
	if len(q.Categories) > 0 && src.categoryColumn != "" {
		tx = tx.Where(src.categoryColumn+" IN ?", q.Categories)
	}

	return src.load(tx.Order(src.timeExpr + " ASC"))
}

func allModules() []string {
	out := make([]string, 0, len(moduleSources))
	for m := range moduleSources {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func sortRecords(records []model.ActivityRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.Before(records[j].Timestamp)
		}
		return idLess(records[i].ID, records[j].ID)
	})
}

// idLess 两个 ID 都是整数时按数值比较，否则按字符串比较
func idLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func timestampOf(completedAt *time.Time, createdAt time.Time) time.Time {
	if completedAt != nil && !completedAt.IsZero() {
		return *completedAt
	}
	return createdAt
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func normalizeExamAttempt(a model.ExamAttempt) model.ActivityRecord {
	pct := 0.0
	switch {
	case a.Percentage != nil:
		pct = *a.Percentage
	case a.MaxScore > 0:
		pct = a.Score / a.MaxScore * 100
	}

	return model.ActivityRecord{
		ID:              a.ID,
		Module:          model.ModuleSimulation,
		CategoryKey:     a.SimulationID,
		Timestamp:       timestampOf(a.CompletedAt, a.CreatedAt),
		Score:           a.Score,
		Percentage:      pct,
		DurationMinutes: valueOr(a.DurationMinutes, 0),
		ItemCount:       a.TotalQuestions,
	}
}

// 新数据的 success_rate 可能是 0-1 的比例，也可能是 0-100 的百分比
func normalizeStudySession(s model.StudySession) model.ActivityRecord {
	pct := s.Score
	if s.SuccessRate != nil {
		pct = *s.SuccessRate
		if pct <= 1 {
			pct *= 100
		}
	}

	score := s.Score
	if score == 0 {
		score = pct
	}

	return model.ActivityRecord{
		ID:              strconv.FormatUint(uint64(s.ID), 10),
		Module:          model.ModuleStudy,
		CategoryKey:     s.SubjectID,
		Timestamp:       timestampOf(s.CompletedAt, s.CreatedAt),
		Score:           score,
		Percentage:      pct,
		DurationMinutes: valueOr(s.DurationMinutes, 0),
		ItemCount:       s.ItemsReviewed,
	}
}

func normalizeSleepLog(l model.SleepLog) model.ActivityRecord {
	pct := float64(l.Quality) * 10
	return model.ActivityRecord{
		ID:              strconv.FormatUint(uint64(l.ID), 10),
		Module:          model.ModuleSleep,
		CategoryKey:     model.ModuleSleep,
		Timestamp:       timestampOf(&l.LoggedAt, l.CreatedAt),
		Score:           pct,
		Percentage:      pct,
		DurationMinutes: l.Hours * 60,
	}
}

func normalizeHealthLog(l model.HealthLog) model.ActivityRecord {
	pct := 0.0
	if l.Target > 0 {
		pct = math.Min(100, l.Value/l.Target*100)
	}
	return model.ActivityRecord{
		ID:              strconv.FormatUint(uint64(l.ID), 10),
		Module:          model.ModuleHealth,
		CategoryKey:     l.Metric,
		Timestamp:       timestampOf(&l.LoggedAt, l.CreatedAt),
		Score:           pct,
		Percentage:      pct,
		DurationMinutes: l.DurationMinutes,
	}
}

func normalizeRecipeLog(l model.RecipeLog) model.ActivityRecord {
	pct := float64(l.Rating) * 20
	return model.ActivityRecord{
		ID:              strconv.FormatUint(uint64(l.ID), 10),
		Module:          model.ModuleRecipes,
		CategoryKey:     l.RecipeID,
		Timestamp:       timestampOf(&l.CookedAt, l.CreatedAt),
		Score:           pct,
		Percentage:      pct,
		DurationMinutes: l.PrepMinutes,
	}
}
