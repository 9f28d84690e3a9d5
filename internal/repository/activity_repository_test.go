package repository

import (
	"context"
	"errors"
	"stats_hub_backend/internal/config"
	"stats_hub_backend/internal/model"
	"stats_hub_backend/internal/util"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func ptr[T any](v T) *T { return &v }

func TestActivityRepository_FetchMergesModulesInTimeOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `study_sessions` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "user_id", "subject_id", "score", "success_rate", "duration_minutes", "items_reviewed", "completed_at"}).
			AddRow(3, day, 7, "algebra", 0, 0.8, 30.0, 12, day.Add(10*time.Hour)).
			AddRow(4, day.Add(20*time.Hour), 7, "algebra", 65, nil, nil, 0, nil))

	mock.ExpectQuery("SELECT \\* FROM `exam_attempts` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "user_id", "simulation_id", "score", "max_score", "percentage", "total_questions", "duration_minutes", "completed_at"}).
			AddRow("a-1", day, 7, "sim-1", 42.0, 50.0, nil, 50, 45.0, day.Add(12*time.Hour)))

	records, err := repo.Fetch(context.Background(), model.RecordQuery{
		UserID:  7,
		Modules: []string{model.ModuleStudy, model.ModuleSimulation},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, records, 3)
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, 80.0, records[0].Percentage)
	assert.Equal(t, "a-1", records[1].ID)
	assert.Equal(t, 84.0, records[1].Percentage)
	assert.Equal(t, 50, records[1].ItemCount)
	// 没有 completed_at 时回落到 created_at
	assert.Equal(t, "4", records[2].ID)
	assert.Equal(t, day.Add(20*time.Hour), records[2].Timestamp)
	assert.Equal(t, 65.0, records[2].Percentage)
}

func TestActivityRepository_SameTimestampOrdersNumericIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	at := time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `sleep_logs` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "user_id", "quality", "hours", "logged_at"}).
			AddRow(10, at, 7, 4, 6.0, at).
			AddRow(9, at, 7, 8, 7.5, at).
			AddRow(100, at, 7, 6, 7.0, at))

	records, err := repo.Fetch(context.Background(), model.RecordQuery{UserID: 7, Modules: []string{model.ModuleSleep}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"9", "10", "100"}, ids)
}

func TestIDLess(t *testing.T) {
	assert.True(t, idLess("9", "10"))
	assert.False(t, idLess("10", "9"))
	assert.True(t, idLess("a-10", "a-9"))
	// 混合时按字符串比较
	assert.True(t, idLess("10", "a-1"))
}

func TestActivityRepository_FetchAppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `recipe_logs` WHERE user_id = \\? AND cooked_at >= \\? AND cooked_at < \\? AND recipe_id IN \\(\\?,\\?\\)").
		WithArgs(sqlmock.AnyArg(), from, to.AddDate(0, 0, 1), "r-1", "r-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "recipe_id", "rating", "prep_minutes", "cooked_at"}).
			AddRow(1, 7, "r-1", 4, 25.0, from.Add(time.Hour)))

	records, err := repo.Fetch(context.Background(), model.RecordQuery{
		UserID:     7,
		Modules:    []string{model.ModuleRecipes, model.ModuleSleep},
		Categories: []string{"r-1", "r-2"},
		DateFrom:   &from,
		DateTo:     &to,
	})
	require.NoError(t, err)
	// sleep 只有固定分类 "sleep"，不在过滤条件内，不会查询
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, records, 1)
	assert.Equal(t, 80.0, records[0].Percentage)
	assert.Equal(t, "r-1", records[0].CategoryKey)
}

func TestActivityRepository_FetchErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	_, err := repo.Fetch(context.Background(), model.RecordQuery{UserID: 7, Modules: []string{"journal"}})
	assert.ErrorIs(t, err, util.ErrUnknownModule)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT \\* FROM `sleep_logs`").WillReturnError(boom)

	_, err = repo.Fetch(context.Background(), model.RecordQuery{UserID: 7, Modules: []string{model.ModuleSleep}})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_EmptyResultIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `health_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repo.Fetch(context.Background(), model.RecordQuery{UserID: 7, Modules: []string{model.ModuleHealth}})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNormalizers(t *testing.T) {
	at := time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)

	exam := normalizeExamAttempt(model.ExamAttempt{
		UUIDBase:        model.UUIDBase{ID: "x", CreatedAt: at},
		SimulationID:    "sim",
		Score:           10,
		MaxScore:        20,
		Percentage:      ptr(70.0),
		DurationMinutes: ptr(15.0),
	})
	assert.Equal(t, 70.0, exam.Percentage, "stored percentage wins over score/max")
	assert.Equal(t, at, exam.Timestamp)
	assert.Equal(t, 15.0, exam.DurationMinutes)

	ratio := normalizeStudySession(model.StudySession{SuccessRate: ptr(0.45)})
	assert.Equal(t, 45.0, ratio.Percentage)
	assert.Equal(t, 45.0, ratio.Score)

	percent := normalizeStudySession(model.StudySession{SuccessRate: ptr(92.0), Score: 8})
	assert.Equal(t, 92.0, percent.Percentage)
	assert.Equal(t, 8.0, percent.Score)

	sleep := normalizeSleepLog(model.SleepLog{Quality: 7, Hours: 7.5, LoggedAt: at})
	assert.Equal(t, 70.0, sleep.Percentage)
	assert.Equal(t, 450.0, sleep.DurationMinutes)
	assert.Equal(t, model.ModuleSleep, sleep.CategoryKey)

	over := normalizeHealthLog(model.HealthLog{Metric: "steps", Value: 12000, Target: 10000, LoggedAt: at})
	assert.Equal(t, 100.0, over.Percentage)
	noTarget := normalizeHealthLog(model.HealthLog{Metric: "water", Value: 3})
	assert.Equal(t, 0.0, noTarget.Percentage)

	recipe := normalizeRecipeLog(model.RecipeLog{Rating: 3, PrepMinutes: 40, CookedAt: at})
	assert.Equal(t, 60.0, recipe.Percentage)
	assert.Equal(t, 40.0, recipe.DurationMinutes)
}

func TestKnownModule_MatchesConfigurableModules(t *testing.T) {
	for _, m := range config.DefaultModules {
		assert.True(t, KnownModule(m), m)
	}
	assert.Len(t, allModules(), len(config.DefaultModules))
	assert.False(t, KnownModule("journal"))
}
