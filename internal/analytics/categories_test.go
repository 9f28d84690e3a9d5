package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCategories_GroupsAndSorts(t *testing.T) {
	records := seq(50, 60, 70, 95, 92, 40)
	records[0].CategoryKey = "3f2a9c1e-77b0-4c1d-9e55-a1b2c3d4e5f6"
	records[1].CategoryKey = "3f2a9c1e-77b0-4c1d-9e55-a1b2c3d4e5f6"
	records[2].CategoryKey = "3f2a9c1e-77b0-4c1d-9e55-a1b2c3d4e5f6"
	records[3].CategoryKey = "algebra"
	records[4].CategoryKey = "algebra"
	records[5].CategoryKey = ""

	out := AnalyzeCategories(records)
	require.Len(t, out, 3)

	first := out[0]
	assert.Equal(t, "3f2a9c1e-77b0-4c1d-9e55-a1b2c3d4e5f6", first.CategoryKey)
	assert.Equal(t, "c3d4e5f6", first.Label)
	assert.Equal(t, 3, first.Attempts)
	assert.Equal(t, 60.0, first.AveragePercentage)
	assert.Equal(t, 10.0, first.ImprovementTrend)
	assert.Equal(t, 5.0, first.DifficultyRating)
	assert.Equal(t, MasteryIntermediate, first.MasteryLevel)

	second := out[1]
	assert.Equal(t, "algebra", second.CategoryKey)
	assert.Equal(t, "algebra", second.Label)
	assert.Equal(t, 93.5, second.AveragePercentage)
	assert.Equal(t, MasteryExpert, second.MasteryLevel)
	assert.Equal(t, 1.65, second.DifficultyRating)

	assert.Equal(t, "unknown", out[2].CategoryKey)
	assert.Equal(t, MasteryBeginner, out[2].MasteryLevel)
}

func TestAnalyzeCategories_RegressionUsesChronologicalOrder(t *testing.T) {
	records := seq(50, 60, 70)
	// reverse input order; the per-group slope must still be positive
	records[0], records[2] = records[2], records[0]

	out := AnalyzeCategories(records)
	require.Len(t, out, 1)
	assert.Equal(t, 10.0, out[0].ImprovementTrend)
}

func TestAnalyzeCategories_DifficultyIsClamped(t *testing.T) {
	perfect := AnalyzeCategories(seq(100, 100))
	assert.Equal(t, 1.0, perfect[0].DifficultyRating)

	zero := AnalyzeCategories(seq(0, 0))
	assert.Equal(t, 10.0, zero[0].DifficultyRating)
}

func TestAnalyzeCategories_TimeEfficiency(t *testing.T) {
	records := withDurations(seq(80, 80), 10, 30)
	records[0].ItemCount = 20
	records[1].ItemCount = 40

	out := AnalyzeCategories(records)
	assert.Equal(t, 1.5, out[0].TimeEfficiency)
	assert.Equal(t, 60, out[0].TotalItems)

	noTime := AnalyzeCategories(seq(80))
	assert.Equal(t, 0.0, noTime[0].TimeEfficiency)
}

func TestMasteryFor(t *testing.T) {
	cases := map[float64]MasteryLevel{
		95:    MasteryExpert,
		90:    MasteryExpert,
		89.99: MasteryAdvanced,
		75:    MasteryAdvanced,
		60:    MasteryIntermediate,
		59.9:  MasteryBeginner,
		0:     MasteryBeginner,
	}
	for avg, want := range cases {
		assert.Equal(t, want, masteryFor(avg), "avg %v", avg)
	}
}
