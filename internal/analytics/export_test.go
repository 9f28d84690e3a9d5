package analytics

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() *StatisticsBundle {
	records := withDurations(seq(90, 90, 50, 80, 80, 80, 40), 20, 25, 130, 30, 35, 40, 15)
	records[2].CategoryKey = "sim-0002"
	records[3].ItemCount = 20
	return NewEngine(WithClock(fixedClock)).Compute(records, true)
}

func TestExport_JSONRoundTrip(t *testing.T) {
	bundle := sampleBundle()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bundle, FormatJSON))

	parsed, err := ParseExport(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, bundle, parsed)
}

func TestExport_YAMLRoundTrip(t *testing.T) {
	bundle := sampleBundle()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bundle, FormatYAML))
	assert.Contains(t, buf.String(), "performanceMetrics:")

	parsed, err := ParseExport(&buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, bundle.PerformanceMetrics, parsed.PerformanceMetrics)
	assert.Equal(t, bundle.Trends.Daily, parsed.Trends.Daily)
	assert.Equal(t, bundle.CategoryAnalysis, parsed.CategoryAnalysis)
	assert.Equal(t, bundle.StreakAnalysis, parsed.StreakAnalysis)
	assert.Equal(t, bundle.PredictiveInsights.Goals, parsed.PredictiveInsights.Goals)
	assert.Equal(t, bundle.ComparativeAnalysis, parsed.ComparativeAnalysis)
}

func TestExport_CSVHasTopLineMetricsOnly(t *testing.T) {
	bundle := sampleBundle()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bundle, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"metric", "value"}, rows[0])
	assert.Equal(t, []string{"totalAttempts", "7"}, rows[1])
	assert.Equal(t, "averagePercentage", rows[2][0])
	assert.Equal(t, []string{"bestPercentage", "90.00"}, rows[3])
	assert.Equal(t, "improvementRate", rows[4][0])
	assert.Equal(t, "consistencyScore", rows[5][0])
}

func TestExport_EmptyBundleRoundTrip(t *testing.T) {
	bundle := EmptyBundle(false)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bundle, FormatJSON))

	parsed, err := ParseExport(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, bundle, parsed)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]ExportFormat{
		"":      FormatJSON,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
		" csv ": FormatCSV,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseExport(&bytes.Buffer{}, FormatCSV)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
