package analytics

import (
	"math"
	"sort"
	"stats_hub_backend/internal/model"
	"unicode/utf8"
)

const dateLayout = "2006-01-02"

// finite 把 NaN/Inf 归零
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(finite(v)*100) / 100
}

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, finite(v)))
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return finite(a / b)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev 总体标准差（除以 n）
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return finite(math.Sqrt(sq / float64(len(values))))
}

func percentages(records []model.ActivityRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = finite(r.Percentage)
	}
	return out
}

func scores(records []model.ActivityRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = finite(r.Score)
	}
	return out
}

// sortedAscending 返回按时间升序排列的副本，不修改入参
func sortedAscending(records []model.ActivityRecord) []model.ActivityRecord {
	out := append([]model.ActivityRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// sortedDescending 返回按时间降序（最近在前）排列的副本
func sortedDescending(records []model.ActivityRecord) []model.ActivityRecord {
	out := append([]model.ActivityRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// lastRunes 取字符串末尾 n 个字符
func lastRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[len(r)-n:])
}
