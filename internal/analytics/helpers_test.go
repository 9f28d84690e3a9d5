package analytics

import (
	"fmt"
	"stats_hub_backend/internal/model"
	"time"
)

var baseTime = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC) // Monday

// seq 生成每天一条、按给定百分比排列的记录
func seq(pcts ...float64) []model.ActivityRecord {
	out := make([]model.ActivityRecord, len(pcts))
	for i, p := range pcts {
		out[i] = model.ActivityRecord{
			ID:          fmt.Sprintf("r%d", i),
			Module:      model.ModuleSimulation,
			CategoryKey: "sim-0001",
			Timestamp:   baseTime.AddDate(0, 0, i),
			Score:       p,
			Percentage:  p,
		}
	}
	return out
}

func withDurations(records []model.ActivityRecord, minutes ...float64) []model.ActivityRecord {
	for i := range records {
		if i < len(minutes) {
			records[i].DurationMinutes = minutes[i]
		}
	}
	return records
}

func fixedClock() time.Time {
	return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
}
