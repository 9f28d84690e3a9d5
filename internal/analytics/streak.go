package analytics

import (
	"sort"
	"stats_hub_backend/internal/model"
)

// StreakThreshold 计入连续达标的最低百分比
const StreakThreshold = 70.0

// streakState 单次正向扫描的状态
type streakState struct {
	length    int
	startDate string
	sumPct    float64
	prevDate  string

	current int
	longest int
	history []StreakEpisode
}

func (s *streakState) step(r model.ActivityRecord, last bool) {
	date := r.Timestamp.Format(dateLayout)
	pct := finite(r.Percentage)

	if pct >= StreakThreshold {
		if s.length == 0 {
			s.startDate = date
			s.sumPct = 0
		}
		s.length++
		s.sumPct += pct
		if last {
			s.current = s.length
		}
	} else if s.length > 0 {
		s.close()
	}
	s.prevDate = date
}

// close 结束当前连续段，只有被打断的连续段才计入 longest
func (s *streakState) close() {
	s.history = append(s.history, StreakEpisode{
		StartDate:         s.startDate,
		EndDate:           s.prevDate,
		Length:            s.length,
		AveragePercentage: round2(s.sumPct / float64(s.length)),
	})
	if s.length > s.longest {
		s.longest = s.length
	}
	s.length = 0
	s.startDate = ""
	s.sumPct = 0
	s.current = 0
}

// AnalyzeStreaks 按时间升序扫描记录，识别连续达标段。
// 扫描结束时仍在进行的连续段只体现在 CurrentStreak 中，不计入 LongestStreak 和历史。
func AnalyzeStreaks(records []model.ActivityRecord) StreakAnalysis {
	ordered := sortedAscending(records)

	state := &streakState{}
	for i, r := range ordered {
		state.step(r, i == len(ordered)-1)
	}

	history := state.history
	if history == nil {
		history = []StreakEpisode{}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Length > history[j].Length
	})

	return StreakAnalysis{
		CurrentStreak:   state.current,
		LongestStreak:   state.longest,
		StreakThreshold: StreakThreshold,
		StreakHistory:   history,
	}
}
