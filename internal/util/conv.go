package util

import (
	"strconv"
	"strings"
	"time"
)

// SplitList 解析逗号分隔的查询参数，去掉空白项与重复项，保持原有顺序
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// ParseDate 解析 YYYY-MM-DD，空字符串返回 nil
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// ParseDateRange 解析闭区间日期范围，from 晚于 to 时返回 ErrInvalidDateRange
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	dateFrom, err := ParseDate(from)
	if err != nil {
		return nil, nil, err
	}
	dateTo, err := ParseDate(to)
	if err != nil {
		return nil, nil, err
	}
	if dateFrom != nil && dateTo != nil && dateFrom.After(*dateTo) {
		return nil, nil, ErrInvalidDateRange
	}
	return dateFrom, dateTo, nil
}

func FormatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
