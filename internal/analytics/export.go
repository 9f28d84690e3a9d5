package analytics

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
	FormatCSV  ExportFormat = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat 解析导出格式，忽略大小写，空值默认为 json
func ParseFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

func (f ExportFormat) Extension() string {
	return string(f)
}

// Export 把统计结果写入 w。csv 只包含几项核心指标。
func Export(w io.Writer, bundle *StatisticsBundle, format ExportFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bundle); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return exportCSV(w, bundle)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func exportCSV(w io.Writer, bundle *StatisticsBundle) error {
	m := bundle.PerformanceMetrics
	rows := [][]string{
		{"metric", "value"},
		{"totalAttempts", strconv.Itoa(m.TotalAttempts)},
		{"averagePercentage", formatFloat(m.AveragePercentage)},
		{"bestPercentage", formatFloat(m.BestPercentage)},
		{"improvementRate", formatFloat(m.ImprovementRate)},
		{"consistencyScore", formatFloat(m.ConsistencyScore)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseExport 读回结构化导出，csv 为单向格式不支持解析
func ParseExport(r io.Reader, format ExportFormat) (*StatisticsBundle, error) {
	var bundle StatisticsBundle
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&bundle); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&bundle); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: cannot parse %q", ErrUnsupportedFormat, format)
	}
	return &bundle, nil
}
