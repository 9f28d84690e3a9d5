package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"stats_hub_backend/internal/analytics"
	"stats_hub_backend/internal/config"
	"stats_hub_backend/internal/model"
	"stats_hub_backend/internal/util"
	"stats_hub_backend/pkg/logger"
	"stats_hub_backend/pkg/monitoring"
	"stats_hub_backend/pkg/tracing"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecordSource 活动记录的唯一数据入口，负责按用户隔离数据
type RecordSource interface {
	Fetch(ctx context.Context, q model.RecordQuery) ([]model.ActivityRecord, error)
}

// StatisticsRequest 一次统计请求的过滤条件
type StatisticsRequest struct {
	UserID             uint
	Modules            []string
	Categories         []string
	DateFrom           *time.Time
	DateTo             *time.Time
	IncludeComparative bool
}

type StatisticsService struct {
	Source RecordSource
	Engine *analytics.Engine

	mu          sync.RWMutex
	modules     []string
	concurrency int
}

func NewStatisticsService(source RecordSource, engine *analytics.Engine, cfg config.StatisticsConfig) *StatisticsService {
	s := &StatisticsService{
		Source: source,
		Engine: engine,
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig 配置热更新时替换模块集合与并发度
func (s *StatisticsService) ApplyConfig(cfg config.StatisticsConfig) {
	modules := cfg.Modules
	if len(modules) == 0 {
		modules = config.DefaultModules
	}
	concurrency := cfg.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	s.mu.Lock()
	s.modules = append([]string(nil), modules...)
	s.concurrency = concurrency
	s.mu.Unlock()
}

func (s *StatisticsService) Modules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.modules...)
}

func (s *StatisticsService) fetchConcurrency() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.concurrency
}

// resolveModules 请求未指定模块时使用全部已配置模块；指定了未配置的模块返回 ErrUnknownModule
func (s *StatisticsService) resolveModules(requested []string) ([]string, error) {
	configured := s.Modules()
	if len(requested) == 0 {
		return configured, nil
	}

	allowed := make(map[string]bool, len(configured))
	for _, m := range configured {
		allowed[m] = true
	}
	for _, m := range requested {
		if !allowed[m] {
			return nil, fmt.Errorf("%w: %s", util.ErrUnknownModule, m)
		}
	}
	return requested, nil
}

// GetStatistics 获取单次统计结果。记录源失败时返回 ErrStatisticsUnavailable，不做降级。
func (s *StatisticsService) GetStatistics(ctx context.Context, req StatisticsRequest) (*analytics.StatisticsBundle, error) {
	modules, err := s.resolveModules(req.Modules)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "statistics.GetStatistics")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user_id", int64(req.UserID)),
		attribute.StringSlice("modules", modules),
		attribute.Bool("comparative", req.IncludeComparative),
	)

	records, err := s.Source.Fetch(ctx, model.RecordQuery{
		UserID:     req.UserID,
		Modules:    modules,
		Categories: req.Categories,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "record fetch failed")
		if errors.Is(err, util.ErrUnknownModule) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStatisticsUnavailable, err)
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	start := time.Now()
	bundle := s.Engine.Compute(records, req.IncludeComparative)
	monitoring.ObserveCompute("bundle", start)

	return bundle, nil
}

// GetOverview 跨模块汇总
func (s *StatisticsService) GetOverview(ctx context.Context, req StatisticsRequest) (*analytics.CrossModuleReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "statistics.GetOverview")
	defer span.End()

	modules := s.Modules()
	byModule, err := s.fetchByModule(ctx, req, modules)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := s.Engine.CrossModule(byModule, modules)
	monitoring.ObserveCompute("overview", start)

	return report, nil
}

// GetWidgets 每个已配置模块一个看板卡片
func (s *StatisticsService) GetWidgets(ctx context.Context, req StatisticsRequest) ([]analytics.ModuleWidget, error) {
	ctx, span := tracing.Tracer.Start(ctx, "statistics.GetWidgets")
	defer span.End()

	modules := s.Modules()
	byModule, err := s.fetchByModule(ctx, req, modules)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	widgets := s.Engine.Widgets(byModule, modules)
	monitoring.ObserveCompute("widgets", start)

	return widgets, nil
}

// Export 按指定格式导出统计结果
func (s *StatisticsService) Export(ctx context.Context, req StatisticsRequest, format analytics.ExportFormat) ([]byte, error) {
	bundle, err := s.GetStatistics(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := analytics.Export(&buf, bundle, format); err != nil {
		if errors.Is(err, analytics.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedExportFormat, format)
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// fetchByModule 并发拉取各模块记录。
// 单个模块失败只记日志并以空列表参与汇总，不影响其他模块。
func (s *StatisticsService) fetchByModule(ctx context.Context, req StatisticsRequest, modules []string) (map[string][]model.ActivityRecord, error) {
	results := make([][]model.ActivityRecord, len(modules))

	var g errgroup.Group
	g.SetLimit(s.fetchConcurrency())

	for i, module := range modules {
		i, module := i, module
		g.Go(func() error {
			records, err := s.Source.Fetch(ctx, model.RecordQuery{
				UserID:     req.UserID,
				Modules:    []string{module},
				Categories: req.Categories,
				DateFrom:   req.DateFrom,
				DateTo:     req.DateTo,
			})
			if err != nil {
				logger.Log.Warn("Module fetch failed, using empty records",
					zap.Uint("user_id", req.UserID),
					zap.String("module", module),
					zap.Error(err),
				)
				monitoring.ModuleFetchFailures.WithLabelValues(module).Inc()
				records = []model.ActivityRecord{}
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byModule := make(map[string][]model.ActivityRecord, len(modules))
	for i, module := range modules {
		byModule[module] = results[i]
	}
	return byModule, nil
}
