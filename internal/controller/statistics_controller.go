package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"stats_hub_backend/internal/analytics"
	"stats_hub_backend/internal/service"
	"stats_hub_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// StatisticsProvider 控制器依赖的统计服务
type StatisticsProvider interface {
	GetStatistics(ctx context.Context, req service.StatisticsRequest) (*analytics.StatisticsBundle, error)
	GetOverview(ctx context.Context, req service.StatisticsRequest) (*analytics.CrossModuleReport, error)
	GetWidgets(ctx context.Context, req service.StatisticsRequest) ([]analytics.ModuleWidget, error)
	Export(ctx context.Context, req service.StatisticsRequest, format analytics.ExportFormat) ([]byte, error)
}

type StatisticsController struct {
	StatisticsService StatisticsProvider
}

func NewStatisticsController(statisticsService StatisticsProvider) *StatisticsController {
	return &StatisticsController{StatisticsService: statisticsService}
}

// bindRequest 从查询参数构造统计请求
func bindRequest(ctx *gin.Context, userID uint) (service.StatisticsRequest, error) {
	dateFrom, dateTo, err := util.ParseDateRange(ctx.Query("dateFrom"), ctx.Query("dateTo"))
	if err != nil {
		return service.StatisticsRequest{}, err
	}

	comparative := false
	if raw := ctx.Query("comparative"); raw != "" {
		comparative, err = strconv.ParseBool(raw)
		if err != nil {
			return service.StatisticsRequest{}, fmt.Errorf("invalid comparative flag %q", raw)
		}
	}

	return service.StatisticsRequest{
		UserID:             userID,
		Modules:            util.SplitList(ctx.Query("modules")),
		Categories:         util.SplitList(ctx.Query("categories")),
		DateFrom:           dateFrom,
		DateTo:             dateTo,
		IncludeComparative: comparative,
	}, nil
}

func (c *StatisticsController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnknownModule),
		errors.Is(err, util.ErrUnsupportedExportFormat):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrStatisticsUnavailable):
		util.ServiceUnavailable(ctx, util.ErrStatisticsUnavailable.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 获取统计结果
// @Description 计算当前用户在指定模块/分类与日期范围内的完整统计结果
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param modules query string false "模块，逗号分隔，如 study,simulation"
// @Param categories query string false "分类键，逗号分隔"
// @Param dateFrom query string false "开始日期 YYYY-MM-DD（含）"
// @Param dateTo query string false "结束日期 YYYY-MM-DD（含）"
// @Param comparative query bool false "是否包含同伴对比"
// @Success 200 {object} util.Response{data=analytics.StatisticsBundle}
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /statistics [get]
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	req, err := bindRequest(ctx, user.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	bundle, err := c.StatisticsService.GetStatistics(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, bundle)
}

// @Summary 跨模块概览
// @Description 汇总全部已配置模块的整体表现、模块洞察、相关性与排名
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param dateFrom query string false "开始日期 YYYY-MM-DD（含）"
// @Param dateTo query string false "结束日期 YYYY-MM-DD（含）"
// @Success 200 {object} util.Response{data=analytics.CrossModuleReport}
// @Failure 400 {object} util.Response
// @Router /statistics/overview [get]
func (c *StatisticsController) GetOverview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	req, err := bindRequest(ctx, user.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.StatisticsService.GetOverview(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 模块看板卡片
// @Description 每个已配置模块一张卡片：连续记录、最佳表现、近期趋势、快速统计与下一目标
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]analytics.ModuleWidget}
// @Router /statistics/widgets [get]
func (c *StatisticsController) GetWidgets(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	req, err := bindRequest(ctx, user.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	widgets, err := c.StatisticsService.GetWidgets(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, widgets)
}

// @Summary 导出统计结果
// @Description 以 json / yaml / csv 格式下载统计结果，csv 仅包含核心指标
// @Tags 统计
// @Produce json
// @Produce application/yaml
// @Produce text/csv
// @Security ApiKeyAuth
// @Param format query string false "导出格式" Enums(json, yaml, csv) default(json)
// @Param modules query string false "模块，逗号分隔"
// @Param categories query string false "分类键，逗号分隔"
// @Param dateFrom query string false "开始日期 YYYY-MM-DD（含）"
// @Param dateTo query string false "结束日期 YYYY-MM-DD（含）"
// @Success 200 {file} file
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /statistics/export [get]
func (c *StatisticsController) Export(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	format, err := analytics.ParseFormat(ctx.Query("format"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req, err := bindRequest(ctx, user.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := c.StatisticsService.Export(ctx.Request.Context(), req, format)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("statistics-%s.%s", time.Now().Format(util.DateFormat), format.Extension())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, format.ContentType(), data)
}
