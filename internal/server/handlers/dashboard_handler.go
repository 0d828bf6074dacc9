package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
	"github.com/mamadbah2/nutriwatch/internal/service/reporting"
)

const recentEntriesLimit = 10

// DashboardService is the analytics surface the dashboard reads.
type DashboardService interface {
	Stats() models.DashboardStats
	RiskChart() models.ChartSeries
	AgeGroupChart() models.ChartSeries
	RegionalChart() models.ChartSeries
	Heatmap() models.Heatmap
	Records(filter reporting.RecordFilter) []models.HealthRecord
	ExportReport(ctx context.Context, reportType models.ReportType) (models.NutritionReport, error)
	ReportHistory(ctx context.Context, limit int64) ([]models.NutritionReport, error)
}

// RecordStore is the write side of the record store.
type RecordStore interface {
	Add(fields models.NewRecord) models.HealthRecord
	Recent(limit int) []models.HealthRecord
}

// DashboardHandler serves statistics, chart series, records and reports.
type DashboardHandler struct {
	svc    DashboardService
	store  RecordStore
	logger *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc DashboardService, store RecordStore, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, store: store, logger: logger}
}

// Stats returns the summary counters.
func (h *DashboardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}

// Chart returns the series of the named chart.
func (h *DashboardHandler) Chart(c *gin.Context) {
	switch c.Param("name") {
	case "risk":
		c.JSON(http.StatusOK, h.svc.RiskChart())
	case "age-groups":
		c.JSON(http.StatusOK, h.svc.AgeGroupChart())
	case "regional":
		c.JSON(http.StatusOK, h.svc.RegionalChart())
	case "heatmap":
		c.JSON(http.StatusOK, h.svc.Heatmap())
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart"})
	}
}

// ListRecords returns records filtered by region and recency.
func (h *DashboardHandler) ListRecords(c *gin.Context) {
	var filter reporting.RecordFilter

	if region := c.Query("region"); region != "" && !strings.EqualFold(region, "all") {
		parsed, err := models.ParseRegion(region)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Region = parsed
	}

	if days := c.Query("days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		filter.Days = n
	}

	c.JSON(http.StatusOK, h.svc.Records(filter))
}

// RecentRecords returns the latest entries, newest first.
func (h *DashboardHandler) RecentRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Recent(recentEntriesLimit))
}

// createRecordRequest accepts muac as a number, a numeric string, or anything
// else, which is read as 0.
type createRecordRequest struct {
	models.NewRecord
	MUAC json.RawMessage `json:"muac"`
}

// CreateRecord validates and stores a submitted entry.
func (h *DashboardHandler) CreateRecord(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := req.NewRecord
	fields.MUAC = parseLenientFloat(req.MUAC)

	fields, err := fields.Normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := h.store.Add(fields)
	h.logger.Info("record added", zap.Int("id", record.ID), zap.String("region", string(record.Region)))
	c.JSON(http.StatusCreated, record)
}

// ExportReport generates the report of the requested type and exports it.
func (h *DashboardHandler) ExportReport(c *gin.Context) {
	reportType := models.ReportType(strings.ToLower(c.Param("type")))

	report, err := h.svc.ExportReport(c.Request.Context(), reportType)
	switch {
	case errors.Is(err, reporting.ErrUnknownReportType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("report export failed", zap.String("type", string(reportType)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ReportHistory lists archived reports.
func (h *DashboardHandler) ReportHistory(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	reports, err := h.svc.ReportHistory(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("report history failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load report history"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

func parseLenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
