package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

const (
	reportsWriteRange = "Reports!A:H"
	recordsWriteRange = "Records!A:J"
)

// ErrUnknownReportType indicates the requested report period is not supported.
var ErrUnknownReportType = errors.New("unknown report type")

// RecordSource is the read side of the record store.
type RecordSource interface {
	Snapshot() []models.HealthRecord
}

// SheetWriter appends rows to a spreadsheet.
type SheetWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// ReportArchive stores generated reports.
type ReportArchive interface {
	SaveReport(ctx context.Context, report models.NutritionReport) error
	RecentReports(ctx context.Context, limit int64) ([]models.NutritionReport, error)
}

// Narrator writes a short prose summary of a report.
type Narrator interface {
	SummarizeReport(ctx context.Context, report models.NutritionReport) (string, error)
}

// Service exposes dashboard analytics over the record store.
type Service struct {
	store    RecordSource
	sheets   SheetWriter
	archive  ReportArchive
	narrator Narrator
	groups   []models.AgeGroup
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithSheets enables report export to Google Sheets.
func WithSheets(w SheetWriter) Option {
	return func(s *Service) { s.sheets = w }
}

// WithArchive enables report archiving.
func WithArchive(a ReportArchive) Option {
	return func(s *Service) { s.archive = a }
}

// WithNarrator enables AI narratives on generated reports.
func WithNarrator(n Narrator) Option {
	return func(s *Service) { s.narrator = n }
}

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires a new reporting service instance.
func NewService(store RecordSource, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		groups: models.DefaultAgeGroups,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats computes the dashboard counters over every record.
func (s *Service) Stats() models.DashboardStats {
	return ComputeStats(s.store.Snapshot())
}

// RiskChart returns the status distribution series.
func (s *Service) RiskChart() models.ChartSeries {
	return RiskChart(s.store.Snapshot())
}

// AgeGroupChart returns the per age group series.
func (s *Service) AgeGroupChart() models.ChartSeries {
	return AgeGroupChart(s.store.Snapshot(), s.groups)
}

// RegionalChart returns the stacked per region series.
func (s *Service) RegionalChart() models.ChartSeries {
	return RegionalChart(s.store.Snapshot())
}

// Heatmap returns the region by age group healthy share grid.
func (s *Service) Heatmap() models.Heatmap {
	return BuildHeatmap(s.store.Snapshot(), s.groups)
}

// Records returns the filtered record listing.
func (s *Service) Records(filter RecordFilter) []models.HealthRecord {
	return FilterRecords(s.store.Snapshot(), filter, s.now())
}

// GenerateReport builds a report over the window of the given type without
// exporting it.
func (s *Service) GenerateReport(ctx context.Context, reportType models.ReportType) (models.NutritionReport, error) {
	days := reportType.Window()
	if days == 0 {
		return models.NutritionReport{}, fmt.Errorf("%w: %s", ErrUnknownReportType, reportType)
	}

	now := s.now().UTC()
	records := FilterRecords(s.store.Snapshot(), RecordFilter{Days: days}, now)

	report := models.NutritionReport{
		Type:        reportType,
		PeriodStart: WindowStart(now, days),
		PeriodEnd:   now,
		Stats:       ComputeStats(records),
		AgeGroups:   CountByAgeGroup(records, s.groups),
		Regions:     RegionBreakdowns(records),
		Records:     records,
		CreatedAt:   now,
	}

	if s.narrator != nil {
		narrative, err := s.narrator.SummarizeReport(ctx, report)
		if err != nil {
			s.logger.Warn("report narrative failed", zap.String("type", string(reportType)), zap.Error(err))
		} else {
			report.Narrative = narrative
		}
	}

	return report, nil
}

// ExportReport generates a report and pushes it to every configured sink.
func (s *Service) ExportReport(ctx context.Context, reportType models.ReportType) (models.NutritionReport, error) {
	report, err := s.GenerateReport(ctx, reportType)
	if err != nil {
		return models.NutritionReport{}, err
	}

	if s.sheets != nil {
		if err := s.exportToSheets(ctx, report); err != nil {
			return report, fmt.Errorf("export report to sheets: %w", err)
		}
	}

	if s.archive != nil {
		if err := s.archive.SaveReport(ctx, report); err != nil {
			return report, fmt.Errorf("archive report: %w", err)
		}
	}

	s.logger.Info("report exported",
		zap.String("type", string(reportType)),
		zap.Int("records", len(report.Records)),
		zap.Bool("sheets", s.sheets != nil),
		zap.Bool("archive", s.archive != nil))

	return report, nil
}

// ReportHistory lists archived reports, newest first. Without an archive the
// history is empty.
func (s *Service) ReportHistory(ctx context.Context, limit int64) ([]models.NutritionReport, error) {
	if s.archive == nil {
		return []models.NutritionReport{}, nil
	}
	reports, err := s.archive.RecentReports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load report history: %w", err)
	}
	return reports, nil
}

func (s *Service) exportToSheets(ctx context.Context, report models.NutritionReport) error {
	st := report.Stats
	summary := []interface{}{
		report.CreatedAt.Format(models.DateLayout),
		string(report.Type),
		st.TotalChildren,
		st.AtRiskCount,
		st.AvgNutriScore,
		st.InterventionsCount,
		st.NextPeriodPrediction,
		st.HighRiskRegions,
	}
	if err := s.sheets.WriteRow(ctx, reportsWriteRange, summary); err != nil {
		return err
	}

	if len(report.Records) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(report.Records))
	for _, r := range report.Records {
		rows = append(rows, []interface{}{
			r.ID, r.Name, r.Age, string(r.Gender), string(r.Region),
			r.Weight, r.Height, r.MUAC, string(r.NutritionStatus), r.Date,
		})
	}
	return s.sheets.WriteRows(ctx, recordsWriteRange, rows)
}

// FormatSummary renders the dashboard counters as a short text message.
func FormatSummary(title string, stats models.DashboardStats) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Children monitored: %d\n", stats.TotalChildren)
	fmt.Fprintf(&b, "At risk: %d\n", stats.AtRiskCount)
	fmt.Fprintf(&b, "Healthy: %s\n", stats.AvgNutriScore)
	fmt.Fprintf(&b, "Interventions needed: %d\n", stats.InterventionsCount)
	fmt.Fprintf(&b, "Severe cases next period: %d\n", stats.NextPeriodPrediction)
	fmt.Fprintf(&b, "High-risk regions: %d", stats.HighRiskRegions)
	return b.String()
}

// FormatReport renders a report, including its narrative when present.
func FormatReport(report models.NutritionReport) string {
	title := fmt.Sprintf("%s nutrition report (%s to %s)",
		report.Type.Label(),
		report.PeriodStart.Format(models.DateLayout),
		report.PeriodEnd.Format(models.DateLayout))

	text := FormatSummary(title, report.Stats)
	if report.Narrative != "" {
		text += "\n\n" + report.Narrative
	}
	return text
}
