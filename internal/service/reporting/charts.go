package reporting

import (
	"fmt"
	"math"
	"time"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

const (
	goodThreshold  = 75.0
	watchThreshold = 50.0
)

// RiskChart projects the status distribution for the doughnut chart.
func RiskChart(records []models.HealthRecord) models.ChartSeries {
	labels := make([]string, 0, len(models.Statuses))
	data := make([]int, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		labels = append(labels, status.Label())
		data = append(data, CountByStatus(records, status))
	}

	return models.ChartSeries{
		Labels:   labels,
		Datasets: []models.ChartDataset{{Label: "Children", Data: data}},
	}
}

// AgeGroupChart projects the children count per age group.
func AgeGroupChart(records []models.HealthRecord, groups []models.AgeGroup) models.ChartSeries {
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, ageGroupLabel(g)+" months")
	}

	return models.ChartSeries{
		Labels:   labels,
		Datasets: []models.ChartDataset{{Label: "Children Count", Data: CountByAgeGroup(records, groups)}},
	}
}

// RegionalChart projects one stacked dataset per status across regions.
func RegionalChart(records []models.HealthRecord) models.ChartSeries {
	labels := make([]string, 0, len(models.Regions))
	for _, region := range models.Regions {
		labels = append(labels, region.Label())
	}

	datasets := make([]models.ChartDataset, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		data := make([]int, 0, len(models.Regions))
		for _, region := range models.Regions {
			data = append(data, CountByRegionAndStatus(records, region, status))
		}
		datasets = append(datasets, models.ChartDataset{Label: status.Label(), Data: data})
	}

	return models.ChartSeries{Labels: labels, Datasets: datasets}
}

// RegionBreakdowns counts each status per region.
func RegionBreakdowns(records []models.HealthRecord) []models.RegionBreakdown {
	out := make([]models.RegionBreakdown, 0, len(models.Regions))
	for _, region := range models.Regions {
		out = append(out, models.RegionBreakdown{
			Region:   region,
			Healthy:  CountByRegionAndStatus(records, region, models.StatusHealthy),
			Moderate: CountByRegionAndStatus(records, region, models.StatusModerate),
			Severe:   CountByRegionAndStatus(records, region, models.StatusSevere),
		})
	}
	return out
}

// BuildHeatmap computes the healthy percentage for every region and age
// group. Empty cells are 0.
func BuildHeatmap(records []models.HealthRecord, groups []models.AgeGroup) models.Heatmap {
	hm := models.Heatmap{
		Regions:   make([]string, 0, len(models.Regions)),
		AgeGroups: make([]string, 0, len(groups)),
		Cells:     make([][]models.HeatmapCell, 0, len(models.Regions)),
	}
	for _, g := range groups {
		hm.AgeGroups = append(hm.AgeGroups, ageGroupLabel(g)+"m")
	}

	for _, region := range models.Regions {
		hm.Regions = append(hm.Regions, region.Label())

		row := make([]models.HeatmapCell, 0, len(groups))
		for _, g := range groups {
			var total, healthy int
			for _, r := range records {
				if r.Region != region || !g.Contains(r.Age) {
					continue
				}
				total++
				if r.NutritionStatus == models.StatusHealthy {
					healthy++
				}
			}

			var value float64
			if total > 0 {
				value = math.Round(float64(healthy)/float64(total)*1000) / 10
			}
			row = append(row, models.HeatmapCell{Value: value, Band: bandFor(value), Records: total})
		}
		hm.Cells = append(hm.Cells, row)
	}

	return hm
}

// RecordFilter narrows a record listing. Zero values disable each filter.
type RecordFilter struct {
	Region models.Region
	Days   int
}

// WindowStart returns midnight UTC of the first day of a window of the given
// number of calendar days ending today. A 7 day window starting on a Monday
// ends on Sunday.
func WindowStart(now time.Time, days int) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1))
}

// FilterRecords applies the region and recency filters. Days counts calendar
// days including today. Records with an unparsable date are dropped only when
// a day window is requested.
func FilterRecords(records []models.HealthRecord, filter RecordFilter, now time.Time) []models.HealthRecord {
	var cutoff time.Time
	if filter.Days > 0 {
		cutoff = WindowStart(now, filter.Days)
	}

	out := make([]models.HealthRecord, 0, len(records))
	for _, r := range records {
		if filter.Region != "" && r.Region != filter.Region {
			continue
		}
		if filter.Days > 0 {
			date, err := time.Parse(models.DateLayout, r.Date)
			if err != nil || date.Before(cutoff) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func bandFor(value float64) models.HeatmapBand {
	switch {
	case value >= goodThreshold:
		return models.BandGood
	case value >= watchThreshold:
		return models.BandWatch
	default:
		return models.BandAlert
	}
}

func ageGroupLabel(g models.AgeGroup) string {
	return fmt.Sprintf("%d-%d", g.Min, g.Max)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
