package reporting

import (
	"math"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

// Placeholder heuristics carried over from the dashboard counters. They are
// not derived from a model.
const (
	interventionRate = 0.6
	severeGrowthRate = 1.08
)

// highRiskShare is the at-risk share at which a region counts as high risk.
const highRiskShare = 0.5

// CountByStatus counts records with the given nutrition status.
func CountByStatus(records []models.HealthRecord, status models.NutritionStatus) int {
	var n int
	for _, r := range records {
		if r.NutritionStatus == status {
			n++
		}
	}
	return n
}

// AtRiskCount counts records whose status is moderate or severe.
func AtRiskCount(records []models.HealthRecord) int {
	var n int
	for _, r := range records {
		if r.NutritionStatus.AtRisk() {
			n++
		}
	}
	return n
}

// AverageHealthyPercentage returns the healthy share of records as a
// percentage rounded to one decimal. An empty list yields 0.
func AverageHealthyPercentage(records []models.HealthRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	pct := float64(CountByStatus(records, models.StatusHealthy)) / float64(len(records)) * 100
	return math.Round(pct*10) / 10
}

// CountByAgeGroup returns one count per group, in group order. Records whose
// age falls outside every group are not counted.
func CountByAgeGroup(records []models.HealthRecord, groups []models.AgeGroup) []int {
	counts := make([]int, len(groups))
	for _, r := range records {
		for i, g := range groups {
			if g.Contains(r.Age) {
				counts[i]++
			}
		}
	}
	return counts
}

// CountByRegionAndStatus counts records matching both region and status.
func CountByRegionAndStatus(records []models.HealthRecord, region models.Region, status models.NutritionStatus) int {
	var n int
	for _, r := range records {
		if r.Region == region && r.NutritionStatus == status {
			n++
		}
	}
	return n
}

// InterventionEstimate is the number of at-risk children expected to need an
// intervention.
func InterventionEstimate(atRisk int) int {
	return int(math.Floor(float64(atRisk) * interventionRate))
}

// NextPeriodPrediction projects the severe case count for the next period.
func NextPeriodPrediction(severe int) int {
	return int(math.Floor(float64(severe) * severeGrowthRate))
}

// HighRiskRegionCount counts regions with records where at least half of them
// are at risk.
func HighRiskRegionCount(records []models.HealthRecord) int {
	var n int
	for _, region := range models.Regions {
		var total, atRisk int
		for _, r := range records {
			if r.Region != region {
				continue
			}
			total++
			if r.NutritionStatus.AtRisk() {
				atRisk++
			}
		}
		if total > 0 && float64(atRisk)/float64(total) >= highRiskShare {
			n++
		}
	}
	return n
}

// ComputeStats derives the dashboard counters from records.
func ComputeStats(records []models.HealthRecord) models.DashboardStats {
	atRisk := AtRiskCount(records)
	healthyPct := AverageHealthyPercentage(records)

	return models.DashboardStats{
		TotalChildren:        len(records),
		AtRiskCount:          atRisk,
		HealthyPercentage:    healthyPct,
		AvgNutriScore:        formatPercent(healthyPct),
		InterventionsCount:   InterventionEstimate(atRisk),
		NextPeriodPrediction: NextPeriodPrediction(CountByStatus(records, models.StatusSevere)),
		HighRiskRegions:      HighRiskRegionCount(records),
	}
}
