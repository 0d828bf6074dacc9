package reporting

import (
	"reflect"
	"testing"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

func recordsWithStatuses(healthy, moderate, severe int) []models.HealthRecord {
	var out []models.HealthRecord
	add := func(n int, status models.NutritionStatus) {
		for i := 0; i < n; i++ {
			out = append(out, models.HealthRecord{ID: len(out) + 1, Age: 12, Region: models.RegionNorth, NutritionStatus: status})
		}
	}
	add(healthy, models.StatusHealthy)
	add(moderate, models.StatusModerate)
	add(severe, models.StatusSevere)
	return out
}

func TestCountByStatus_SumsToTotal(t *testing.T) {
	records := recordsWithStatuses(7, 4, 2)

	var sum int
	for _, s := range models.Statuses {
		sum += CountByStatus(records, s)
	}
	if sum != len(records) {
		t.Fatalf("expected status counts to sum to %d, got %d", len(records), sum)
	}
}

func TestAtRiskCount_IsModeratePlusSevere(t *testing.T) {
	records := recordsWithStatuses(3, 5, 6)

	want := CountByStatus(records, models.StatusModerate) + CountByStatus(records, models.StatusSevere)
	if got := AtRiskCount(records); got != want {
		t.Errorf("expected %d at risk, got %d", want, got)
	}
}

func TestAverageHealthyPercentage_Empty(t *testing.T) {
	if got := AverageHealthyPercentage(nil); got != 0 {
		t.Errorf("expected 0 for empty records, got %v", got)
	}
}

func TestAverageHealthyPercentage_RoundsToOneDecimal(t *testing.T) {
	records := recordsWithStatuses(1, 2, 0)
	if got := AverageHealthyPercentage(records); got != 33.3 {
		t.Errorf("expected 33.3, got %v", got)
	}
}

func TestScenario_SixThreeOne(t *testing.T) {
	records := recordsWithStatuses(6, 3, 1)

	atRisk := AtRiskCount(records)
	if atRisk != 4 {
		t.Fatalf("expected 4 at risk, got %d", atRisk)
	}
	if pct := AverageHealthyPercentage(records); pct != 60.0 {
		t.Errorf("expected 60.0, got %v", pct)
	}
	if est := InterventionEstimate(atRisk); est != 2 {
		t.Errorf("expected intervention estimate 2, got %d", est)
	}
}

func TestCountByAgeGroup(t *testing.T) {
	ages := []int{0, 12, 13, 24, 30, 48, 49, 60, 61, -1, 100}
	records := make([]models.HealthRecord, 0, len(ages))
	for _, a := range ages {
		records = append(records, models.HealthRecord{Age: a})
	}

	got := CountByAgeGroup(records, models.DefaultAgeGroups)
	want := []int{2, 2, 1, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	var sum, inRange int
	for _, n := range got {
		sum += n
	}
	for _, a := range ages {
		if a >= 0 && a <= 60 {
			inRange++
		}
	}
	if sum != inRange {
		t.Errorf("expected bucket sum %d, got %d", inRange, sum)
	}
}

func TestCountByRegionAndStatus(t *testing.T) {
	records := []models.HealthRecord{
		{Region: models.RegionNorth, NutritionStatus: models.StatusSevere},
		{Region: models.RegionNorth, NutritionStatus: models.StatusSevere},
		{Region: models.RegionNorth, NutritionStatus: models.StatusHealthy},
		{Region: models.RegionSouth, NutritionStatus: models.StatusSevere},
	}

	if got := CountByRegionAndStatus(records, models.RegionNorth, models.StatusSevere); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := CountByRegionAndStatus(records, models.RegionWest, models.StatusSevere); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestHeuristics(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"intervention zero", InterventionEstimate(0), 0},
		{"intervention 10", InterventionEstimate(10), 6},
		{"intervention 7", InterventionEstimate(7), 4},
		{"prediction zero", NextPeriodPrediction(0), 0},
		{"prediction 12", NextPeriodPrediction(12), 12},
		{"prediction 13", NextPeriodPrediction(13), 14},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, tc.got)
		}
	}
}

func TestHighRiskRegionCount(t *testing.T) {
	records := []models.HealthRecord{
		{Region: models.RegionNorth, NutritionStatus: models.StatusSevere},
		{Region: models.RegionNorth, NutritionStatus: models.StatusHealthy},
		{Region: models.RegionSouth, NutritionStatus: models.StatusHealthy},
		{Region: models.RegionSouth, NutritionStatus: models.StatusHealthy},
		{Region: models.RegionEast, NutritionStatus: models.StatusModerate},
	}

	if got := HighRiskRegionCount(records); got != 2 {
		t.Errorf("expected 2 high-risk regions, got %d", got)
	}
	if got := HighRiskRegionCount(nil); got != 0 {
		t.Errorf("expected 0 for empty records, got %d", got)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(recordsWithStatuses(6, 3, 1))

	want := models.DashboardStats{
		TotalChildren:        10,
		AtRiskCount:          4,
		HealthyPercentage:    60,
		AvgNutriScore:        "60.0%",
		InterventionsCount:   2,
		NextPeriodPrediction: 1,
		HighRiskRegions:      0,
	}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.AvgNutriScore != "0.0%" || stats.TotalChildren != 0 {
		t.Errorf("unexpected stats for empty store: %+v", stats)
	}
}

func TestAggregations_Idempotent(t *testing.T) {
	records := recordsWithStatuses(4, 4, 4)

	if a, b := ComputeStats(records), ComputeStats(records); a != b {
		t.Errorf("stats differ between calls: %+v vs %+v", a, b)
	}
	if a, b := CountByAgeGroup(records, models.DefaultAgeGroups), CountByAgeGroup(records, models.DefaultAgeGroups); !reflect.DeepEqual(a, b) {
		t.Errorf("age groups differ between calls: %v vs %v", a, b)
	}
}
