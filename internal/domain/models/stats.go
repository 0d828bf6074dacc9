package models

// AgeGroup is an inclusive range of ages in months.
type AgeGroup struct {
	Min int
	Max int
}

// Contains reports whether the age falls inside the group bounds.
func (g AgeGroup) Contains(age int) bool {
	return age >= g.Min && age <= g.Max
}

// DefaultAgeGroups are the dashboard buckets, in display order.
var DefaultAgeGroups = []AgeGroup{
	{Min: 0, Max: 12},
	{Min: 13, Max: 24},
	{Min: 25, Max: 36},
	{Min: 37, Max: 48},
	{Min: 49, Max: 60},
}

// DashboardStats holds the summary counters shown at the top of the dashboard.
type DashboardStats struct {
	TotalChildren        int     `json:"totalChildren" bson:"total_children"`
	AtRiskCount          int     `json:"atRiskCount" bson:"at_risk_count"`
	HealthyPercentage    float64 `json:"healthyPercentage" bson:"healthy_percentage"`
	AvgNutriScore        string  `json:"avgNutriScore" bson:"avg_nutri_score"`
	InterventionsCount   int     `json:"interventionsCount" bson:"interventions_count"`
	NextPeriodPrediction int     `json:"nextPeriodPrediction" bson:"next_period_prediction"`
	HighRiskRegions      int     `json:"highRiskRegions" bson:"high_risk_regions"`
}

// ChartDataset is one labeled series of a chart.
type ChartDataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// ChartSeries is the data half of a chart: labels plus one or more datasets.
type ChartSeries struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// HeatmapBand classifies a heatmap cell value.
type HeatmapBand string

const (
	BandGood  HeatmapBand = "good"
	BandWatch HeatmapBand = "watch"
	BandAlert HeatmapBand = "alert"
)

// HeatmapCell is the healthy share of one region and age group.
type HeatmapCell struct {
	Value   float64     `json:"value"`
	Band    HeatmapBand `json:"band"`
	Records int         `json:"records"`
}

// Heatmap is a region by age group grid of healthy percentages.
type Heatmap struct {
	Regions   []string        `json:"regions"`
	AgeGroups []string        `json:"ageGroups"`
	Cells     [][]HeatmapCell `json:"cells"`
}

// RegionBreakdown counts each status within one region.
type RegionBreakdown struct {
	Region   Region `json:"region" bson:"region"`
	Healthy  int    `json:"healthy" bson:"healthy"`
	Moderate int    `json:"moderate" bson:"moderate"`
	Severe   int    `json:"severe" bson:"severe"`
}
