package models

import "time"

// ReportType enumerates the exportable report periods.
type ReportType string

const (
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
)

// Window returns the number of calendar days covered by the report type,
// today included, or 0 when the type is unknown.
func (t ReportType) Window() int {
	switch t {
	case ReportWeekly:
		return 7
	case ReportMonthly:
		return 30
	default:
		return 0
	}
}

// Label returns the capitalized display name of the report type.
func (t ReportType) Label() string {
	return capitalize(string(t))
}

// NutritionReport is a point-in-time summary over a period, exported to
// Sheets and archived in MongoDB.
type NutritionReport struct {
	Type        ReportType        `bson:"type" json:"type"`
	PeriodStart time.Time         `bson:"period_start" json:"periodStart"`
	PeriodEnd   time.Time         `bson:"period_end" json:"periodEnd"`
	Stats       DashboardStats    `bson:"stats" json:"stats"`
	AgeGroups   []int             `bson:"age_groups" json:"ageGroups"`
	Regions     []RegionBreakdown `bson:"regions" json:"regions"`
	Narrative   string            `bson:"narrative,omitempty" json:"narrative,omitempty"`
	Records     []HealthRecord    `bson:"-" json:"-"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
}
