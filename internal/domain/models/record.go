package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord indicates submitted record fields failed validation.
var ErrInvalidRecord = errors.New("invalid record")

// DateLayout is the calendar date format used for record dates.
const DateLayout = "2006-01-02"

// Gender enumerates the supported child genders.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Region enumerates the monitored regions.
type Region string

const (
	RegionNorth Region = "north"
	RegionSouth Region = "south"
	RegionEast  Region = "east"
	RegionWest  Region = "west"
)

// Regions lists every region in display order.
var Regions = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}

// Label returns the capitalized display name of the region.
func (r Region) Label() string {
	return capitalize(string(r))
}

// NutritionStatus is the categorical severity label of a record.
type NutritionStatus string

const (
	StatusHealthy  NutritionStatus = "healthy"
	StatusModerate NutritionStatus = "moderate"
	StatusSevere   NutritionStatus = "severe"
)

// Statuses lists every nutrition status in display order.
var Statuses = []NutritionStatus{StatusHealthy, StatusModerate, StatusSevere}

// Label returns the capitalized display name of the status.
func (s NutritionStatus) Label() string {
	return capitalize(string(s))
}

// AtRisk reports whether the status is moderate or severe.
func (s NutritionStatus) AtRisk() bool {
	return s == StatusModerate || s == StatusSevere
}

// HealthRecord is one child's nutrition measurement entry.
type HealthRecord struct {
	ID              int             `json:"id" bson:"id"`
	Name            string          `json:"name" bson:"name"`
	Age             int             `json:"age" bson:"age"` // months
	Gender          Gender          `json:"gender" bson:"gender"`
	Region          Region          `json:"region" bson:"region"`
	Weight          float64         `json:"weight" bson:"weight"` // kg
	Height          float64         `json:"height" bson:"height"` // cm
	MUAC            float64         `json:"muac" bson:"muac"`     // cm
	NutritionStatus NutritionStatus `json:"nutritionStatus" bson:"nutrition_status"`
	Date            string          `json:"date" bson:"date"`
}

// NewRecord carries the caller supplied fields of a record. The store assigns
// the id and the date.
type NewRecord struct {
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Gender          Gender          `json:"gender"`
	Region          Region          `json:"region"`
	Weight          float64         `json:"weight"`
	Height          float64         `json:"height"`
	MUAC            float64         `json:"muac"`
	NutritionStatus NutritionStatus `json:"nutritionStatus"`
}

// Normalize validates the submitted fields and returns them with the enum
// values in canonical form.
func (r NewRecord) Normalize() (NewRecord, error) {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return r, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	case r.Age < 0:
		return r, fmt.Errorf("%w: age must not be negative", ErrInvalidRecord)
	case r.Weight <= 0:
		return r, fmt.Errorf("%w: weight must be positive", ErrInvalidRecord)
	case r.Height <= 0:
		return r, fmt.Errorf("%w: height must be positive", ErrInvalidRecord)
	case r.MUAC < 0:
		return r, fmt.Errorf("%w: muac must not be negative", ErrInvalidRecord)
	}

	var err error
	if r.Gender, err = ParseGender(string(r.Gender)); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.Region, err = ParseRegion(string(r.Region)); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.NutritionStatus, err = ParseNutritionStatus(string(r.NutritionStatus)); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return r, nil
}

// ParseGender normalizes and validates a gender value.
func ParseGender(value string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(value))); g {
	case GenderMale, GenderFemale:
		return g, nil
	case "m":
		return GenderMale, nil
	case "f":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q", value)
	}
}

// ParseRegion normalizes and validates a region value.
func ParseRegion(value string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Regions {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", value)
}

// ParseNutritionStatus normalizes and validates a nutrition status value.
func ParseNutritionStatus(value string) (NutritionStatus, error) {
	s := NutritionStatus(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown nutrition status %q", value)
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
