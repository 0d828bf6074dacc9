package memory

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

const mockDateSpread = 30 * 24 * time.Hour

var mockNames = []string{
	"Aarav Kumar", "Priya Singh", "Ravi Sharma", "Anjali Patel",
	"Sanjay Reddy", "Meera Gupta", "Vikram Joshi", "Neha Verma",
}

// GenerateMockRecords builds count randomized records dated within the 30
// days before now. Ids are left for the store to assign.
func GenerateMockRecords(rng *rand.Rand, count int, now time.Time) []models.HealthRecord {
	records := make([]models.HealthRecord, 0, count)
	for i := 0; i < count; i++ {
		gender := models.GenderFemale
		if rng.Float64() > 0.5 {
			gender = models.GenderMale
		}

		offset := time.Duration(rng.Int64N(int64(mockDateSpread)))

		records = append(records, models.HealthRecord{
			Name:            mockNames[rng.IntN(len(mockNames))],
			Age:             rng.IntN(60) + 1,
			Gender:          gender,
			Region:          models.Regions[rng.IntN(len(models.Regions))],
			Weight:          oneDecimal(rng.Float64()*15 + 3),
			Height:          oneDecimal(rng.Float64()*40 + 50),
			MUAC:            oneDecimal(rng.Float64()*5 + 10),
			NutritionStatus: models.Statuses[rng.IntN(len(models.Statuses))],
			Date:            now.Add(-offset).UTC().Format(models.DateLayout),
		})
	}
	return records
}

// NewSeededRand returns a generator for mock data. A zero seed derives one
// from the current time.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func oneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
