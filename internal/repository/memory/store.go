package memory

import (
	"sync"
	"time"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

// Store is the in-process record store. Ids come from a monotonic counter so
// they stay unique regardless of the list length.
type Store struct {
	mu      sync.RWMutex
	records []models.HealthRecord
	nextID  int
	now     func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used to date new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a record built from the supplied fields, dated today.
func (s *Store) Add(fields models.NewRecord) models.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.HealthRecord{
		ID:              s.nextID,
		Name:            fields.Name,
		Age:             fields.Age,
		Gender:          fields.Gender,
		Region:          fields.Region,
		Weight:          fields.Weight,
		Height:          fields.Height,
		MUAC:            fields.MUAC,
		NutritionStatus: fields.NutritionStatus,
		Date:            s.now().UTC().Format(models.DateLayout),
	}
	s.nextID++
	s.records = append(s.records, record)
	return record
}

// Load appends fully formed records, such as generated mock data, keeping
// their dates. Ids are reassigned from the counter.
func (s *Store) Load(records []models.HealthRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		record.ID = s.nextID
		s.nextID++
		s.records = append(s.records, record)
	}
}

// Snapshot returns a copy of every record in insertion order.
func (s *Store) Snapshot() []models.HealthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HealthRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) []models.HealthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]models.HealthRecord, 0, limit)
	for i := len(s.records) - 1; i >= len(s.records)-limit; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
