package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

func TestParseLenientFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"null", 0},
		{"12.5", 12.5},
		{`"12.5"`, 12.5},
		{`" 13 "`, 13},
		{`"n/a"`, 0},
		{`"NaN"`, 0},
		{`"Infinity"`, 0},
		{"1e400", 0},
		{"-1e400", 0},
	}

	for _, tc := range cases {
		if got := parseLenientFloat(json.RawMessage(tc.raw)); got != tc.want {
			t.Errorf("parseLenientFloat(%s): expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

type capturingStore struct {
	added []models.NewRecord
}

func (s *capturingStore) Add(fields models.NewRecord) models.HealthRecord {
	s.added = append(s.added, fields)
	return models.HealthRecord{ID: len(s.added), Name: fields.Name, MUAC: fields.MUAC, Region: fields.Region}
}

func (s *capturingStore) Recent(int) []models.HealthRecord { return nil }

func TestCreateRecord_MUAC(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]float64{
		`"muac":12.5,`:  12.5,
		`"muac":null,`:  0,
		`"muac":"NaN",`: 0,
		`"muac":1e400,`: 0,
		``:              0,
	}

	for field, want := range cases {
		store := &capturingStore{}
		h := NewDashboardHandler(nil, store, nil)

		body := `{"name":"Aisha","age":14,"gender":"female","region":"north","weight":9.1,"height":74,` +
			field + `"nutritionStatus":"healthy"}`
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CreateRecord(c)

		if w.Code != http.StatusCreated {
			t.Errorf("%q: expected 201, got %d (%s)", field, w.Code, w.Body.String())
			continue
		}
		if len(store.added) != 1 || store.added[0].MUAC != want {
			t.Errorf("%q: expected muac %v, got %+v", field, want, store.added)
		}
	}
}
