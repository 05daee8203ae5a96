package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aristath/pulse/internal/modules/healthdata"
	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type stubProvider struct {
	summary wellness.WellnessSummary
	err     error
}

func (s *stubProvider) WeeklySummary(ctx context.Context) (wellness.WellnessSummary, error) {
	return s.summary, s.err
}

func sampleSummary() wellness.WellnessSummary {
	return wellness.WellnessSummary{
		WeekRange:     wellness.WeekRange{Start: "2024-01-22", End: "2024-01-28"},
		WellnessScore: 61.4,
		NormalizedMetrics: map[wellness.Category]float64{
			wellness.CategoryExercise:  72.5,
			wellness.CategorySleep:     31.2,
			wellness.CategoryNutrition: 64,
			wellness.CategoryFatigue:   77.9,
		},
		Anomalies: []wellness.Anomaly{{
			Metric:       wellness.MetricTotalSleepMins,
			Value:        352,
			BaselineMean: 410,
			ZScore:       -1.8,
			Direction:    wellness.DirectionLower,
		}},
		Suggestion: wellness.Suggestion{
			Text:    "sleep is the lowest this week at 31.2/100.",
			Caveats: wellness.MedicalCaveat,
		},
	}
}

func serve(t *testing.T, provider SummaryProvider, accept string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(provider, zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleGetSummary_JSON(t *testing.T) {
	w := serve(t, &stubProvider{summary: sampleSummary()}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, 61.4, response["wellness_score"])
	assert.Equal(t, map[string]interface{}{"start": "2024-01-22", "end": "2024-01-28"}, response["week_range"])

	anomalies := response["anomalies"].([]interface{})
	require.Len(t, anomalies, 1)
	first := anomalies[0].(map[string]interface{})
	assert.Equal(t, "total_sleep_mins", first["metric"])
	assert.Equal(t, "lower", first["direction"])
	assert.Equal(t, -1.8, first["z_score"])
	assert.Equal(t, 410.0, first["baseline_mean"])
}

func TestHandleGetSummary_Msgpack(t *testing.T) {
	w := serve(t, &stubProvider{summary: sampleSummary()}, "application/msgpack, application/json;q=0.5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypeMsgpack, w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &response))

	assert.Contains(t, response, "week_range")
	assert.Contains(t, response, "normalized_metrics")
	assert.Contains(t, response, "suggestion")
	assert.Equal(t, 61.4, response["wellness_score"])
}

func TestHandleGetSummary_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "schema error",
			err:        fmt.Errorf("load: %w", &wellness.SchemaError{Missing: []string{"hrv"}}),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "load: missing required fields: [hrv]",
		},
		{
			name:       "empty dataset",
			err:        wellness.ErrEmptyDataset,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    wellness.ErrEmptyDataset.Error(),
		},
		{
			name:       "row error",
			err:        &wellness.RowError{Row: 3, Column: "rhr", Err: errors.New(`"x" is not a number`)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "source not found",
			err:        fmt.Errorf("%w: data.csv", healthdata.ErrSourceNotFound),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Data source not found.",
		},
		{
			name:       "missing file",
			err:        &os.PathError{Op: "open", Path: "data.csv", Err: os.ErrNotExist},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Data source not found.",
		},
		{
			name:       "unexpected",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to compute weekly summary.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, &stubProvider{err: tc.err}, "")

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			require.Contains(t, response, "error")
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, response["error"])
			}
		})
	}
}

func TestAcceptsMsgpack(t *testing.T) {
	testCases := map[string]bool{
		"":                                   false,
		"application/json":                   false,
		"application/msgpack":                true,
		"text/html, Application/MsgPack;q=1": true,
		"*/*":                                false,
	}

	for accept, want := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
		req.Header.Set("Accept", accept)
		assert.Equal(t, want, acceptsMsgpack(req), "Accept: %q", accept)
	}
}

func TestHandleGetSummary_UnencodableSummary(t *testing.T) {
	summary := sampleSummary()
	summary.Anomalies[0].ZScore = math.NaN()

	w := serve(t, &stubProvider{summary: summary}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Failed to encode response.", response["error"])
}
