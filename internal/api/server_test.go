package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	statsengine "burnoutlab/adapters/stats/engine"
	"burnoutlab/app"
	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	"burnoutlab/domain/scoring"
	"burnoutlab/internal"
	"burnoutlab/internal/config"
	apperrors "burnoutlab/internal/errors"
	"burnoutlab/internal/testkit"
)

// memoryRepository is an in-memory ObservationRepository for handler tests.
type memoryRepository struct {
	mu           sync.Mutex
	observations []dataset.Observation
}

func (m *memoryRepository) Save(_ context.Context, obs dataset.Observation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, obs)
	return nil
}

func (m *memoryRepository) SaveBatch(ctx context.Context, observations []dataset.Observation) error {
	for _, obs := range observations {
		if err := m.Save(ctx, obs); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id core.RecordID) (*dataset.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, obs := range m.observations {
		if obs.ID == id {
			o := obs
			return &o, nil
		}
	}
	return nil, apperrors.NotFound("observation " + id.String())
}

func (m *memoryRepository) List(_ context.Context, limit, offset int) ([]dataset.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.observations) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.observations) {
		end = len(m.observations)
	}
	return append([]dataset.Observation(nil), m.observations[offset:end]...), nil
}

func (m *memoryRepository) ListAll(_ context.Context) ([]dataset.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dataset.Observation(nil), m.observations...), nil
}

func (m *memoryRepository) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.observations), nil
}

func newTestServer(t *testing.T, repo *memoryRepository) *Server {
	t.Helper()
	assessments := app.NewAssessmentService(scoring.NewEngine(scoring.DefaultConfig()), repo)
	analysis := app.NewAnalysisService(repo, statsengine.New())
	return NewServer(config.ServerConfig{GinMode: "test"}, assessments, analysis,
		internal.NewLogger(internal.LogLevelError))
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &memoryRepository{})
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHandleAssess(t *testing.T) {
	repo := &memoryRepository{}
	s := newTestServer(t, repo)

	body := map[string]interface{}{
		"stress_level":       5.0,
		"sleep_duration":     8.0,
		"study_hours":        5.0,
		"screen_time":        7.0,
		"physical_activity":  5.0,
		"social_interaction": 5.0,
	}

	w := doJSON(t, s, http.MethodPost, "/api/assess", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result app.AssessmentResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Assessment.Level != scoring.RiskModerate {
		t.Errorf("level = %s, want MODERATE", result.Assessment.Level)
	}
	if result.RecordID != "" {
		t.Errorf("record persisted without persist flag: %s", result.RecordID)
	}
	if n, _ := repo.Count(context.Background()); n != 0 {
		t.Errorf("repository has %d records, want 0", n)
	}
}

func TestHandleAssess_Persist(t *testing.T) {
	repo := &memoryRepository{}
	s := newTestServer(t, repo)

	body := map[string]interface{}{
		"stress_level":       9.0,
		"sleep_duration":     4.0,
		"study_hours":        12.0,
		"screen_time":        14.0,
		"physical_activity":  1.0,
		"social_interaction": 2.0,
		"persist":            true,
	}

	w := doJSON(t, s, http.MethodPost, "/api/assess", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result app.AssessmentResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.RecordID == "" {
		t.Fatal("persisted assessment returned no record ID")
	}

	stored, err := repo.GetByID(context.Background(), result.RecordID)
	if err != nil {
		t.Fatalf("stored record not found: %v", err)
	}
	if stored.BurnoutScore != result.Assessment.Score {
		t.Errorf("stored score %v differs from response %v", stored.BurnoutScore, result.Assessment.Score)
	}
	if stored.BurnoutLabel != 1 {
		t.Errorf("label = %d, want 1 for a high scorer", stored.BurnoutLabel)
	}
}

func TestHandleAssess_BadInput(t *testing.T) {
	s := newTestServer(t, &memoryRepository{})

	t.Run("out of range", func(t *testing.T) {
		body := map[string]interface{}{
			"stress_level":       25.0,
			"sleep_duration":     8.0,
			"study_hours":        5.0,
			"screen_time":        7.0,
			"physical_activity":  5.0,
			"social_interaction": 5.0,
		}
		w := doJSON(t, s, http.MethodPost, "/api/assess", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/assess", bytes.NewBufferString("{nope"))
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestHandleAddRecord(t *testing.T) {
	repo := &memoryRepository{}
	s := newTestServer(t, repo)

	body := map[string]interface{}{
		"stress_level":       6.0,
		"sleep_duration":     7.0,
		"study_hours":        6.5,
		"screen_time":        9.0,
		"physical_activity":  4.0,
		"social_interaction": 3.0,
		"burnout_score":      0.47,
		"burnout_binary":     0,
	}

	w := doJSON(t, s, http.MethodPost, "/api/records", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var stored dataset.Observation
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stored.ID.String() == "" {
		t.Error("record stored without a generated ID")
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Errorf("repository has %d records, want 1", n)
	}
}

func TestHandleGetRecord(t *testing.T) {
	obs := testkit.GenerateObservations(testkit.CohortConfig{Rows: 3, Seed: 3, ScoreNoise: 0.05})
	repo := &memoryRepository{observations: obs}
	s := newTestServer(t, repo)

	t.Run("existing record", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/records/"+obs[1].ID.String(), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var got dataset.Observation
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.ID != obs[1].ID {
			t.Errorf("id = %s, want %s", got.ID, obs[1].ID)
		}
		if got.BurnoutScore != obs[1].BurnoutScore {
			t.Errorf("score = %v, want %v", got.BurnoutScore, obs[1].BurnoutScore)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/records/"+core.NewID().String(), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestHandleStatistics(t *testing.T) {
	t.Run("empty cohort", func(t *testing.T) {
		s := newTestServer(t, &memoryRepository{})
		w := doJSON(t, s, http.MethodGet, "/api/statistics", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("seeded cohort", func(t *testing.T) {
		repo := &memoryRepository{
			observations: testkit.GenerateObservations(testkit.CohortConfig{Rows: 40, Seed: 3, ScoreNoise: 0.05}),
		}
		s := newTestServer(t, repo)

		w := doJSON(t, s, http.MethodGet, "/api/statistics", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var payload struct {
			Descriptives []json.RawMessage `json:"descriptives"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(payload.Descriptives) != 8 {
			t.Errorf("got %d descriptive summaries, want 8", len(payload.Descriptives))
		}
	})
}

func TestHandleReport(t *testing.T) {
	repo := &memoryRepository{
		observations: testkit.GenerateObservations(testkit.CohortConfig{Rows: 150, Seed: 3, ScoreNoise: 0.1}),
	}
	s := newTestServer(t, repo)

	w := doJSON(t, s, http.MethodGet, "/api/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var report struct {
		SampleSize int               `json:"sample_size"`
		Linear     json.RawMessage   `json:"linear_fit"`
		Logistic   json.RawMessage   `json:"logistic_fit"`
		Threshold  json.RawMessage   `json:"threshold"`
		Anova      []json.RawMessage `json:"anova"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.SampleSize != 150 {
		t.Errorf("sample size = %d, want 150", report.SampleSize)
	}
	if len(report.Linear) == 0 || len(report.Logistic) == 0 || len(report.Threshold) == 0 {
		t.Error("report is missing model sections")
	}
	if len(report.Anova) != 6 {
		t.Errorf("got %d anova entries, want 6", len(report.Anova))
	}
}
