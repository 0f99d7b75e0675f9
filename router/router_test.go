package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"econ-pulse/database/dbtest"
	"econ-pulse/handlers"
	"econ-pulse/metrics"
	"econ-pulse/models"
	"econ-pulse/notify"
	"econ-pulse/seed"
	"econ-pulse/service"
	"econ-pulse/web"
)

func setupRouter(t *testing.T, rps float64, burst int) (*gin.Engine, *service.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	hub := notify.NewHub(16)
	m := metrics.New()
	svc := service.New(dbtest.New(t), service.Options{Publisher: hub, ScoreObserver: m})
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	seeder := seed.New(svc, log, seed.WithRand(rand.New(rand.NewPCG(1, 2))))

	r := NewRouter(&Config{
		CountryHandler:   handlers.NewCountryHandler(svc.Countries, log),
		IndicatorHandler: handlers.NewIndicatorHandler(svc.Indicators, log),
		PulseHandler:     handlers.NewPulseHandler(svc.Pulse, log),
		EventHandler:     handlers.NewEventHandler(svc.Events, svc.EventImpacts, log),
		SeedHandler:      handlers.NewSeedHandler(seeder, log),
		StreamHandler:    handlers.NewStreamHandler(hub),
		PageHandler:      handlers.NewPageHandler(svc, log),
		Templates:        tmpl,
		Metrics:          m,
		Logger:           log,
		RateLimitRPS:     rps,
		RateLimitBurst:   burst,
	})
	return r, svc
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func createCountry(t *testing.T, r *gin.Engine, name, iso, region string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/countries", map[string]any{"name": name, "iso_code": iso, "region": region})
	if w.Code != http.StatusCreated {
		t.Fatalf("create country: %d %s", w.Code, w.Body.String())
	}
	return decode[map[string]string](t, w)["id"]
}

func TestHealthz(t *testing.T) {
	r, _ := setupRouter(t, 0, 0)

	w := do(r, http.MethodGet, "/healthz", nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestCountryRoutes(t *testing.T) {
	r, _ := setupRouter(t, 0, 0)

	deu := createCountry(t, r, "Germany", "DEU", "Europe")
	createCountry(t, r, "Japan", "JPN", "Asia")

	w := do(r, http.MethodGet, "/api/countries/"+deu, nil)
	if w.Code != http.StatusOK || decode[models.Country](t, w).ISOCode != "DEU" {
		t.Errorf("Expected Germany, got %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/countries/iso/JPN", nil)
	if w.Code != http.StatusOK || decode[models.Country](t, w).Name != "Japan" {
		t.Errorf("Expected Japan by ISO code, got %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/countries?region=Europe", nil)
	if got := decode[[]models.Country](t, w); len(got) != 1 || got[0].Name != "Germany" {
		t.Errorf("Expected only Germany in Europe, got %+v", got)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown id", http.MethodGet, "/api/countries/" + uuid.NewString(), nil, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/countries/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown iso", http.MethodGet, "/api/countries/iso/ZZZ", nil, http.StatusNotFound},
		{"missing name", http.MethodPost, "/api/countries", map[string]any{"iso_code": "FRA", "region": "Europe"}, http.StatusBadRequest},
		{"short iso", http.MethodPost, "/api/countries", map[string]any{"name": "France", "iso_code": "FR", "region": "Europe"}, http.StatusBadRequest},
		{"bad latitude", http.MethodPost, "/api/countries", map[string]any{"name": "France", "iso_code": "FRA", "region": "Europe", "latitude": 123.0}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("Expected error body, got %s", w.Body.String())
			}
		})
	}
}

func TestIndicatorAndPulseRoutes(t *testing.T) {
	r, _ := setupRouter(t, 0, 0)
	id := createCountry(t, r, "Testland", "TST", "Nowhere")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	w := do(r, http.MethodGet, "/api/countries/"+id+"/pulse/latest", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("Expected null latest score, got %d %s", w.Code, w.Body.String())
	}

	readings := map[string]float64{
		models.IndicatorGDPGrowth:    5,
		models.IndicatorInflation:    0,
		models.IndicatorUnemployment: 0,
		models.IndicatorMarketIndex:  15000,
		models.IndicatorCO2Emissions: 0,
	}
	for name, value := range readings {
		w := do(r, http.MethodPost, "/api/indicators", map[string]any{
			"country_id": id, "name": name, "value": value, "source": "test", "date": date,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", name, w.Code, w.Body.String())
		}
	}

	w = do(r, http.MethodPost, "/api/indicators", map[string]any{
		"country_id": id, "name": "inflation", "source": "test", "date": date,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing value, got %d", w.Code)
	}
	w = do(r, http.MethodPost, "/api/indicators", map[string]any{
		"country_id": uuid.NewString(), "name": "inflation", "value": 1, "source": "test", "date": date,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown country, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/countries/"+id+"/indicators/GDP_growth/latest", nil)
	if got := decode[models.Indicator](t, w); got.Value != 5 {
		t.Errorf("Expected latest GDP 5, got %v", got.Value)
	}
	w = do(r, http.MethodGet, "/api/countries/"+id+"/indicators/interest_rate/latest", nil)
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("Expected null for missing indicator, got %s", w.Body.String())
	}
	w = do(r, http.MethodGet, "/api/countries/"+id+"/indicators/GDP_growth/history?limit=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad limit, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/countries/"+id+"/indicators", nil)
	if got := decode[[]models.Indicator](t, w); len(got) != 5 {
		t.Errorf("Expected 5 indicators, got %d", len(got))
	}

	w = do(r, http.MethodPost, "/api/countries/"+id+"/pulse/recompute", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("recompute: %d %s", w.Code, w.Body.String())
	}
	res := decode[struct {
		Score   models.PulseScore `json:"score"`
		Missing []string          `json:"missing"`
	}](t, w)
	if res.Score.Score != 100 || len(res.Missing) != 0 {
		t.Errorf("Expected score 100 with nothing missing, got %+v", res)
	}

	w = do(r, http.MethodPost, "/api/countries/"+uuid.NewString()+"/pulse/recompute", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 recomputing unknown country, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/pulse", map[string]any{"country_id": id, "score": 101, "date": date})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for score above 100, got %d", w.Code)
	}
	w = do(r, http.MethodPost, "/api/pulse", map[string]any{"country_id": id, "score": 40, "date": date})
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/countries/"+id+"/pulse/history", nil)
	if got := decode[[]models.PulseScore](t, w); len(got) != 2 {
		t.Errorf("Expected 2 scores in history, got %d", len(got))
	}

	w = do(r, http.MethodGet, "/api/pulse/latest", nil)
	all := decode[[]models.CountryPulse](t, w)
	if len(all) != 1 || all[0].Country.ISOCode != "TST" || all[0].Score.Score != 100 {
		t.Errorf("Unexpected all-latest: %s", w.Body.String())
	}
}

func TestEventRoutes(t *testing.T) {
	r, _ := setupRouter(t, 0, 0)
	countryID := createCountry(t, r, "Japan", "JPN", "Asia")

	create := func(title, country, eventType string, date time.Time) string {
		w := do(r, http.MethodPost, "/api/events", map[string]any{
			"title": title, "date": date, "country": country, "type": eventType,
			"summary": "s", "related_indicators": []string{"interest_rate"},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create event: %d %s", w.Code, w.Body.String())
		}
		return decode[map[string]string](t, w)["id"]
	}
	boj := create("BOJ exit", "Japan", "rate_change", time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC))
	create("Lockdowns", "Global", "pandemic", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))
	create("Stimulus", "Japan", "fiscal_stimulus", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))

	w := do(r, http.MethodGet, "/api/events", nil)
	events := decode[[]models.Event](t, w)
	if len(events) != 3 || events[0].Title != "BOJ exit" {
		t.Errorf("Expected newest first, got %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/events?limit=1", nil)
	if got := decode[[]models.Event](t, w); len(got) != 1 {
		t.Errorf("Expected 1 event, got %d", len(got))
	}
	w = do(r, http.MethodGet, "/api/events?type=pandemic", nil)
	if got := decode[[]models.Event](t, w); len(got) != 1 || got[0].Title != "Lockdowns" {
		t.Errorf("Expected the pandemic, got %s", w.Body.String())
	}
	w = do(r, http.MethodGet, "/api/events?country=Japan&type=rate_change", nil)
	if got := decode[[]models.Event](t, w); len(got) != 1 || got[0].Title != "BOJ exit" {
		t.Errorf("Expected only the Japanese rate change, got %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/events/"+boj, nil)
	if got := decode[models.Event](t, w); len(got.RelatedIndicators) != 1 {
		t.Errorf("Expected related indicators to round-trip, got %s", w.Body.String())
	}
	if w := do(r, http.MethodGet, "/api/events/"+uuid.NewString(), nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown event, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/events/"+boj+"/impacts", nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty impact list, got %s", w.Body.String())
	}

	impact := map[string]any{
		"event_id": boj, "country_id": countryID, "indicator_name": "interest_rate",
		"pre_value": -0.1, "post_value": 0.1, "correlation": 0.8, "delta_percentage": 200,
		"delta_summary": "first hike in 17 years",
	}
	if w := do(r, http.MethodPost, "/api/event-impacts", impact); w.Code != http.StatusCreated {
		t.Fatalf("create impact: %d %s", w.Code, w.Body.String())
	}
	impact["event_id"] = uuid.NewString()
	if w := do(r, http.MethodPost, "/api/event-impacts", impact); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown event, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/events/"+boj+"/impacts", nil)
	enriched := decode[[]models.EnrichedEventImpact](t, w)
	if len(enriched) != 1 || enriched[0].Country == nil || enriched[0].Country.Name != "Japan" {
		t.Errorf("Expected impact joined with Japan, got %s", w.Body.String())
	}

	event := map[string]any{"title": "Quiet", "date": time.Now().UTC(), "country": "Japan", "type": "economic", "summary": ""}
	if w := do(r, http.MethodPost, "/api/events", event); w.Code != http.StatusCreated {
		t.Errorf("Expected empty summary to be accepted, got %d %s", w.Code, w.Body.String())
	}
	delete(event, "summary")
	if w := do(r, http.MethodPost, "/api/events", event); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for absent summary, got %d", w.Code)
	}
}

func TestEventListDefaultLimit(t *testing.T) {
	r, svc := setupRouter(t, 0, 0)

	for i := 0; i < 55; i++ {
		_, err := svc.Events.Create(t.Context(), &models.Event{
			Title: fmt.Sprintf("Hike %d", i), Date: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Country: "Japan", Type: "rate_change", Summary: "s",
		})
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	for _, path := range []string{"/api/events", "/api/events?type=rate_change", "/api/events?country=Japan"} {
		w := do(r, http.MethodGet, path, nil)
		if got := decode[[]models.Event](t, w); len(got) != 50 {
			t.Errorf("%s: expected 50 events, got %d", path, len(got))
		}
	}
	w := do(r, http.MethodGet, "/api/events?type=rate_change&limit=55", nil)
	if got := decode[[]models.Event](t, w); len(got) != 55 {
		t.Errorf("Expected an explicit limit to lift the default, got %d", len(got))
	}
}

func TestSeedAndPages(t *testing.T) {
	r, svc := setupRouter(t, 0, 0)

	w := do(r, http.MethodPost, "/api/seed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed: %d %s", w.Code, w.Body.String())
	}
	res := decode[seed.Result](t, w)
	if !res.Success || res.Message != "Database seeded successfully" {
		t.Errorf("Unexpected seed result: %+v", res)
	}

	w = do(r, http.MethodGet, "/dashboard?region=Asia", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Japan") || strings.Contains(body, "France") {
		t.Error("Expected only Asian countries on the filtered dashboard")
	}
	if !strings.Contains(body, "Recent events") || !strings.Contains(body, "Japan Ends Negative Interest Rates") {
		t.Error("Expected the recent events panel on the dashboard")
	}
	if !strings.Contains(body, "Active events") {
		t.Error("Expected the active events count on the dashboard")
	}

	w = do(r, http.MethodGet, "/events?type=pandemic", nil)
	if body := w.Body.String(); !strings.Contains(body, "COVID-19") || strings.Contains(body, "Negative Interest") {
		t.Error("Expected only the pandemic on the filtered events page")
	}

	japan, err := svc.Countries.GetByISOCode(t.Context(), "JPN")
	if err != nil || japan == nil {
		t.Fatalf("lookup Japan: %v", err)
	}

	pages := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/dashboard", http.StatusOK},
		{"/events", http.StatusOK},
		{"/countries/" + string(japan.ID), http.StatusOK},
		{"/countries/" + uuid.NewString(), http.StatusNotFound},
		{"/events/" + uuid.NewString(), http.StatusNotFound},
		{"/no/such/page", http.StatusNotFound},
	}
	for _, p := range pages {
		if w := do(r, http.MethodGet, p.path, nil); w.Code != p.want {
			t.Errorf("%s: expected %d, got %d", p.path, p.want, w.Code)
		}
	}

	for i := 1; i <= 14; i++ {
		_, err := svc.Pulse.Create(t.Context(), &models.PulseScore{
			CountryID: japan.ID, Score: 50, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
		})
		if err != nil {
			t.Fatalf("create score: %v", err)
		}
	}
	w = do(r, http.MethodGet, "/countries/"+string(japan.ID), nil)
	if bars := strings.Count(w.Body.String(), `class="bar"`); bars != 12 {
		t.Errorf("Expected a one-year chart of 12 points, got %d", bars)
	}

	events, err := svc.Events.List(t.Context(), 1)
	if err != nil || len(events) != 1 {
		t.Fatalf("list events: %v", err)
	}
	if w := do(r, http.MethodGet, "/events/"+string(events[0].ID), nil); w.Code != http.StatusOK {
		t.Errorf("Expected event page, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/metrics", nil)
	if !strings.Contains(w.Body.String(), "econ_pulse_pulse_score") {
		t.Error("Expected pulse score gauge after seeding")
	}
}

func TestRateLimit(t *testing.T) {
	r, _ := setupRouter(t, 0.001, 1)

	if w := do(r, http.MethodGet, "/api/countries", nil); w.Code != http.StatusOK {
		t.Errorf("Expected first request to pass, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/countries", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Errorf("Expected healthz outside the limit, got %d", w.Code)
	}
}
