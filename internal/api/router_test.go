package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"land-valuation/internal/api/models"
	"land-valuation/internal/config"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	preset := "project:\n  name: Corner lot\n  lot_size_area: 20000\n  vacancy_rate: 0\n"
	if err := os.WriteFile(filepath.Join(dir, "corner.yaml"), []byte(preset), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("project:\n  exit_cap_rate: 0\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return NewRouter(&config.Env{
		Mode:           "test",
		ProjectDir:     dir,
		AllowedOrigins: []string{"http://app.test"},
		SolveCacheTTL:  time.Minute,
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestEvaluate(t *testing.T) {
	r := setupRouter(t)

	t.Run("defaults at zero land cost", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{
			"land_cost":        0,
			"include_schedule": true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp models.EvaluateResponse
		decode(t, w, &resp)
		if resp.ID == "" {
			t.Error("Expected a response id")
		}
		pf := resp.ProForma
		if pf.UnitCount != 30 || pf.TotalConstructionCost != 11_250_000 {
			t.Errorf("Unexpected pro forma: units=%d construction=%f", pf.UnitCount, pf.TotalConstructionCost)
		}
		if math.Abs(pf.NOI-622_440) > 1e-6 {
			t.Errorf("Expected NOI 622,440, got %f", pf.NOI)
		}
		if pf.IRR == nil || math.Abs(*pf.IRR-0.19616838205704912) > 1e-9 {
			t.Errorf("Expected IRR ~0.19617, got %v", pf.IRR)
		}
		if len(pf.CashFlows) != 11 || len(pf.Schedule) != 11 {
			t.Errorf("Expected 11 cash flows and schedule rows, got %d / %d", len(pf.CashFlows), len(pf.Schedule))
		}
	})

	t.Run("missing land cost", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		var resp models.ErrorResponse
		decode(t, w, &resp)
		if resp.Error.Code != "INVALID_REQUEST" {
			t.Errorf("Expected INVALID_REQUEST, got %s", resp.Error.Code)
		}
	})

	t.Run("invalid assumption reports field", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{
			"land_cost": 0,
			"project":   map[string]any{"assumptions": map[string]float64{"equity_ratio": 0}},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		var resp models.ErrorResponse
		decode(t, w, &resp)
		if resp.Error.Code != "INVALID_ASSUMPTIONS" || resp.Error.Details["field"] != "equity_ratio" {
			t.Errorf("Expected INVALID_ASSUMPTIONS on equity_ratio, got %+v", resp.Error)
		}
	})

	t.Run("hold period above cap", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{
			"land_cost": 0,
			"project":   map[string]any{"assumptions": map[string]float64{"hold_period_years": 2e9}},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		var resp models.ErrorResponse
		decode(t, w, &resp)
		if resp.Error.Code != "INVALID_ASSUMPTIONS" || resp.Error.Details["field"] != "hold_period_years" {
			t.Errorf("Expected INVALID_ASSUMPTIONS on hold_period_years, got %+v", resp.Error)
		}
	})

	t.Run("negative land cost", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{"land_cost": -1})
		var resp models.ErrorResponse
		decode(t, w, &resp)
		if w.Code != http.StatusBadRequest || resp.Error.Details["field"] != "land_cost" {
			t.Errorf("Expected 400 on land_cost, got %d %+v", w.Code, resp.Error)
		}
	})

	t.Run("no units gives null irr", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", map[string]any{
			"land_cost": 0,
			"project":   map[string]any{"assumptions": map[string]float64{"lot_size_area": 100}},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp models.EvaluateResponse
		decode(t, w, &resp)
		if resp.ProForma.IRR != nil {
			t.Errorf("Expected null IRR, got %f", *resp.ProForma.IRR)
		}
	})
}

func TestSolve(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/solve", map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SolveResponse
	decode(t, w, &resp)
	if !resp.Converged || resp.Warning != "" {
		t.Errorf("Expected converged solve without warning, got converged=%v warning=%q", resp.Converged, resp.Warning)
	}
	if math.Abs(resp.LandCost-1_398_874.33) > 1 {
		t.Errorf("Expected land cost ~1,398,874.33, got %f", resp.LandCost)
	}
	if resp.ProForma.LandCost != resp.LandCost {
		t.Errorf("Expected pro forma at the solved land cost")
	}
	if resp.Cached {
		t.Error("Expected first solve to miss the cache")
	}

	w = do(t, r, http.MethodPost, "/api/v1/solve", map[string]any{})
	var again models.SolveResponse
	decode(t, w, &again)
	if !again.Cached || again.LandCost != resp.LandCost || again.ID == resp.ID {
		t.Errorf("Expected cached repeat with a new id, got cached=%v land=%f", again.Cached, again.LandCost)
	}

	w = do(t, r, http.MethodPost, "/api/v1/solve", map[string]any{
		"project": map[string]any{"assumptions": map[string]float64{"target_irr": 0.25}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for unconverged solve, got %d", w.Code)
	}
	resp = models.SolveResponse{}
	decode(t, w, &resp)
	if resp.Converged || !resp.Boundary || resp.Warning == "" {
		t.Errorf("Expected boundary result with warning, got %+v", resp)
	}
}

func TestSolveWithPreset(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/solve", map[string]any{
		"project": map[string]any{"project_id": "corner"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SolveResponse
	decode(t, w, &resp)
	if resp.Project != "Corner lot" {
		t.Errorf("Expected project name from preset, got %q", resp.Project)
	}
	if resp.Assumptions["lot_size_area"] != 20000 || resp.Assumptions["vacancy_rate"] != 0 {
		t.Errorf("Expected preset assumptions, got %v", resp.Assumptions)
	}

	for _, id := range []string{"missing", "../corner"} {
		w = do(t, r, http.MethodPost, "/api/v1/solve", map[string]any{
			"project": map[string]any{"project_id": id},
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", id, w.Code)
		}
	}
}

func TestResidual(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/residual", map[string]any{
		"project":              map[string]any{"assumptions": map[string]float64{"monthly_rent_per_unit": 3500}},
		"target_profit_margin": 0.15,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.ResidualResponse
	decode(t, w, &resp)
	if math.Abs(resp.ResidualLandValue-1_976_850) > 1e-3 || !resp.Feasible {
		t.Errorf("Expected feasible residual 1,976,850, got %f (feasible=%v)", resp.ResidualLandValue, resp.Feasible)
	}

	w = do(t, r, http.MethodPost, "/api/v1/residual", map[string]any{"target_profit_margin": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for margin 1, got %d", w.Code)
	}
}

func TestScenarios(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/scenarios", map[string]any{
		"scenarios": []map[string]any{
			{"name": "low", "probability": 0.5, "overrides": map[string]float64{"target_irr": 0.15}},
			{"name": "high", "probability": 0.5, "overrides": map[string]float64{"target_irr": 0.10}},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.ScenariosResponse
	decode(t, w, &resp)
	if len(resp.Scenarios) != 2 || resp.Scenarios[0].Name != "low" {
		t.Fatalf("Unexpected scenarios: %+v", resp.Scenarios)
	}
	if !resp.AllConverged {
		t.Error("Expected all scenarios to converge")
	}
	if len(resp.Ranking) != 2 || resp.Ranking[0] != "high" {
		t.Errorf("Expected high ranked first, got %v", resp.Ranking)
	}
	if math.Abs(resp.WeightedLandCost-8_487_341.2) > 2 {
		t.Errorf("Expected weighted land cost ~8,487,341, got %f", resp.WeightedLandCost)
	}

	w = do(t, r, http.MethodPost, "/api/v1/scenarios", map[string]any{
		"scenarios": []map[string]any{{"name": "only", "probability": 0.4}},
	})
	var errResp models.ErrorResponse
	decode(t, w, &errResp)
	if w.Code != http.StatusBadRequest || errResp.Error.Code != "INVALID_SCENARIOS" {
		t.Errorf("Expected 400 INVALID_SCENARIOS, got %d %s", w.Code, errResp.Error.Code)
	}
}

func TestListProjects(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodGet, "/api/v1/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Projects []models.ProjectInfo `json:"projects"`
	}
	decode(t, w, &resp)
	// broken.yaml fails validation and is skipped.
	if len(resp.Projects) != 1 || resp.Projects[0].ID != "corner" {
		t.Fatalf("Expected only the corner preset, got %+v", resp.Projects)
	}
	if resp.Projects[0].Name != "Corner lot" {
		t.Errorf("Expected name Corner lot, got %q", resp.Projects[0].Name)
	}
}

func TestListParameters(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodGet, "/api/v1/parameters", nil)
	var resp struct {
		Parameters []models.ParameterInfo `json:"parameters"`
	}
	decode(t, w, &resp)
	if len(resp.Parameters) != 14 {
		t.Fatalf("Expected 14 parameters, got %d", len(resp.Parameters))
	}
	if resp.Parameters[len(resp.Parameters)-1].Name != "target_irr" || resp.Parameters[len(resp.Parameters)-1].Default != 0.18 {
		t.Errorf("Unexpected last parameter: %+v", resp.Parameters[len(resp.Parameters)-1])
	}
}

func TestCORS(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/solve", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for unknown origin, got %q", got)
	}
}

func TestMalformedJSON(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodPost, "/api/v1/solve", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
