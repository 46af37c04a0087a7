package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"workshop-manager/internal/adapters/web"
	"workshop-manager/internal/app"
	"workshop-manager/internal/core"
	"workshop-manager/internal/persistence"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := core.NewStore(context.Background(), persistence.NewMemory(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	svc := app.NewAppService(store, nil)
	srv := httptest.NewServer(web.NewHandler(svc, zap.NewNop(), nil, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestMaterialLifecycle(t *testing.T) {
	srv := setupServer(t)

	resp := postJSON(t, srv.URL+"/api/materials", `{
		"name": "Teak Wood", "unit": "cubic ft",
		"quantity": "50", "price_per_unit": "1200"
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var m core.Material
	decodeInto(t, resp, &m)
	if !m.TotalValue.Equal(decimalFromString(t, "60000")) {
		t.Errorf("TotalValue = %s, want 60000", m.TotalValue)
	}

	patch := bytes.NewBufferString(`{"quantity": "20"}`)
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/materials/"+m.ID, patch)
	if err != nil {
		t.Fatalf("build PATCH request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	patchResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH failed: %v", err)
	}
	var updated core.Material
	decodeInto(t, patchResp, &updated)
	if !updated.TotalValue.Equal(decimalFromString(t, "24000")) {
		t.Errorf("TotalValue after patch = %s, want 24000", updated.TotalValue)
	}
}

func TestValidationMapsTo400(t *testing.T) {
	srv := setupServer(t)

	resp := postJSON(t, srv.URL+"/api/materials", `{"name": "", "quantity": "1", "price_per_unit": "1"}`)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMissingEntityMapsTo404(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/workers/nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestProductionReportsShortages(t *testing.T) {
	srv := setupServer(t)

	var wood core.Material
	decodeInto(t, postJSON(t, srv.URL+"/api/materials", `{
		"name": "Pine", "unit": "cubic ft", "quantity": "4", "price_per_unit": "500"
	}`), &wood)

	var item core.FurnitureItem
	decodeInto(t, postJSON(t, srv.URL+"/api/furniture", `{
		"name": "Bench", "category": "bench", "expected_price": "3000",
		"materials": [{"material_id": "`+wood.ID+`", "quantity_per_unit": "2"}],
		"main_worker_rate": "400", "co_worker_rate": "0"
	}`), &item)

	resp := postJSON(t, srv.URL+"/api/productions", `{
		"furniture_id": "`+item.ID+`", "quantity": "3", "workers": [],
		"status": "", "production_date": "2026-08-25", "notes": ""
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		Order     core.ProductionOrder `json:"order"`
		Shortages []core.StockShortage `json:"shortages"`
	}
	decodeInto(t, resp, &created)
	if len(created.Shortages) != 1 {
		t.Fatalf("expected 1 shortage, got %d", len(created.Shortages))
	}
	if created.Shortages[0].MaterialName != "Pine" {
		t.Errorf("shortage names %q, want Pine", created.Shortages[0].MaterialName)
	}
}
