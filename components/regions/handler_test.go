package regions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type handlerResponse struct {
	Country string   `json:"country"`
	Label   string   `json:"label"`
	Data    []Option `json:"data"`
}

func testDataset() *Dataset {
	return NewDataset([]CountryRegionEntry{
		{CountryName: "Canada", Regions: []Region{{Name: "Alberta"}, {Name: "Ontario"}}},
		{CountryName: "Iceland"},
		{CountryName: "United States", Regions: []Region{{Name: "Texas"}}},
	})
}

func TestCountriesHandler_ListsAllCountriesByDefault(t *testing.T) {
	h := CountriesHandler(WithDataset(testDataset()))

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := strings.TrimSpace(res.Header.Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []Option{
		{Value: "Canada", Label: "Canada"},
		{Value: "Iceland", Label: "Iceland"},
		{Value: "United States", Label: "United States"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("countries mismatch (-want +got):\n%s", diff)
	}
}

func TestCountriesHandler_SearchAndLimit(t *testing.T) {
	h := CountriesHandler(WithDataset(testDataset()), WithMaxLimit(1))

	req := httptest.NewRequest(http.MethodGet, "/api/countries?q=united&limit=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "United States" {
		t.Fatalf("unexpected payload: %#v", payload.Data)
	}
}

func TestRegionsHandler_ReturnsRegionsInOrder(t *testing.T) {
	h := RegionsHandler(WithDataset(testDataset()))

	req := httptest.NewRequest(http.MethodGet, "/api/regions?country=canada", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := handlerResponse{
		Country: "Canada",
		Label:   "Province",
		Data: []Option{
			{Value: "Alberta", Label: "Alberta"},
			{Value: "Ontario", Label: "Ontario"},
		},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestRegionsHandler_CountryWithoutRegionsReturnsEmptyArray(t *testing.T) {
	h := RegionsHandler(WithDataset(testDataset()))

	req := httptest.NewRequest(http.MethodGet, "/api/regions?country=Iceland", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestRegionsHandler_MissingAndUnknownCountry(t *testing.T) {
	h := RegionsHandler(WithDataset(testDataset()))

	cases := map[string]int{
		"/api/regions":                 http.StatusBadRequest,
		"/api/regions?country=Atlantis": http.StatusNotFound,
	}
	for target, want := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected status %d, got %d", target, want, rec.Code)
		}
	}
}

func TestHandlers_GuardRejects(t *testing.T) {
	h := RegionsHandler(
		WithDataset(testDataset()),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/regions?country=Canada", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	h := CountriesHandler(WithDataset(testDataset()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/countries", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}
