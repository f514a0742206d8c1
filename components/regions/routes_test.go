package regions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	countries, regions := MountPaths("/signup")
	if countries != "/signup/api/countries" || regions != "/signup/api/regions" {
		t.Fatalf("unexpected mount paths: %q %q", countries, regions)
	}
	countries, _ = MountPaths("signup/", WithCountriesPath("geo/countries"))
	if countries != "/signup/geo/countries" {
		t.Fatalf("unexpected mount path: %q", countries)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	patterns, err := New(WithDataset(testDataset())).RegisterRoutes(mux, "/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"/api/countries", "/api/regions"}, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}

	for _, target := range []string{"/api/countries?q=can", "/api/regions?country=Canada"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
	}
}

func TestRegisterRoutes_RejectsSharedPath(t *testing.T) {
	_, err := RegisterRoutes(http.NewServeMux(), "", WithCountriesPath("/x"), WithRegionsPath("/x"))
	if err == nil {
		t.Fatalf("expected error for shared path")
	}
}
