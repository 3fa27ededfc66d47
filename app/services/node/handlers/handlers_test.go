package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/utxolabs/blockchain/app/services/node/handlers"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_DebugMux(t *testing.T) {
	t.Log("Given the need to serve the debug check endpoints.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen querying liveness and readiness.", testID)
		{
			mux := handlers.DebugMux("test-build", zap.NewNop().Sugar())

			r := httptest.NewRequest(http.MethodGet, "/debug/liveness", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould respond to liveness with 200, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould respond to liveness with 200.", success, testID)

			var live struct {
				Status string `json:"status"`
				Build  string `json:"build"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &live); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould respond to liveness with JSON: %v", failed, testID, err)
			}
			if live.Status != "up" || live.Build != "test-build" {
				t.Errorf("\t%s\tTest %d:\tShould report status and build, got %q %q.", failed, testID, live.Status, live.Build)
			} else {
				t.Logf("\t%s\tTest %d:\tShould report status and build.", success, testID)
			}

			r = httptest.NewRequest(http.MethodGet, "/debug/readiness", nil)
			w = httptest.NewRecorder()
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould respond to readiness with 200, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould respond to readiness with 200.", success, testID)

			var ready struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &ready); err != nil || ready.Status != "ok" {
				t.Errorf("\t%s\tTest %d:\tShould report readiness ok: %v", failed, testID, err)
			} else {
				t.Logf("\t%s\tTest %d:\tShould report readiness ok.", success, testID)
			}
		}
	}
}
