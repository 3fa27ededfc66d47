package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/utxolabs/blockchain/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Respond(t *testing.T) {
	t.Log("Given the need to respond to requests through the framework.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the handler runs inside the middleware chain.", testID)
		{
			app := web.NewApp(make(chan os.Signal, 1))

			handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				resp := struct {
					Status string `json:"status"`
				}{
					Status: "ok",
				}
				return web.Respond(ctx, w, resp, http.StatusCreated)
			}
			app.Handle(http.MethodGet, "v1", "/resp", handler)

			r := httptest.NewRequest(http.MethodGet, "/v1/resp", nil)
			w := httptest.NewRecorder()
			app.ServeHTTP(w, r)

			if w.Code != http.StatusCreated {
				t.Fatalf("\t%s\tTest %d:\tShould write the handler's status code, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould write the handler's status code.", success, testID)

			var body struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Status != "ok" {
				t.Errorf("\t%s\tTest %d:\tShould write the JSON body: %v", failed, testID, err)
			} else {
				t.Logf("\t%s\tTest %d:\tShould write the JSON body.", success, testID)
			}
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen the handler runs outside the middleware chain.", testID)
		{
			w := httptest.NewRecorder()

			// A bare context carries no request values, so the status
			// code has nowhere to go and the caller must hear about it.
			err := web.Respond(context.Background(), w, nil, http.StatusOK)
			if err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould return an error without request values.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould return an error without request values.", success, testID)
		}
	}
}
