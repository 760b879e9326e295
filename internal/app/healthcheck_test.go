package app

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestGetHealth(t *testing.T) {
	app, _ := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/health", nil)
	app.GetHealth(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthcheckResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Status != "UP" {
		t.Errorf("status = %q, want UP", resp.Status)
	}

	if resp.SystemInfo.Environment != "test" {
		t.Errorf("environment = %q, want test", resp.SystemInfo.Environment)
	}
}
