package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestSpinEndpointDailyLimit(t *testing.T) {
	app, db := newAPIApp(t)
	bindSession(t, db, "sid-demo", "u-demo")

	resp, err := app.Test(jsonReq("POST", "/api/rewards/spin", "sid-demo", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("first spin: expected 200, got %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Reward struct {
			Type  string `json:"type"`
			Value int    `json:"value"`
		} `json:"reward"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	switch out.Reward.Type {
	case "points":
		if out.Reward.Value != 10 && out.Reward.Value != 20 && out.Reward.Value != 50 {
			t.Errorf("unexpected point value %d", out.Reward.Value)
		}
	case "none":
		if out.Reward.Value != 0 {
			t.Errorf("blank slot with value %d", out.Reward.Value)
		}
	default:
		t.Errorf("unexpected reward type %q", out.Reward.Type)
	}

	// Same day again.
	resp, err = app.Test(jsonReq("POST", "/api/rewards/spin", "sid-demo", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second spin: expected 400, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "daily spin") {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestBalanceEndpoint(t *testing.T) {
	app, db := newAPIApp(t)
	bindSession(t, db, "sid-demo", "u-demo")

	resp, err := app.Test(jsonReq("GET", "/api/rewards/", "sid-demo", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Points != 0 {
		t.Errorf("fresh user balance = %d, want 0", out.Points)
	}
}
