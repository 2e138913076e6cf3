package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
)

func newAvailabilityRouter(t *testing.T) (*gin.Engine, blocks.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := blocks.NewFileRepo(filepath.Join(t.TempDir(), "blocked.json"))
	engine := &schedule.DefaultAvailabilityEngine{
		Hours:  schedule.DefaultBusinessHours(),
		Blocks: repo,
	}
	h := NewAvailabilityHandler(engine, repo)

	r := gin.New()
	r.GET("/api/availability", h.GetAvailability)
	r.GET("/api/availability/blocked", h.GetBlocked)
	r.POST("/api/availability/block-date", h.BlockDate)
	r.POST("/api/availability/unblock-date", h.UnblockDate)
	r.POST("/api/availability/block-slot", h.BlockSlot)
	r.POST("/api/availability/unblock-slot", h.UnblockSlot)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailability(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/availability?date=2024-06-08", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Date    string `json:"date"`
		Slots   []struct {
			Hour      int  `json:"hour"`
			Available bool `json:"available"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Success || resp.Date != "2024-06-08" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if len(resp.Slots) != 9 {
		t.Fatalf("expected 9 Saturday slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0].Hour != 8 || resp.Slots[8].Hour != 16 {
		t.Errorf("expected hours 8..16, got %d..%d", resp.Slots[0].Hour, resp.Slots[8].Hour)
	}
}

func TestGetAvailabilityBadDate(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	for _, path := range []string{"/api/availability", "/api/availability?date=june"} {
		w := doJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestGetAvailabilityClosedDay(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/availability?date=2024-06-09", "")
	if w.Code != http.StatusOK {
		t.Fatalf("closed day must still be 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"slots":[]`) {
		t.Errorf("expected empty slot list: %s", w.Body.String())
	}
}

func TestBlockUnblockDate(t *testing.T) {
	r, repo := newAvailabilityRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/availability/block-date", `{"date":"2024-06-10"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("block-date: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	state, _ := repo.State(context.Background())
	if !state.DateBlocked("2024-06-10") {
		t.Fatal("date not blocked")
	}

	w = doJSON(t, r, http.MethodGet, "/api/availability?date=2024-06-10", "")
	if !strings.Contains(w.Body.String(), `"slots":[]`) {
		t.Errorf("blocked date should list no slots: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/availability/unblock-date", `{"date":"2024-06-10"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unblock-date: expected 200, got %d", w.Code)
	}
	state, _ = repo.State(context.Background())
	if state.DateBlocked("2024-06-10") {
		t.Error("date still blocked")
	}
}

func TestBlockSlotValidation(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	cases := []string{
		`{}`,
		`{"date":"2024-06-10"}`,
		`{"date":"nope","hour":9}`,
		`not json`,
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/availability/block-slot", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestBlockSlotZeroHour(t *testing.T) {
	r, repo := newAvailabilityRouter(t)

	// Hour 0 is a legitimate value and must survive required-field binding.
	w := doJSON(t, r, http.MethodPost, "/api/availability/block-slot", `{"date":"2024-06-10","hour":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for hour 0, got %d: %s", w.Code, w.Body.String())
	}
	state, _ := repo.State(context.Background())
	if !state.HourBlocked("2024-06-10", 0) {
		t.Error("hour 0 not blocked")
	}
}

func TestGetBlocked(t *testing.T) {
	r, repo := newAvailabilityRouter(t)
	ctx := context.Background()

	if err := repo.BlockDate(ctx, "2024-06-10"); err != nil {
		t.Fatal(err)
	}
	if err := repo.BlockSlot(ctx, "2024-06-11", 14); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/availability/blocked", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Success bool             `json:"success"`
		Dates   []string         `json:"dates"`
		Slots   map[string][]int `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Dates) != 1 || resp.Dates[0] != "2024-06-10" {
		t.Errorf("unexpected dates: %v", resp.Dates)
	}
	if got := resp.Slots["2024-06-11"]; len(got) != 1 || got[0] != 14 {
		t.Errorf("unexpected slots: %v", resp.Slots)
	}
}
