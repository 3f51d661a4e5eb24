//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type listResp struct {
	Items []struct {
		ID       int    `json:"id"`
		Text     string `json:"text"`
		Selected bool   `json:"selected"`
	} `json:"items"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type stateResp struct {
	Selected       []int `json:"selected"`
	SelectedCount  int   `json:"selectedCount"`
	HasCustomOrder bool  `json:"hasCustomOrder"`
}

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var page listResp
	doJSON(t, http.MethodGet, baseURL+"/api/items?page=1&limit=20", nil, &page, 200)
	if len(page.Items) != 20 || page.Items[0].ID != 1 || !page.HasMore {
		t.Fatalf("unexpected first page: %+v", page)
	}

	// Pick ids far enough apart that a shared deployment is unlikely to collide.
	a := 100_000 + rand.Intn(400_000)
	b := a + 1 + rand.Intn(1000)
	order := []int{b, a}

	doJSON(t, http.MethodPost, baseURL+"/api/update-order", map[string]any{"order": order}, nil, 200)
	doJSON(t, http.MethodGet, baseURL+"/api/items?page=1&limit=2", nil, &page, 200)
	if page.Items[0].ID != b || page.Items[1].ID != a {
		t.Fatalf("custom order not applied: %+v", page.Items)
	}

	doJSON(t, http.MethodPost, baseURL+"/api/update-selection", map[string]any{"id": a, "selected": true}, nil, 200)

	var st stateResp
	doJSON(t, http.MethodGet, baseURL+"/api/state", nil, &st, 200)
	if !st.HasCustomOrder || !contains(st.Selected, a) {
		t.Fatalf("unexpected state: %+v", st)
	}

	doJSON(t, http.MethodGet, baseURL+fmt.Sprintf("/api/items?search=%d", a), nil, &page, 200)
	if len(page.Items) == 0 || page.Items[0].ID != a || !page.Items[0].Selected {
		t.Fatalf("search for %d: %+v", a, page.Items)
	}

	doJSON(t, http.MethodPost, baseURL+"/api/update-order", map[string]any{"order": []int{a, a}}, nil, 400)
	doJSON(t, http.MethodGet, baseURL+"/api/nope", nil, nil, 404)

	if os.Getenv("E2E_RESTART_CATALOG") == "1" {
		restartCatalogContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")

		// State is in memory only; a restart starts from scratch.
		doJSON(t, http.MethodGet, baseURL+"/api/state", nil, &st, 200)
		if st.HasCustomOrder || st.SelectedCount != 0 {
			t.Fatalf("state survived restart: %+v", st)
		}
	}

	doJSON(t, http.MethodDelete, baseURL+"/api/order", nil, nil, 200)
	doJSON(t, http.MethodPost, baseURL+"/api/update-selection", map[string]any{"id": a, "selected": false}, nil, 200)
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
