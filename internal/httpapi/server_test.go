package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/pingstatus/internal/domain"
	"github.com/hamed0406/pingstatus/internal/prober"
)

// ---- test helpers ----

type fakeProbe struct {
	reports map[string]string
}

func (f *fakeProbe) Run(_ context.Context, host string) (string, error) {
	return f.reports[host], nil
}

func setupRouter(t *testing.T, keys []string) http.Handler {
	t.Helper()
	log := zap.NewNop()
	fp := &fakeProbe{reports: map[string]string{
		"google.com":  "Packets: Sent = 4, Received = 4, Lost = 0 (0% loss)",
		"punchng.com": "Packets: Sent = 4, Received = 0, Lost = 4 (100% loss)",
	}}
	p := prober.New(log, fp, nil, nil, 0)
	srv := NewServer(log, p, []domain.Target{"google.com", "punchng.com"})

	// very high rate limits to avoid flakiness in tests
	return srv.Router(keys, 10_000, 10_000)
}

func get(t *testing.T, url, key string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(setupRouter(t, []string{"key_test"}))
	defer ts.Close()

	resp, body := get(t, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}
}

func TestStatus_ReturnsLinesInOrder(t *testing.T) {
	ts := httptest.NewServer(setupRouter(t, []string{"key_test"}))
	defer ts.Close()

	resp, body := get(t, ts.URL+"/api/status", "key_test")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("want text/plain, got %q", ct)
	}
	want := "UP google.com The server is up and running\n" +
		"DOWN punchng.com The server is down, contact your Network Administrator\n"
	if body != want {
		t.Fatalf("body=%q want %q", body, want)
	}

	// a second pass is identical
	if _, again := get(t, ts.URL+"/api/status", "key_test"); again != body {
		t.Fatalf("second pass differs: %q", again)
	}
}

func TestStatus_RequiresKey(t *testing.T) {
	ts := httptest.NewServer(setupRouter(t, []string{"key_test"}))
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/api/status", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestStatus_CancelledRequestIsUnavailable(t *testing.T) {
	h := setupRouter(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "The server is") {
		t.Fatalf("no status lines expected, got %q", rec.Body.String())
	}
}
