package dashapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinDash/internal/service/report"
	xhttp "FinDash/pkg/http"

	"github.com/google/uuid"
)

const validBody = `{
  "status": {
    "last_signal_timestamp": "2024-01-01T12:00:00Z",
    "buying_bot_status": "UP",
    "analytics_status": "DOWN",
    "candle_update_active": false,
    "candle_age_seconds": 45
  },
  "signals": [
    {"symbol": "BTC", "action": "BUY", "score": 95, "timestamp": null, "tp": null, "sl": null},
    {"symbol": "ETH", "action": "NO_SIGNAL", "score": 0}
  ]
}`

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/dashboard-data" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("missing request id: %v", err)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing accept header")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/dashboard-data"
}

func TestFetchDecodesSnapshot(t *testing.T) {
	c := New(xhttp.NewClient(), serve(t, http.StatusOK, validBody))

	snap, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !snap.Status.BuyingBotUp() || snap.Status.AnalyticsUp() {
		t.Fatalf("unexpected status %+v", snap.Status)
	}
	if snap.Status.CandleAgeSeconds == nil || *snap.Status.CandleAgeSeconds != 45 {
		t.Fatalf("candle age = %v", snap.Status.CandleAgeSeconds)
	}
	if len(snap.Signals) != 2 || snap.Signals[0].Symbol != "BTC" || snap.Signals[1].Symbol != "ETH" {
		t.Fatalf("signals out of order: %+v", snap.Signals)
	}
}

func TestFetchNullableFields(t *testing.T) {
	body := `{"status":{"last_signal_timestamp":null,"buying_bot_status":"UP","analytics_status":"UP","candle_update_active":true,"candle_age_seconds":null},"signals":[]}`
	snap, err := New(xhttp.NewClient(), serve(t, http.StatusOK, body)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Status.LastSignalTimestamp != nil || snap.Status.CandleAgeSeconds != nil {
		t.Fatalf("expected nil optionals, got %+v", snap.Status)
	}
	if len(snap.Signals) != 0 {
		t.Fatalf("expected no signals")
	}
}

func TestFetchKeepsClockSkewedAge(t *testing.T) {
	body := `{"status":{"last_signal_timestamp":null,"buying_bot_status":"UP","analytics_status":"UP","candle_update_active":true,"candle_age_seconds":-0.4},"signals":[]}`
	snap, err := New(xhttp.NewClient(), serve(t, http.StatusOK, body)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := report.FormatAge(snap.Status.CandleAgeSeconds); got != "0s ago" {
		t.Fatalf("FormatAge = %q, want %q", got, "0s ago")
	}
}

func TestFetchFailuresCollapseToOneKind(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		op     string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "request"},
		{"not found", http.StatusNotFound, "", "request"},
		{"malformed json", http.StatusOK, `{"status":`, "decode"},
		{"wrong type", http.StatusOK, `{"status":{"candle_update_active":"yes"},"signals":[]}`, "decode"},
		{"missing status", http.StatusOK, `{"signals":[]}`, "validate"},
		{"blank symbol", http.StatusOK, `{"status":{},"signals":[{"symbol":"","action":"BUY","score":1}]}`, "validate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(xhttp.NewClient(), serve(t, tc.status, tc.body)).Fetch(context.Background())
			if !errors.Is(err, ErrFetchFailure) {
				t.Fatalf("expected fetch failure, got %v", err)
			}
			var fe *FetchError
			if !errors.As(err, &fe) || fe.Op != tc.op {
				t.Fatalf("expected op %q, got %v", tc.op, err)
			}
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(xhttp.NewClient(), url).Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}
