package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"FinDash/internal/domain/models"
)

func ptr[T any](v T) *T { return &v }

func TestFormatAge(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{ptr(0.0), "0s ago"},
		{ptr(5.0), "5s ago"},
		{ptr(5.5), "6s ago"},
		{ptr(59.4), "59s ago"},
		{ptr(59.9), "59s ago"},
		{ptr(59.999), "59s ago"},
		{ptr(60.0), "1m ago"},
		{ptr(119.9), "1m ago"},
		{ptr(3599.0), "59m ago"},
		{ptr(3600.0), "1h ago"},
		{ptr(7199.0), "1h ago"},
		{ptr(86400.0), "24h ago"},
		{ptr(-3.0), "0s ago"},
		{ptr(-0.4), "0s ago"},
		{ptr(3.6e22), "10000000000000000000h ago"},
		{ptr(math.Inf(1)), "+Infh ago"},
	}
	for i, tc := range cases {
		if got := FormatAge(tc.in); got != tc.want {
			t.Fatalf("case %d: FormatAge = %q, want %q", i, got, tc.want)
		}
	}
}

func TestFormatScoreThreshold(t *testing.T) {
	cases := map[float64]string{
		0:            "0%",
		80:           "80%",
		80.5:         "**80.5%**",
		81:           "**81%**",
		72.5:         "72.5%",
		100:          "**100%**",
		0.1:          "0.1%",
		91.123456789: "**91.123456789%**",
	}
	for in, want := range cases {
		if got := FormatScore(in); got != want {
			t.Fatalf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatScore(math.Copysign(0, -1)); got != "0%" {
		t.Fatalf("negative zero rendered as %q", got)
	}
}

func TestFormatFullReport(t *testing.T) {
	snap := &models.Snapshot{
		Status: &models.Status{
			LastSignalTimestamp: ptr("2024-01-01T12:00:00Z"),
			BuyingBotStatus:     "UP",
			AnalyticsStatus:     "DOWN",
			CandleUpdateActive:  false,
			CandleAgeSeconds:    ptr(45.0),
		},
		Signals: []models.Signal{{Symbol: "BTC", Action: "BUY", Score: 95}},
	}

	want := "CRYPTO TRADING DASHBOARD\n" +
		"========================\n" +
		"Last Update: 2024-01-01 12:00:00\n" +
		"\n" +
		"Services:\n" +
		"- Buying Bot: ✓ UP\n" +
		"- Analytics: ✗ DOWN  \n" +
		"- Candles: STALE (45s ago)\n" +
		"\n" +
		"Signals (15-min cycle):\n" +
		"-----------------------\n" +
		"Token   | Action       | Score |\n" +
		"-------------------------------\n" +
		"BTC   | BUY         | **95%**\n"

	got := NewFormatter(time.UTC).Format(snap)
	if got != want {
		t.Fatalf("report mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatEmptySignalsRendersHeaderOnly(t *testing.T) {
	snap := &models.Snapshot{Status: &models.Status{BuyingBotStatus: "UP", AnalyticsStatus: "UP", CandleUpdateActive: true}}
	got := NewFormatter(time.UTC).Format(snap)

	if !strings.HasSuffix(got, "Token   | Action       | Score |\n-------------------------------\n") {
		t.Fatalf("expected report to end with table header, got %q", got)
	}
	if !strings.Contains(got, "Last Update: N/A\n") {
		t.Fatalf("expected N/A timestamp, got %q", got)
	}
	if !strings.Contains(got, "- Candles: ACTIVE (N/A)\n") {
		t.Fatalf("expected active candles with N/A age, got %q", got)
	}
	if !strings.Contains(got, "- Analytics: ✓ UP  \n") {
		t.Fatalf("expected analytics up, got %q", got)
	}
}

func TestFormatKeepsSignalOrderAndPadding(t *testing.T) {
	snap := &models.Snapshot{
		Status: &models.Status{},
		Signals: []models.Signal{
			{Symbol: "ETH", Action: "HOLD", Score: 80},
			{Symbol: "MATICX", Action: "dont_buy_long", Score: 12},
			{Symbol: "SOL", Action: "BUY", Score: 81},
		},
	}
	got := NewFormatter(time.UTC).Format(snap)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	rows := lines[len(lines)-3:]

	want := []string{
		"ETH   | HOLD        | 80%",
		"MATICX| dont_buy_long| 12%",
		"SOL   | BUY         | **81%**",
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestFormatStatusLabels(t *testing.T) {
	snap := &models.Snapshot{Status: &models.Status{BuyingBotStatus: "up", AnalyticsStatus: ""}}
	got := NewFormatter(time.UTC).Format(snap)
	if !strings.Contains(got, "- Buying Bot: ✗ DOWN\n") {
		t.Fatalf("status match must be exact, got %q", got)
	}
	if !strings.Contains(got, "- Analytics: ✗ DOWN  \n") {
		t.Fatalf("empty status must be down, got %q", got)
	}
}

func TestFormatTimestampLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	snap := &models.Snapshot{Status: &models.Status{LastSignalTimestamp: ptr("2024-01-01T12:00:00.123456+00:00")}}
	got := NewFormatter(loc).Format(snap)
	if !strings.Contains(got, "Last Update: 2024-01-01 14:00:00\n") {
		t.Fatalf("expected local rendering, got %q", got)
	}

	snap.Status.LastSignalTimestamp = ptr("not a time")
	got = NewFormatter(loc).Format(snap)
	if !strings.Contains(got, "Last Update: N/A\n") {
		t.Fatalf("expected N/A for garbage, got %q", got)
	}
}

func TestFormatNilSnapshot(t *testing.T) {
	got := NewFormatter(time.UTC).Format(nil)
	if !strings.HasPrefix(got, "CRYPTO TRADING DASHBOARD\n") {
		t.Fatalf("unexpected %q", got)
	}
}
