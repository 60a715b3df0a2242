package display

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"FinDash/internal/domain/models"
	applogger "FinDash/pkg/logger"
)

type countingMetrics struct {
	mu     sync.Mutex
	drops  map[string]int
	errors map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{drops: map[string]int{}, errors: map[string]int{}}
}

func (m *countingMetrics) RecordFetch(string, time.Duration) {}
func (m *countingMetrics) RecordTick(int)                    {}
func (m *countingMetrics) RecordStale()                      {}

func (m *countingMetrics) RecordDisplayDrop(sink string) {
	m.mu.Lock()
	m.drops[sink]++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordDisplayError(sink string) {
	m.mu.Lock()
	m.errors[sink]++
	m.mu.Unlock()
}

func (m *countingMetrics) counts(sink string) (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops[sink], m.errors[sink]
}

type recorder struct {
	mu      sync.Mutex
	updates []models.RegionUpdate
}

func (r *recorder) Render(region models.Region, text string) {
	r.mu.Lock()
	r.updates = append(r.updates, models.RegionUpdate{Region: region, Text: text})
	r.mu.Unlock()
}

func TestBoardGetAndSubscribe(t *testing.T) {
	b := NewBoard()
	if _, ok := b.Get(models.RegionReport); ok {
		t.Fatalf("empty board reported a region")
	}

	b.Render(models.RegionReport, "first")
	ch, cancel := b.Subscribe(4)
	defer cancel()

	select {
	case u := <-ch:
		if u.Region != models.RegionReport || u.Text != "first" {
			t.Fatalf("unexpected primed update %+v", u)
		}
	default:
		t.Fatalf("subscription was not primed with current text")
	}

	b.Render(models.RegionCountdown, "Refreshing in 59s")
	select {
	case u := <-ch:
		if u.Region != models.RegionCountdown || u.Text != "Refreshing in 59s" {
			t.Fatalf("unexpected update %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatalf("no update delivered")
	}

	if text, ok := b.Get(models.RegionCountdown); !ok || text != "Refreshing in 59s" {
		t.Fatalf("Get = %q, %v", text, ok)
	}
}

func TestBoardSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBoard()
	_, cancel := b.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Render(models.RegionCountdown, "x")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Render blocked on a full subscriber")
	}
}

func TestBoardUnsubscribeClosesChannel(t *testing.T) {
	b := NewBoard()
	ch, cancel := b.Subscribe(2)
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after cancel")
	}
	b.Render(models.RegionReport, "after")
}

func TestFanoutSkipsNilAndKeepsOrder(t *testing.T) {
	a, c := &recorder{}, &recorder{}
	f := NewFanout(a, nil, c)
	if len(f) != 2 {
		t.Fatalf("len = %d, want 2", len(f))
	}
	f.Render(models.RegionReport, "r")
	f.Render(models.RegionCountdown, "c")
	for _, r := range []*recorder{a, c} {
		if len(r.updates) != 2 || r.updates[0].Text != "r" || r.updates[1].Text != "c" {
			t.Fatalf("unexpected updates %+v", r.updates)
		}
	}
}

func TestFilterForwardsListedRegions(t *testing.T) {
	r := &recorder{}
	f := NewFilter(r, []string{"report"})
	f.Render(models.RegionCountdown, "skip")
	f.Render(models.RegionReport, "keep")
	if len(r.updates) != 1 || r.updates[0].Text != "keep" {
		t.Fatalf("unexpected updates %+v", r.updates)
	}
}

func TestTerminalRepaintsOnTTY(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminalWriter(&buf, true)
	term.Render(models.RegionReport, "REPORT\n")
	term.Render(models.RegionCountdown, "Refreshing in 5s")

	out := buf.String()
	if strings.Count(out, clearScreen) != 2 {
		t.Fatalf("expected two repaints, got %q", out)
	}
	last := out[strings.LastIndex(out, clearScreen)+len(clearScreen):]
	if last != "REPORT\n\nRefreshing in 5s\n" {
		t.Fatalf("unexpected frame %q", last)
	}
}

func TestTerminalPlainPrintsReportChangesOnly(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminalWriter(&buf, false)
	term.Render(models.RegionReport, "A")
	term.Render(models.RegionCountdown, "Refreshing in 5s")
	term.Render(models.RegionReport, "A")
	term.Render(models.RegionReport, "B")

	if got := buf.String(); got != "A\nB\n" {
		t.Fatalf("output = %q", got)
	}
}

type sinkFunc func(ctx context.Context, region models.Region, text string) error

func (f sinkFunc) Deliver(ctx context.Context, region models.Region, text string) error {
	return f(ctx, region, text)
}

func TestAsyncDeliversAndCountsErrors(t *testing.T) {
	m := newCountingMetrics()
	got := make(chan string, 4)
	a := NewAsync("test", sinkFunc(func(_ context.Context, _ models.Region, text string) error {
		got <- text
		if text == "bad" {
			return errors.New("boom")
		}
		return nil
	}), 4, m, applogger.Nop())
	defer a.Close()

	a.Render(models.RegionReport, "ok")
	a.Render(models.RegionReport, "bad")
	for _, want := range []string{"ok", "bad"} {
		select {
		case text := <-got:
			if text != want {
				t.Fatalf("delivered %q, want %q", text, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("nothing delivered")
		}
	}

	deadline := time.Now().Add(time.Second)
	for {
		if _, errs := m.counts("test"); errs == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("delivery error not recorded")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAsyncDropsWhenFull(t *testing.T) {
	m := newCountingMetrics()
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	a := NewAsync("slow", sinkFunc(func(ctx context.Context, _ models.Region, _ string) error {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}), 1, m, applogger.Nop())

	a.Render(models.RegionReport, "1")
	<-started
	a.Render(models.RegionReport, "2")
	a.Render(models.RegionReport, "3")

	if drops, _ := m.counts("slow"); drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
	close(release)
	a.Close()
	a.Render(models.RegionReport, "closed")
}
