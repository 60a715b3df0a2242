package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/pkg/util"

	"github.com/shopspring/decimal"
)

// ErrorText replaces the report when a fetch fails.
const ErrorText = "Error loading dashboard."

// HighScoreThreshold is the score above which a signal is emphasised.
const HighScoreThreshold = 80.0

const (
	timestampLayout = "2006-01-02 15:04:05"
	notAvailable    = "N/A"
	symbolWidth     = 6
	actionWidth     = 12
)

// Formatter renders snapshots as fixed-width text. It is safe for concurrent use.
type Formatter struct {
	loc *time.Location
}

// NewFormatter returns a Formatter rendering timestamps in loc (time.Local when nil).
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

// Format renders snap. A nil snapshot or status renders as all-down with no signals.
func (f *Formatter) Format(snap *models.Snapshot) string {
	var st models.Status
	var signals []models.Signal
	if snap != nil {
		if snap.Status != nil {
			st = *snap.Status
		}
		signals = snap.Signals
	}

	candle := "STALE"
	if st.CandleUpdateActive {
		candle = "ACTIVE"
	}

	var b strings.Builder
	b.WriteString("CRYPTO TRADING DASHBOARD\n========================\n")
	fmt.Fprintf(&b, "Last Update: %s\n\n", f.timestamp(st.LastSignalTimestamp))
	b.WriteString("Services:\n")
	fmt.Fprintf(&b, "- Buying Bot: %s\n", serviceLabel(st.BuyingBotUp()))
	fmt.Fprintf(&b, "- Analytics: %s  \n", serviceLabel(st.AnalyticsUp()))
	fmt.Fprintf(&b, "- Candles: %s (%s)\n\n", candle, FormatAge(st.CandleAgeSeconds))
	b.WriteString("Signals (15-min cycle):\n-----------------------\n")
	b.WriteString("Token   | Action       | Score |\n")
	b.WriteString("-------------------------------\n")
	for _, sig := range signals {
		fmt.Fprintf(&b, "%s| %s| %s\n",
			padRight(sig.Symbol, symbolWidth),
			padRight(sig.Action, actionWidth),
			FormatScore(sig.Score),
		)
	}
	return b.String()
}

func (f *Formatter) timestamp(raw *string) string {
	if raw == nil {
		return notAvailable
	}
	t, ok := util.ParseTime(*raw)
	if !ok {
		return notAvailable
	}
	return t.In(f.loc).Format(timestampLayout)
}

// FormatScore renders a score as a percentage, emphasised when above the threshold.
func FormatScore(score float64) string {
	var s string
	if math.IsNaN(score) || math.IsInf(score, 0) {
		s = strconv.FormatFloat(score, 'f', -1, 64) + "%"
	} else {
		s = decimal.NewFromFloat(score).String() + "%"
	}
	if score > HighScoreThreshold {
		return "**" + s + "**"
	}
	return s
}

// FormatAge renders an age in seconds as a short relative label.
// Buckets: [0,60) seconds, [60,3600) minutes, hours beyond.
func FormatAge(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) {
		return notAvailable
	}
	s := math.Max(*seconds, 0)
	switch {
	case s < 60:
		// rounding must stay inside the seconds bucket
		return fmt.Sprintf("%ds ago", int(math.Min(math.Floor(s+0.5), 59)))
	case s < 3600:
		return fmt.Sprintf("%dm ago", int(math.Floor(s/60)))
	default:
		return strconv.FormatFloat(math.Floor(s/3600), 'f', 0, 64) + "h ago"
	}
}

func serviceLabel(up bool) string {
	if up {
		return "✓ UP"
	}
	return "✗ DOWN"
}

// padRight pads s with spaces to width runes; longer values are kept whole.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
