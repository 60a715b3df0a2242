package models

// ServiceUp is the only status value rendered as healthy; anything else is down.
const ServiceUp = "UP"

// Snapshot is the decoded payload of one dashboard-data response.
type Snapshot struct {
	Status  *Status  `json:"status" validate:"required"`
	Signals []Signal `json:"signals" validate:"dive"`
}

// Status describes the health of the trading services.
type Status struct {
	LastSignalTimestamp *string  `json:"last_signal_timestamp"`
	BuyingBotStatus     string   `json:"buying_bot_status"`
	AnalyticsStatus     string   `json:"analytics_status"`
	CandleUpdateActive  bool     `json:"candle_update_active"`
	CandleAgeSeconds    *float64 `json:"candle_age_seconds"`
}

// Signal is one symbol's recommendation for the current cycle.
type Signal struct {
	Symbol string  `json:"symbol" validate:"required"`
	Action string  `json:"action" validate:"required"`
	Score  float64 `json:"score"`
}

// BuyingBotUp reports whether the buying bot is healthy.
func (s Status) BuyingBotUp() bool { return s.BuyingBotStatus == ServiceUp }

// AnalyticsUp reports whether the analytics service is healthy.
func (s Status) AnalyticsUp() bool { return s.AnalyticsStatus == ServiceUp }
