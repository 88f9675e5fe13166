package model

import (
	"fmt"
	"math"
	"time"
)

// CallStatus is the dialer's outcome for a call attempt. Only Answered and
// Missed carry meaning; every other value is passed through as-is.
type CallStatus string

const (
	StatusAnswered CallStatus = "Answered"
	StatusMissed   CallStatus = "Missed"
	// StatusNone classifies leads with no answered or missed call.
	StatusNone CallStatus = "none"
)

// CallEvent is one dialer log row.
type CallEvent struct {
	Row       int        `json:"row"`
	RawNumber string     `json:"raw_customer_number"`
	Phone     string     `json:"canonical_phone,omitempty"`
	Account   string     `json:"account"`
	Start     *time.Time `json:"start_time"`
	End       *time.Time `json:"end_time"`
	Status    CallStatus `json:"call_status"`

	// Durations are nil when a timestamp they depend on did not parse.
	AnswerSeconds *float64 `json:"answer_duration_seconds"`
	QueueSeconds  *float64 `json:"queue_seconds"`
	TotalSeconds  *float64 `json:"total_duration_seconds"`
}

// NegativeDuration reports an end time before the start time. The value is
// kept as-is so the export bug stays visible.
func (c *CallEvent) NegativeDuration() bool {
	return c.AnswerSeconds != nil && *c.AnswerSeconds < 0
}

// AnswerHMS renders the answer duration as HH:MM:SS, or "" when unknown.
func (c *CallEvent) AnswerHMS() string { return HMS(c.AnswerSeconds) }

// TotalHMS renders the total duration as HH:MM:SS, or "" when unknown.
func (c *CallEvent) TotalHMS() string { return HMS(c.TotalSeconds) }

// HMS renders an optional second count with FormatHMS.
func HMS(seconds *float64) string {
	if seconds == nil {
		return ""
	}
	return FormatHMS(*seconds)
}

// FormatHMS renders seconds as HH:MM:SS. Fractions are truncated, hours are
// not wrapped at 24 and negative values keep their sign.
func FormatHMS(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int64(seconds)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, total/3600, (total%3600)/60, total%60)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
