package loader

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/phone"
	"github.com/sells-group/connectivity-cli/internal/tabular"
)

// Dialer export columns (after header normalization).
const (
	ColCustomerNumber = "customer number"
	ColAccount        = "account"
	ColStartTime      = "start time"
	ColEndTime        = "end time"
	ColQueueDuration  = "queue duration"
	ColCallStatus     = "call status"
)

var dialerColumns = []string{
	ColCustomerNumber, ColAccount, ColStartTime, ColEndTime, ColQueueDuration, ColCallStatus,
}

// DialerLoader turns dialer log rows into call events.
type DialerLoader struct {
	phones *phone.Normalizer
}

// NewDialerLoader returns a DialerLoader. phones must be the same normalizer
// the CRM side uses, or no call will ever join.
func NewDialerLoader(phones *phone.Normalizer) *DialerLoader {
	return &DialerLoader{phones: phones}
}

// Load parses every row of tbl. Only the six dialer columns are read; any
// other column is ignored. A missing column is fatal.
func (l *DialerLoader) Load(tbl *tabular.Table) ([]model.CallEvent, error) {
	if missing := tbl.Missing(dialerColumns...); len(missing) > 0 {
		return nil, eris.Errorf("dialer: %s is missing required columns: %s", tbl.Name, strings.Join(missing, ", "))
	}

	calls := make([]model.CallEvent, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		raw := tbl.Value(row, ColCustomerNumber)
		c := model.CallEvent{
			Row:       i + 1,
			RawNumber: raw,
			Phone:     l.phones.Normalize(raw),
			Account:   tbl.Value(row, ColAccount),
			Status:    ParseStatus(tbl.Value(row, ColCallStatus)),
		}

		if t, ok := ParseTimestamp(tbl.Value(row, ColStartTime)); ok {
			c.Start = &t
		}
		if t, ok := ParseTimestamp(tbl.Value(row, ColEndTime)); ok {
			c.End = &t
		}
		if q, ok := ParseQueueSeconds(tbl.Value(row, ColQueueDuration)); ok {
			c.QueueSeconds = model.Float(q)
		}

		if c.Start != nil && c.End != nil {
			c.AnswerSeconds = model.Float(c.End.Sub(*c.Start).Seconds())
			if c.QueueSeconds != nil {
				c.TotalSeconds = model.Float(*c.AnswerSeconds + *c.QueueSeconds)
			}
		}

		if c.NegativeDuration() {
			zap.L().Debug("dialer: end time before start time",
				zap.Int("row", c.Row),
				zap.Float64("answer_seconds", *c.AnswerSeconds),
			)
		}

		calls = append(calls, c)
	}

	return calls, nil
}

// ParseStatus canonicalizes a dialer call status. Answered and Missed are
// matched case-insensitively; other values pass through trimmed.
func ParseStatus(s string) model.CallStatus {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(model.StatusAnswered)):
		return model.StatusAnswered
	case strings.EqualFold(s, string(model.StatusMissed)):
		return model.StatusMissed
	}
	return model.CallStatus(s)
}
