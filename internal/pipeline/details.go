package pipeline

import (
	"github.com/sells-group/connectivity-cli/internal/model"
)

// CallDetails lists every call to a canonical phone, in dialer order. A call
// shared by several leads with the same phone is listed once.
func CallDetails(records []model.JoinedRecord, phone string) []model.CallDetail {
	if phone == "" {
		return nil
	}

	seen := make(map[*model.CallEvent]bool)
	var out []model.CallDetail
	for i := range records {
		r := &records[i]
		if !r.Matched() || r.Lead.Phone != phone || seen[r.Call] {
			continue
		}
		seen[r.Call] = true

		c := r.Call
		out = append(out, model.CallDetail{
			Phone:            c.Phone,
			Account:          c.Account,
			Start:            c.Start,
			End:              c.End,
			Status:           c.Status,
			AnswerDuration:   c.AnswerHMS(),
			TotalDuration:    c.TotalHMS(),
			NegativeDuration: c.NegativeDuration(),
		})
	}
	return out
}
