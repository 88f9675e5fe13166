package pipeline

import (
	"sort"

	"github.com/sells-group/connectivity-cli/internal/model"
)

type contactKey struct {
	phone, firstName, account string
}

// ContactSummaries groups matched records by (phone, first name, account).
// Unmatched leads have no call and no account, so they are not summarized.
// Total duration is talk plus queue time of every call except missed ones,
// which contribute zero; answered duration is talk time of answered calls only.
func ContactSummaries(records []model.JoinedRecord) []model.ContactSummary {
	groups := make(map[contactKey]*model.ContactSummary)

	for i := range records {
		r := &records[i]
		if !r.Matched() {
			continue
		}

		key := contactKey{phone: r.Lead.Phone, firstName: r.Lead.FirstName, account: r.Call.Account}
		s, ok := groups[key]
		if !ok {
			s = &model.ContactSummary{
				Phone:     key.phone,
				FirstName: key.firstName,
				Account:   key.account,
				Region:    r.Lead.Region,
			}
			groups[key] = s
		}

		switch r.Status() {
		case model.StatusAnswered:
			s.AnsweredCalls++
			if r.DurationSeconds != nil {
				s.AnsweredDurationSeconds += *r.DurationSeconds
			}
		case model.StatusMissed:
			s.MissedCalls++
		}
		if total := r.TotalSeconds(); total != nil {
			s.TotalDurationSeconds += *total
		}
	}

	out := make([]model.ContactSummary, 0, len(groups))
	for _, s := range groups {
		s.TotalDuration = model.FormatHMS(s.TotalDurationSeconds)
		s.AnsweredDuration = model.FormatHMS(s.AnsweredDurationSeconds)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Phone != b.Phone {
			return a.Phone < b.Phone
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.Account < b.Account
	})
	return out
}
