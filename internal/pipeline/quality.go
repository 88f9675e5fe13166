package pipeline

import (
	"github.com/sells-group/connectivity-cli/internal/model"
)

// Quality tallies row counts and anomalies across a run. Contacted and
// untouched are distinct lead phones with and without any dialer call; leads
// whose phone did not normalize are only counted in LeadRows and
// LeadsWithoutPhone.
func Quality(leads []model.Lead, calls []model.CallEvent, decodeFailures int) model.Quality {
	q := model.Quality{
		LeadRows:            len(leads),
		CallRows:            len(calls),
		AttributionFailures: decodeFailures,
	}

	leadPhones := make(map[string]struct{}, len(leads))
	for i := range leads {
		if !leads[i].HasPhone() {
			q.LeadsWithoutPhone++
			continue
		}
		q.LeadsWithPhone++
		leadPhones[leads[i].Phone] = struct{}{}
	}
	q.DistinctLeadPhones = len(leadPhones)

	callPhones := make(map[string]struct{}, len(calls))
	for i := range calls {
		c := &calls[i]
		if c.Start == nil || c.End == nil || c.QueueSeconds == nil {
			q.UnparsedTimeCalls++
		}
		if c.NegativeDuration() {
			q.NegativeDurationCalls++
		}
		if c.Phone == "" {
			q.CallsWithoutPhone++
			continue
		}
		callPhones[c.Phone] = struct{}{}
		if _, ok := leadPhones[c.Phone]; !ok {
			q.UnmatchedCalls++
		}
	}

	for p := range leadPhones {
		if _, ok := callPhones[p]; ok {
			q.ContactedLeads++
		}
	}
	q.UntouchedLeads = q.DistinctLeadPhones - q.ContactedLeads
	return q
}
