package pipeline

import (
	"sort"

	"github.com/sells-group/connectivity-cli/internal/model"
)

// SourceConnectivity counts answered and missed calls per utm_source. These
// are raw call counts, not distinct leads. A source whose leads were never
// answered or missed has a nil connectivity rate rather than a division by
// zero.
func SourceConnectivity(records []model.JoinedRecord) []model.SourceConnectivity {
	groups := make(map[string]*model.SourceConnectivity)

	for i := range records {
		r := &records[i]
		source := r.Lead.Source()
		s, ok := groups[source]
		if !ok {
			s = &model.SourceConnectivity{Source: source}
			groups[source] = s
		}
		switch r.Status() {
		case model.StatusAnswered:
			s.AnsweredCalls++
		case model.StatusMissed:
			s.MissedCalls++
		}
	}

	out := make([]model.SourceConnectivity, 0, len(groups))
	for _, s := range groups {
		s.TotalCalls = s.AnsweredCalls + s.MissedCalls
		if s.TotalCalls > 0 {
			s.ConnectivityRate = model.Float(round(float64(s.AnsweredCalls)/float64(s.TotalCalls), 2))
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
