package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/connectivity-cli/internal/model"
)

func TestQuality(t *testing.T) {
	leads := []model.Lead{
		lead("911111111111", "A", "google", "spring"),
		lead("911111111111", "A", "google", "spring"),
		lead("912222222222", "B", "google", "spring"),
		lead("", "Unparsed", "google", "spring"),
	}
	negative := call("912222222222", "x", model.StatusAnswered, -30, 0)
	unparsed := call("919999999999", "x", model.StatusMissed, 0, 0)
	unparsed.Start, unparsed.AnswerSeconds, unparsed.TotalSeconds = nil, nil, nil
	calls := []model.CallEvent{
		call("911111111111", "x", model.StatusAnswered, 10, 0),
		negative,
		unparsed,
		call("", "x", model.StatusMissed, 0, 0),
	}
	q := Quality(leads, calls, 2)

	assert.Equal(t, model.Quality{
		LeadRows:              4,
		LeadsWithPhone:        3,
		LeadsWithoutPhone:     1,
		DistinctLeadPhones:    2,
		ContactedLeads:        2,
		UntouchedLeads:        0,
		AttributionFailures:   2,
		CallRows:              4,
		CallsWithoutPhone:     1,
		UnmatchedCalls:        1,
		NegativeDurationCalls: 1,
		UnparsedTimeCalls:     1,
	}, q)
}

func TestQuality_UnparsedPhoneLeadNotUntouched(t *testing.T) {
	leads := []model.Lead{lead("", "Unparsed", "", "")}

	q := Quality(leads, nil, 0)
	assert.Equal(t, 1, q.LeadRows)
	assert.Equal(t, 0, q.ContactedLeads)
	assert.Equal(t, 0, q.UntouchedLeads)
}
