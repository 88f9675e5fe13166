package pipeline

import (
	"github.com/sells-group/connectivity-cli/internal/model"
)

// Join left-joins leads to calls on canonical phone. Calls are hashed by
// phone so the cost is O(leads + calls). Output follows lead order, then call
// order within a lead. Leads without a phone or without a matching call yield
// a single record with a nil Call. Missed calls get a zero duration whatever
// their timestamps say.
//
// The returned records point into leads and calls; both must outlive them.
func Join(leads []model.Lead, calls []model.CallEvent) []model.JoinedRecord {
	byPhone := make(map[string][]*model.CallEvent, len(calls))
	for i := range calls {
		c := &calls[i]
		if c.Phone == "" {
			continue
		}
		byPhone[c.Phone] = append(byPhone[c.Phone], c)
	}

	records := make([]model.JoinedRecord, 0, len(leads))
	for i := range leads {
		lead := &leads[i]

		var matches []*model.CallEvent
		if lead.HasPhone() {
			matches = byPhone[lead.Phone]
		}
		if len(matches) == 0 {
			records = append(records, model.JoinedRecord{Lead: lead})
			continue
		}

		for _, c := range matches {
			records = append(records, model.JoinedRecord{
				Lead:            lead,
				Call:            c,
				DurationSeconds: callDuration(c),
			})
		}
	}
	return records
}

func callDuration(c *model.CallEvent) *float64 {
	if c.Status == model.StatusMissed {
		return model.Float(0)
	}
	if c.AnswerSeconds == nil {
		return nil
	}
	return model.Float(*c.AnswerSeconds)
}
