package pipeline

import (
	"time"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/utm"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func lead(phone, firstName, source, campaign string) model.Lead {
	attrs := utm.Attributes{}
	if source != "" {
		attrs[utm.KeySource] = source
	}
	if campaign != "" {
		attrs[utm.KeyCampaign] = campaign
	}
	return model.Lead{
		RawPhone:    phone,
		Phone:       phone,
		FullName:    firstName,
		FirstName:   firstName,
		Attribution: attrs,
	}
}

// call builds a call event lasting talk seconds after queue seconds in queue.
func call(phone, account string, status model.CallStatus, talk, queue float64) model.CallEvent {
	start := t0
	end := t0.Add(time.Duration(talk * float64(time.Second)))
	return model.CallEvent{
		RawNumber:     phone,
		Phone:         phone,
		Account:       account,
		Start:         &start,
		End:           &end,
		Status:        status,
		AnswerSeconds: model.Float(talk),
		QueueSeconds:  model.Float(queue),
		TotalSeconds:  model.Float(talk + queue),
	}
}
