package pipeline

import (
	"math"
	"sort"

	"github.com/sells-group/connectivity-cli/internal/model"
)

type campaignAgg struct {
	rows      int
	phones    map[string]struct{}
	contacted map[string]struct{}
	best      map[string]model.CallStatus
}

// CampaignEngagement computes the per-campaign lead funnel.
//
// Lead totals count distinct canonical phones from the leads themselves, so
// repeat dials do not inflate them. Each phone in a campaign is classified by
// its best call outcome within that campaign: Answered if any call was
// answered, else Missed if any was missed, else none. Untouched is total minus
// dialled. A record is attributed to its own lead's campaign, so every dialled
// phone is also one of the campaign's lead phones and untouched is never
// negative.
func CampaignEngagement(leads []model.Lead, records []model.JoinedRecord) []model.CampaignEngagement {
	aggs := make(map[model.CampaignKey]*campaignAgg)
	get := func(k model.CampaignKey) *campaignAgg {
		a, ok := aggs[k]
		if !ok {
			a = &campaignAgg{
				phones:    make(map[string]struct{}),
				contacted: make(map[string]struct{}),
				best:      make(map[string]model.CallStatus),
			}
			aggs[k] = a
		}
		return a
	}

	for i := range leads {
		l := &leads[i]
		a := get(l.Campaign())
		a.rows++
		if l.HasPhone() {
			a.phones[l.Phone] = struct{}{}
		}
	}

	for i := range records {
		r := &records[i]
		if !r.Matched() || !r.Lead.HasPhone() {
			continue
		}
		a := get(r.Lead.Campaign())
		a.contacted[r.Lead.Phone] = struct{}{}
		a.best[r.Lead.Phone] = betterStatus(a.best[r.Lead.Phone], r.Status())
	}

	out := make([]model.CampaignEngagement, 0, len(aggs))
	for key, a := range aggs {
		e := model.CampaignEngagement{
			Source:         key.Source,
			Campaign:       key.Campaign,
			LeadRows:       a.rows,
			TotalLeads:     len(a.phones),
			ContactedLeads: len(a.contacted),
		}
		for _, status := range a.best {
			switch status {
			case model.StatusAnswered:
				e.AnsweredLeads++
			case model.StatusMissed:
				e.MissedLeads++
			}
		}
		for p := range a.phones {
			if s := a.best[p]; s != model.StatusAnswered && s != model.StatusMissed {
				e.OtherLeads++
			}
		}

		e.DialledLeads = e.AnsweredLeads + e.MissedLeads
		e.UntouchedLeads = e.TotalLeads - e.DialledLeads

		if e.TotalLeads > 0 {
			e.ContactRatePct = model.Float(round(100*float64(e.DialledLeads)/float64(e.TotalLeads), 1))
		}
		if e.DialledLeads > 0 {
			e.AnswerRatePct = round(100*float64(e.AnsweredLeads)/float64(e.DialledLeads), 1)
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Campaign < out[j].Campaign
	})
	return out
}

// betterStatus keeps the higher-priority outcome: Answered > Missed > none.
func betterStatus(current, next model.CallStatus) model.CallStatus {
	if current == model.StatusAnswered || next == model.StatusAnswered {
		return model.StatusAnswered
	}
	if current == model.StatusMissed || next == model.StatusMissed {
		return model.StatusMissed
	}
	return model.StatusNone
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
