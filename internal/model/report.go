package model

import "time"

// ContactSummary is one row of the per-contact call summary.
type ContactSummary struct {
	Phone                   string  `json:"canonical_phone"`
	FirstName               string  `json:"first_name"`
	Account                 string  `json:"account"`
	Region                  string  `json:"region"`
	AnsweredCalls           int     `json:"answered_calls"`
	MissedCalls             int     `json:"missed_calls"`
	TotalDurationSeconds    float64 `json:"total_duration_seconds"`
	AnsweredDurationSeconds float64 `json:"answered_duration_seconds"`
	TotalDuration           string  `json:"total_duration_hms"`
	AnsweredDuration        string  `json:"answered_duration_hms"`
}

// CampaignEngagement is one row of the per-campaign funnel.
type CampaignEngagement struct {
	Source   string `json:"utm_source"`
	Campaign string `json:"utm_campaign"`

	// LeadRows counts every CRM row in the campaign, parseable phone or not.
	LeadRows int `json:"lead_rows"`
	// TotalLeads counts distinct canonical phones.
	TotalLeads     int `json:"total_leads"`
	ContactedLeads int `json:"contacted_leads"`
	AnsweredLeads  int `json:"answered_leads"`
	MissedLeads    int `json:"missed_leads"`
	OtherLeads     int `json:"other_leads"`
	DialledLeads   int `json:"dialled_leads"`
	UntouchedLeads int `json:"untouched_leads"`

	ContactRatePct *float64 `json:"contact_rate_pct"` // nil when TotalLeads is 0
	AnswerRatePct  float64  `json:"answer_rate_pct"`
}

// SourceConnectivity is one row of the per-source connectivity report.
type SourceConnectivity struct {
	Source           string   `json:"utm_source"`
	AnsweredCalls    int      `json:"answered_calls"`
	MissedCalls      int      `json:"missed_calls"`
	TotalCalls       int      `json:"total_calls"`
	ConnectivityRate *float64 `json:"connectivity_rate"` // nil when TotalCalls is 0
}

// CallDetail is one call attempt for a selected contact.
type CallDetail struct {
	Phone            string     `json:"canonical_phone"`
	Account          string     `json:"account"`
	Start            *time.Time `json:"start_time"`
	End              *time.Time `json:"end_time"`
	Status           CallStatus `json:"call_status"`
	AnswerDuration   string     `json:"answer_duration_hms"`
	TotalDuration    string     `json:"total_duration_hms"`
	NegativeDuration bool       `json:"negative_duration"`
}

// Quality summarizes row counts and anomalies for a report run.
type Quality struct {
	LeadRows              int `json:"lead_rows"`
	LeadsWithPhone        int `json:"leads_with_phone"`
	LeadsWithoutPhone     int `json:"leads_without_phone"`
	DistinctLeadPhones    int `json:"distinct_lead_phones"`
	ContactedLeads        int `json:"contacted_leads"`
	UntouchedLeads        int `json:"untouched_leads"`
	AttributionFailures   int `json:"attribution_decode_failures"`
	CallRows              int `json:"call_rows"`
	CallsWithoutPhone     int `json:"calls_without_phone"`
	UnmatchedCalls        int `json:"unmatched_calls"`
	NegativeDurationCalls int `json:"negative_duration_calls"`
	UnparsedTimeCalls     int `json:"unparsed_timestamp_calls"`
}
