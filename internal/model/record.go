package model

// JoinedRecord pairs a lead with at most one of its calls. A lead dialed N
// times yields N records; a lead with no matching call yields one record with
// a nil Call.
type JoinedRecord struct {
	Lead *Lead      `json:"lead"`
	Call *CallEvent `json:"call,omitempty"`

	// DurationSeconds is the answer (talk) duration, forced to 0 for missed
	// calls. Nil without a call or when the call's timestamps did not parse.
	DurationSeconds *float64 `json:"duration_seconds"`
}

// Matched reports whether the record carries a call.
func (r *JoinedRecord) Matched() bool { return r.Call != nil }

// Status returns the call status, or "" without a call.
func (r *JoinedRecord) Status() CallStatus {
	if r.Call == nil {
		return ""
	}
	return r.Call.Status
}

// TotalSeconds is DurationSeconds plus the call's queue time. A missed call
// contributes nothing, queue time included. Unknown parts count as zero; nil
// without a call.
func (r *JoinedRecord) TotalSeconds() *float64 {
	if r.Call == nil {
		return nil
	}
	var total float64
	if r.Call.Status == StatusMissed {
		return &total
	}
	if r.DurationSeconds != nil {
		total += *r.DurationSeconds
	}
	if r.Call.QueueSeconds != nil {
		total += *r.Call.QueueSeconds
	}
	return &total
}
