package model

import (
	"github.com/sells-group/connectivity-cli/internal/utm"
)

// Lead is one CRM contact row.
type Lead struct {
	Row         int            `json:"row"` // 1-based data row in the export
	RawPhone    string         `json:"raw_phone"`
	Phone       string         `json:"canonical_phone,omitempty"` // "" when the phone did not normalize
	Region      string         `json:"region,omitempty"`
	FullName    string         `json:"full_name"`
	FirstName   string         `json:"first_name"`
	Attribution utm.Attributes `json:"attribution,omitempty"`
}

// HasPhone reports whether the lead carries a usable join key.
func (l *Lead) HasPhone() bool { return l.Phone != "" }

// Campaign returns the lead's (source, campaign) grouping key.
func (l *Lead) Campaign() CampaignKey {
	return CampaignKey{
		Source:   l.Attribution.Get(utm.KeySource),
		Campaign: l.Attribution.Get(utm.KeyCampaign),
	}
}

// Source returns the lead's utm_source, or utm.None.
func (l *Lead) Source() string {
	return l.Attribution.Get(utm.KeySource)
}

// CampaignKey groups leads by attribution. Either side may be utm.None.
type CampaignKey struct {
	Source   string `json:"source"`
	Campaign string `json:"campaign"`
}
