// Package pipeline joins CRM leads to dialer calls and aggregates the joined
// rows into contact, campaign and source reports.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/connectivity-cli/internal/loader"
	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/phone"
	"github.com/sells-group/connectivity-cli/internal/tabular"
)

// Options configures a Builder.
type Options struct {
	DefaultCountryCode string
	AttributionColumn  string
	Read               tabular.Options
}

// Report is the output of one reconciliation run.
type Report struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generated_at"`
	CRMSource    string    `json:"crm_source"`
	DialerSource string    `json:"dialer_source"`

	// HasAttribution is false when the CRM export had no attribution data;
	// Campaigns and Sources are then nil.
	HasAttribution bool                       `json:"has_attribution"`
	Contacts       []model.ContactSummary     `json:"contacts"`
	Campaigns      []model.CampaignEngagement `json:"campaigns,omitempty"`
	Sources        []model.SourceConnectivity `json:"sources,omitempty"`
	Quality        model.Quality              `json:"quality"`

	Leads   []model.Lead         `json:"-"`
	Calls   []model.CallEvent    `json:"-"`
	Records []model.JoinedRecord `json:"-"`
}

// CallDetails lists the calls to a canonical phone.
func (r *Report) CallDetails(phone string) []model.CallDetail {
	return CallDetails(r.Records, phone)
}

// Upload is an export held in memory or streamed from a request.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Builder loads exports and produces reports. It holds no per-run state and
// is safe for concurrent use.
type Builder struct {
	phones *phone.Normalizer
	crm    *loader.CRMLoader
	dialer *loader.DialerLoader
	read   tabular.Options
}

// NewBuilder validates opts and returns a Builder. Both loaders share one
// normalizer so leads and calls are keyed identically.
func NewBuilder(opts Options) (*Builder, error) {
	phones, err := phone.NewNormalizer(opts.DefaultCountryCode)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: phone normalizer")
	}
	return &Builder{
		phones: phones,
		crm:    loader.NewCRMLoader(phones, opts.AttributionColumn),
		dialer: loader.NewDialerLoader(phones),
		read:   opts.Read,
	}, nil
}

// Normalizer returns the phone normalizer used for both exports.
func (b *Builder) Normalizer() *phone.Normalizer {
	return b.phones
}

// BuildFiles reads both exports from disk and builds a report. Any read
// failure aborts the run.
func (b *Builder) BuildFiles(ctx context.Context, crmPath, dialerPath string) (*Report, error) {
	return b.build(ctx,
		func() (*tabular.Table, error) { return tabular.ReadFile(crmPath, b.read) },
		func() (*tabular.Table, error) { return tabular.ReadFile(dialerPath, b.read) },
	)
}

// BuildUploads parses both exports from readers and builds a report.
func (b *Builder) BuildUploads(ctx context.Context, crm, dialer Upload) (*Report, error) {
	return b.build(ctx,
		func() (*tabular.Table, error) { return tabular.Read(crm.Reader, crm.Name, b.read) },
		func() (*tabular.Table, error) { return tabular.Read(dialer.Reader, dialer.Name, b.read) },
	)
}

func (b *Builder) build(ctx context.Context, readCRM, readDialer func() (*tabular.Table, error)) (*Report, error) {
	var crmTbl, dialerTbl *tabular.Table

	// The two exports are independent; read them side by side.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		t, err := readCRM()
		if err != nil {
			return eris.Wrap(err, "pipeline: read crm export")
		}
		crmTbl = t
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		t, err := readDialer()
		if err != nil {
			return eris.Wrap(err, "pipeline: read dialer export")
		}
		dialerTbl = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return b.Build(crmTbl, dialerTbl)
}

// Build reconciles already-read tables into a report.
func (b *Builder) Build(crmTbl, dialerTbl *tabular.Table) (*Report, error) {
	leadSet, err := b.crm.Load(crmTbl)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load crm")
	}
	calls, err := b.dialer.Load(dialerTbl)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load dialer")
	}

	records := Join(leadSet.Leads, calls)

	r := &Report{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		CRMSource:      crmTbl.Name,
		DialerSource:   dialerTbl.Name,
		HasAttribution: leadSet.HasAttribution,
		Contacts:       ContactSummaries(records),
		Leads:          leadSet.Leads,
		Calls:          calls,
		Records:        records,
	}
	if r.HasAttribution {
		r.Campaigns = CampaignEngagement(leadSet.Leads, records)
		r.Sources = SourceConnectivity(records)
	}
	r.Quality = Quality(leadSet.Leads, calls, leadSet.DecodeFailures)

	log := zap.L().With(zap.String("report_id", r.ID))
	log.Info("report built",
		zap.Int("lead_rows", r.Quality.LeadRows),
		zap.Int("call_rows", r.Quality.CallRows),
		zap.Int("joined_records", len(records)),
		zap.Int("contacts", len(r.Contacts)),
		zap.Int("campaigns", len(r.Campaigns)),
		zap.Int("sources", len(r.Sources)),
	)
	if !r.HasAttribution {
		log.Warn("crm export has no attribution columns; campaign and source reports skipped")
	}
	if r.Quality.LeadsWithoutPhone > 0 || r.Quality.CallsWithoutPhone > 0 {
		log.Warn("unparseable phone numbers",
			zap.Int("leads", r.Quality.LeadsWithoutPhone),
			zap.Int("calls", r.Quality.CallsWithoutPhone),
		)
	}
	if r.Quality.NegativeDurationCalls > 0 {
		log.Warn("calls end before they start", zap.Int("calls", r.Quality.NegativeDurationCalls))
	}
	if r.Quality.AttributionFailures > 0 {
		log.Warn("attribution blobs failed to decode", zap.Int("rows", r.Quality.AttributionFailures))
	}

	return r, nil
}
