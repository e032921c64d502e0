package reports

import (
	"context"
	"sort"

	"github.com/opsforge/snowassets/pkg/snow"
)

// UtilizationOptions scope a license utilization report.
type UtilizationOptions struct {
	Product string
	Vendor  string
	Limit   int // default: 50
}

// UtilizationEntry gives used versus total seats for one license.
type UtilizationEntry struct {
	SysID          string  `json:"sys_id,omitempty"`
	Product        string  `json:"product,omitempty"`
	Rights         int     `json:"rights"`
	Allocated      int     `json:"allocated"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// UtilizationReport lists utilization per license, highest first.
type UtilizationReport struct {
	Utilization []UtilizationEntry `json:"utilization"`
	Count       int                `json:"count"`
}

// LicenseUtilization computes allocated/rights seat ratios for matching
// licenses. Licenses with no recorded rights report 0% rather than dividing
// by zero.
func LicenseUtilization(ctx context.Context, client *snow.Client, opts UtilizationOptions) (*UtilizationReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	var parts []string
	if opts.Product != "" {
		parts = append(parts, "software_modelLIKE"+opts.Product)
	}
	if opts.Vendor != "" {
		parts = append(parts, "vendorLIKE"+opts.Vendor)
	}

	records, err := client.List(ctx, snow.TableLicense, snow.ListOptions{
		Query: joinQuery(parts...),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]UtilizationEntry, 0, len(records))
	for _, r := range records {
		rights := snow.SafeInt(r["rights"])
		allocated := snow.SafeInt(r["allocated"])

		pct := 0.0
		if rights > 0 {
			pct = round1(float64(allocated) / float64(rights) * 100)
		}

		entries = append(entries, UtilizationEntry{
			SysID:          r.Display("sys_id"),
			Product:        r.Display("software_model"),
			Rights:         rights,
			Allocated:      allocated,
			UtilizationPct: pct,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UtilizationPct > entries[j].UtilizationPct
	})

	return &UtilizationReport{Utilization: entries, Count: len(entries)}, nil
}
