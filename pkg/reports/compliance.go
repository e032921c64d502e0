package reports

import (
	"context"

	"github.com/opsforge/snowassets/pkg/snow"
)

// underUtilizationCutoff marks a license as under-utilised when allocations
// fall below this share of entitlements. Policy constant, not a correctness
// threshold.
const underUtilizationCutoff = 0.5

const defaultComplianceLimit = 100

// Compliance statuses per license.
const (
	ComplianceUnknown       = "unknown"
	ComplianceOverAllocated = "over-allocated"
	ComplianceUnderUtilised = "under-utilised"
	ComplianceCompliant     = "compliant"
)

// ComplianceOptions scope a license compliance check.
type ComplianceOptions struct {
	Product string
	Vendor  string
	Limit   int // default: 100
}

// ComplianceEntry is the per-license verdict. Gap is allocated minus rights:
// positive means seats in use beyond entitlement.
type ComplianceEntry struct {
	SysID     string `json:"sys_id,omitempty"`
	Product   string `json:"product,omitempty"`
	Rights    int    `json:"rights"`
	Allocated int    `json:"allocated"`
	Gap       int    `json:"gap"`
	Status    string `json:"status"`
}

// ComplianceReport summarises license compliance across matching records.
type ComplianceReport struct {
	ComplianceResults []ComplianceEntry `json:"compliance_results"`
	Count             int               `json:"count"`
	Compliant         int               `json:"compliant"`
	NonCompliant      int               `json:"non_compliant"`
	UnderUtilised     int               `json:"under_utilised"`
}

// LicenseCompliance compares entitlements (rights) against allocations for
// each license and categorises the result. An under-utilised license still
// counts as compliant; over-allocation is the only non-compliant state.
func LicenseCompliance(ctx context.Context, client *snow.Client, opts ComplianceOptions) (*ComplianceReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultComplianceLimit
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

	report := &ComplianceReport{ComplianceResults: make([]ComplianceEntry, 0, len(records))}
	for _, r := range records {
		rights := snow.SafeInt(r["rights"])
		allocated := snow.SafeInt(r["allocated"])

		var status string
		switch {
		case rights == 0:
			status = ComplianceUnknown
		case allocated > rights:
			status = ComplianceOverAllocated
			report.NonCompliant++
		case float64(allocated) < float64(rights)*underUtilizationCutoff:
			status = ComplianceUnderUtilised
			report.UnderUtilised++
			report.Compliant++
		default:
			status = ComplianceCompliant
			report.Compliant++
		}

		report.ComplianceResults = append(report.ComplianceResults, ComplianceEntry{
			SysID:     r.Display("sys_id"),
			Product:   r.Display("software_model"),
			Rights:    rights,
			Allocated: allocated,
			Gap:       allocated - rights,
			Status:    status,
		})
	}

	report.Count = len(report.ComplianceResults)
	return report, nil
}
