package reports

import (
	"context"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

// LicenseOptions filter a software-license query. ExpiringSoon restricts the
// result to licenses whose end_date falls within that many days from today.
type LicenseOptions struct {
	Vendor       string
	Product      string
	ExpiringSoon int
	Limit        int // default: 50
}

func (o LicenseOptions) query(today time.Time) string {
	var parts []string
	if o.Vendor != "" {
		parts = append(parts, "vendorLIKE"+o.Vendor)
	}
	if o.Product != "" {
		parts = append(parts, "software_modelLIKE"+o.Product)
	}
	if o.ExpiringSoon > 0 {
		future := today.AddDate(0, 0, o.ExpiringSoon)
		parts = append(parts, "end_date>="+isoDate(today))
		parts = append(parts, "end_date<="+isoDate(future))
	}
	return joinQuery(parts...)
}

// LicenseReport lists normalized software licenses matching the filters.
type LicenseReport struct {
	Licenses []snow.SoftwareLicense `json:"licenses"`
	Count    int                    `json:"count"`
}

// QueryLicenses searches the alm_license table.
func QueryLicenses(ctx context.Context, client *snow.Client, opts LicenseOptions) (*LicenseReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	records, err := client.List(ctx, snow.TableLicense, snow.ListOptions{
		Query: opts.query(time.Now()),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	licenses := make([]snow.SoftwareLicense, 0, len(records))
	for _, r := range records {
		licenses = append(licenses, snow.LicenseFromRecord(r))
	}
	return &LicenseReport{Licenses: licenses, Count: len(licenses)}, nil
}
