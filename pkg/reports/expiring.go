package reports

import (
	"context"
	"sort"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

const (
	defaultDaysAhead = 90

	// expiredLookbackDays is how far back IncludeExpired reaches.
	expiredLookbackDays = 30
)

// Urgency buckets for an expiring contract.
const (
	UrgencyExpired  = "expired"
	UrgencyCritical = "critical"
	UrgencyWarning  = "warning"
	UrgencyNotice   = "notice"
	UrgencyInfo     = "info"
	UrgencyUnknown  = "unknown"
)

// ExpiringOptions scope the contract-expiry triage.
type ExpiringOptions struct {
	DaysAhead      int // default: 90
	Vendor         string
	IncludeExpired bool // also report contracts expired in the last 30 days
	Limit          int  // default: 50
}

// ExpiringContract is a contract with its countdown and urgency bucket.
type ExpiringContract struct {
	snow.Contract

	DaysRemaining *int   `json:"days_remaining"`
	Urgency       string `json:"urgency"`
}

// ExpiringReport lists contracts inside the expiry window, soonest first.
type ExpiringReport struct {
	Contracts        []ExpiringContract `json:"contracts"`
	Count            int                `json:"count"`
	TotalValueAtRisk float64            `json:"total_value_at_risk"`
}

func urgency(daysRemaining int) string {
	switch {
	case daysRemaining < 0:
		return UrgencyExpired
	case daysRemaining <= 30:
		return UrgencyCritical
	case daysRemaining <= 60:
		return UrgencyWarning
	case daysRemaining <= 90:
		return UrgencyNotice
	default:
		return UrgencyInfo
	}
}

// ExpiringContracts finds contracts ending within DaysAhead days, bucketed
// by urgency, with the summed contract value at risk.
func ExpiringContracts(ctx context.Context, client *snow.Client, opts ExpiringOptions) (*ExpiringReport, error) {
	if opts.DaysAhead == 0 {
		opts.DaysAhead = defaultDaysAhead
	}
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}
	if err := validateMin("days_ahead", opts.DaysAhead); err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	windowStart := today
	if opts.IncludeExpired {
		windowStart = today.AddDate(0, 0, -expiredLookbackDays)
	}

	parts := []string{
		"ends>=" + isoDate(windowStart),
		"ends<=" + isoDate(today.AddDate(0, 0, opts.DaysAhead)),
	}
	if opts.Vendor != "" {
		parts = append(parts, "vendorLIKE"+opts.Vendor)
	}

	records, err := client.List(ctx, snow.TableContract, snow.ListOptions{
		Query: joinQuery(parts...),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	report := &ExpiringReport{Contracts: make([]ExpiringContract, 0, len(records))}
	for _, r := range records {
		contract := snow.ContractFromRecord(r)

		entry := ExpiringContract{Contract: contract, Urgency: UrgencyUnknown}
		if contract.Ends != nil {
			days := int(contract.Ends.Sub(today).Hours() / 24)
			entry.DaysRemaining = &days
			entry.Urgency = urgency(days)
		}

		if contract.Cost != nil {
			report.TotalValueAtRisk += *contract.Cost
		}
		report.Contracts = append(report.Contracts, entry)
	}

	sort.SliceStable(report.Contracts, func(i, j int) bool {
		return sortKey(report.Contracts[i]) < sortKey(report.Contracts[j])
	})

	report.Count = len(report.Contracts)
	report.TotalValueAtRisk = round2(report.TotalValueAtRisk)
	return report, nil
}

// sortKey orders contracts soonest-first, pushing unknown expiries to the
// end.
func sortKey(c ExpiringContract) int {
	if c.DaysRemaining == nil {
		return 1 << 30
	}
	return *c.DaysRemaining
}
