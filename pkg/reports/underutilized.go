package reports

import (
	"context"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

const defaultDaysThreshold = 90

// Reasons an asset is flagged underutilized.
const (
	ReasonInactive   = "inactive"
	ReasonUnassigned = "unassigned"
)

// UnderutilizedOptions scope the stale-asset search.
type UnderutilizedOptions struct {
	DaysThreshold int // default: 90
	Limit         int // default: 50
}

// UnderutilizedAsset is one flagged asset with the reason it was flagged.
type UnderutilizedAsset struct {
	SysID         string  `json:"sys_id,omitempty"`
	AssetTag      string  `json:"asset_tag,omitempty"`
	DisplayName   string  `json:"display_name,omitempty"`
	InstallStatus string  `json:"install_status,omitempty"`
	AssignedTo    string  `json:"assigned_to,omitempty"`
	SysUpdatedOn  string  `json:"sys_updated_on,omitempty"`
	Cost          float64 `json:"cost"`
	Reason        string  `json:"reason"`
}

// UnderutilizedReport lists flagged assets and the cost tied up in them.
type UnderutilizedReport struct {
	UnderutilizedAssets []UnderutilizedAsset `json:"underutilized_assets"`
	Count               int                  `json:"count"`
	EstimatedWasteCost  float64              `json:"estimated_waste_cost"`
}

// UnderutilizedAssets finds hardware marked in-use whose last update is older
// than the threshold. Assets with nobody assigned are flagged unassigned;
// the rest are flagged inactive.
func UnderutilizedAssets(ctx context.Context, client *snow.Client, opts UnderutilizedOptions) (*UnderutilizedReport, error) {
	if opts.DaysThreshold == 0 {
		opts.DaysThreshold = defaultDaysThreshold
	}
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}
	if err := validateMin("days_threshold", opts.DaysThreshold); err != nil {
		return nil, err
	}

	cutoff := startOfDay(time.Now()).AddDate(0, 0, -opts.DaysThreshold)
	query := "install_statusINIn use,Installed^sys_updated_on<" + isoDate(cutoff)

	records, err := client.List(ctx, snow.TableHardware, snow.ListOptions{
		Query: query,
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	report := &UnderutilizedReport{UnderutilizedAssets: make([]UnderutilizedAsset, 0, len(records))}
	for _, r := range records {
		cost := snow.SafeFloat(r["cost"])
		assigned := r.Display("assigned_to")

		reason := ReasonInactive
		if assigned == "" {
			reason = ReasonUnassigned
		}

		report.EstimatedWasteCost += cost
		report.UnderutilizedAssets = append(report.UnderutilizedAssets, UnderutilizedAsset{
			SysID:         r.Display("sys_id"),
			AssetTag:      r.Display("asset_tag"),
			DisplayName:   r.Display("display_name"),
			InstallStatus: r.Display("install_status"),
			AssignedTo:    assigned,
			SysUpdatedOn:  r.Display("sys_updated_on"),
			Cost:          round2(cost),
			Reason:        reason,
		})
	}

	report.Count = len(report.UnderutilizedAssets)
	report.EstimatedWasteCost = round2(report.EstimatedWasteCost)
	return report, nil
}
