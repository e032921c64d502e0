package reports

import (
	"context"

	"github.com/opsforge/snowassets/pkg/snow"
)

const defaultReconcileLimit = 200

// ReconcileOptions scope the asset/CI reconciliation.
type ReconcileOptions struct {
	ModelCategory string
	Limit         int // default: 200, applied to both tables
}

// ReconcileMatch links a hardware asset to its configuration item.
type ReconcileMatch struct {
	AssetSysID string `json:"asset_sys_id,omitempty"`
	AssetTag   string `json:"asset_tag,omitempty"`
	CISysID    string `json:"ci_sys_id,omitempty"`
	CIName     string `json:"ci_name,omitempty"`
}

// UnmatchedAsset is a hardware asset whose ci reference resolves to nothing.
type UnmatchedAsset struct {
	SysID       string `json:"sys_id,omitempty"`
	AssetTag    string `json:"asset_tag,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// UnmatchedCI is a configuration item no asset points at.
type UnmatchedCI struct {
	SysID string `json:"sys_id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ReconcileReport partitions assets and CIs into matched and unmatched sets.
type ReconcileReport struct {
	Matched              []ReconcileMatch `json:"matched"`
	MatchedCount         int              `json:"matched_count"`
	UnmatchedAssets      []UnmatchedAsset `json:"unmatched_assets"`
	UnmatchedAssetsCount int              `json:"unmatched_assets_count"`
	UnmatchedCIs         []UnmatchedCI    `json:"unmatched_cis"`
	UnmatchedCIsCount    int              `json:"unmatched_cis_count"`
}

// ReconcileAssets joins alm_hardware against cmdb_ci through each asset's ci
// reference. The join key is the reference's raw sys_id value, not its
// display label.
func ReconcileAssets(ctx context.Context, client *snow.Client, opts ReconcileOptions) (*ReconcileReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultReconcileLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	query := ""
	if opts.ModelCategory != "" {
		query = "model_category=" + opts.ModelCategory
	}

	assets, err := client.List(ctx, snow.TableHardware, snow.ListOptions{
		Query: query,
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	cis, err := client.List(ctx, snow.TableCI, snow.ListOptions{Limit: opts.Limit})
	if err != nil {
		return nil, err
	}

	ciByID := make(map[string]snow.Record, len(cis))
	for _, ci := range cis {
		if id := ci.Display("sys_id"); id != "" {
			ciByID[id] = ci
		}
	}

	report := &ReconcileReport{
		Matched:         []ReconcileMatch{},
		UnmatchedAssets: []UnmatchedAsset{},
		UnmatchedCIs:    []UnmatchedCI{},
	}
	seen := make(map[string]bool)

	for _, asset := range assets {
		ciID := asset.Ref("ci")
		if ci, ok := ciByID[ciID]; ciID != "" && ok {
			report.Matched = append(report.Matched, ReconcileMatch{
				AssetSysID: asset.Display("sys_id"),
				AssetTag:   asset.Display("asset_tag"),
				CISysID:    ciID,
				CIName:     ci.Display("name"),
			})
			seen[ciID] = true
		} else {
			report.UnmatchedAssets = append(report.UnmatchedAssets, UnmatchedAsset{
				SysID:       asset.Display("sys_id"),
				AssetTag:    asset.Display("asset_tag"),
				DisplayName: asset.Display("display_name"),
			})
		}
	}

	for _, ci := range cis {
		if !seen[ci.Display("sys_id")] {
			report.UnmatchedCIs = append(report.UnmatchedCIs, UnmatchedCI{
				SysID: ci.Display("sys_id"),
				Name:  ci.Display("name"),
			})
		}
	}

	report.MatchedCount = len(report.Matched)
	report.UnmatchedAssetsCount = len(report.UnmatchedAssets)
	report.UnmatchedCIsCount = len(report.UnmatchedCIs)
	return report, nil
}
