package reports

import (
	"context"

	"github.com/opsforge/snowassets/pkg/snow"
)

// maintenanceRate estimates annual maintenance as a share of purchase cost.
// Policy constant inherited from the asset-management playbook, not derived
// from contract data.
const maintenanceRate = 0.15

const defaultCostLimit = 200

// CostOptions scope a total-cost-of-ownership calculation.
type CostOptions struct {
	Department    string
	ModelCategory string
	Limit         int // default: 200
}

// AssetCost is the per-asset cost breakdown.
type AssetCost struct {
	SysID             string  `json:"sys_id,omitempty"`
	AssetTag          string  `json:"asset_tag,omitempty"`
	DisplayName       string  `json:"display_name,omitempty"`
	PurchaseCost      float64 `json:"purchase_cost"`
	AnnualMaintenance float64 `json:"annual_maintenance"`
	TCO               float64 `json:"tco"`
}

// CostReport totals purchase and estimated maintenance cost across the
// matching hardware assets.
type CostReport struct {
	TotalPurchaseCost      float64     `json:"total_purchase_cost"`
	TotalAnnualMaintenance float64     `json:"total_annual_maintenance"`
	TotalTCO               float64     `json:"total_tco"`
	AssetCount             int         `json:"asset_count"`
	Assets                 []AssetCost `json:"assets"`
}

// AssetCosts calculates total cost of ownership for hardware assets.
func AssetCosts(ctx context.Context, client *snow.Client, opts CostOptions) (*CostReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultCostLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	var parts []string
	if opts.Department != "" {
		parts = append(parts, "department="+opts.Department)
	}
	if opts.ModelCategory != "" {
		parts = append(parts, "model_category="+opts.ModelCategory)
	}

	records, err := client.List(ctx, snow.TableHardware, snow.ListOptions{
		Query: joinQuery(parts...),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	report := &CostReport{Assets: make([]AssetCost, 0, len(records))}
	for _, r := range records {
		purchase := snow.SafeFloat(r["cost"])
		maintenance := round2(purchase * maintenanceRate)
		report.TotalPurchaseCost += purchase
		report.TotalAnnualMaintenance += maintenance
		report.Assets = append(report.Assets, AssetCost{
			SysID:             r.Display("sys_id"),
			AssetTag:          r.Display("asset_tag"),
			DisplayName:       r.Display("display_name"),
			PurchaseCost:      purchase,
			AnnualMaintenance: maintenance,
			TCO:               round2(purchase + maintenance),
		})
	}

	report.TotalTCO = round2(report.TotalPurchaseCost + report.TotalAnnualMaintenance)
	report.TotalPurchaseCost = round2(report.TotalPurchaseCost)
	report.TotalAnnualMaintenance = round2(report.TotalAnnualMaintenance)
	report.AssetCount = len(report.Assets)
	return report, nil
}
