package reports

import (
	"context"
	"math"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

// Useful-life defaults (years) by model category, with a fallback for
// anything uncategorised. Policy constants.
var usefulLifeByCategory = map[string]int{
	"Computer":     3,
	"Server":       5,
	"Network Gear": 5,
}

const (
	fallbackUsefulLife       = 4
	defaultDepreciationLimit = 100

	daysPerYear = 365.25
)

// DepreciationOptions scope a depreciation schedule. UsefulLifeYears, when
// set, overrides the per-category defaults for every asset.
type DepreciationOptions struct {
	ModelCategory   string
	UsefulLifeYears int
	Limit           int // default: 100
}

// DepreciationEntry is the straight-line schedule for one asset.
type DepreciationEntry struct {
	SysID                    string  `json:"sys_id,omitempty"`
	AssetTag                 string  `json:"asset_tag,omitempty"`
	Cost                     float64 `json:"cost"`
	PurchaseDate             string  `json:"purchase_date"`
	UsefulLifeYears          int     `json:"useful_life_years"`
	YearsOwned               float64 `json:"years_owned"`
	AnnualDepreciation       float64 `json:"annual_depreciation"`
	AccumulatedDepreciation  float64 `json:"accumulated_depreciation"`
	CurrentValue             float64 `json:"current_value"`
	RemainingUsefulLifeYears float64 `json:"remaining_useful_life_years"`
}

// DepreciationReport lists per-asset schedules plus the grand total.
type DepreciationReport struct {
	Assets                       []DepreciationEntry `json:"assets"`
	Count                        int                 `json:"count"`
	TotalAccumulatedDepreciation float64             `json:"total_accumulated_depreciation"`
}

// Depreciation computes straight-line depreciation for hardware assets.
// Records without a purchase date or a positive cost are skipped: there is
// nothing to depreciate.
func Depreciation(ctx context.Context, client *snow.Client, opts DepreciationOptions) (*DepreciationReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultDepreciationLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	query := ""
	if opts.ModelCategory != "" {
		query = "model_category=" + opts.ModelCategory
	}

	records, err := client.List(ctx, snow.TableHardware, snow.ListOptions{
		Query: query,
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	report := &DepreciationReport{Assets: []DepreciationEntry{}}

	for _, r := range records {
		cost := snow.SafeFloat(r["cost"])
		purchased := snow.ParseDate(r["purchase_date"])
		if purchased == nil || cost <= 0 {
			continue
		}

		life := opts.UsefulLifeYears
		if life == 0 {
			category := r.Display("model_category")
			var ok bool
			if life, ok = usefulLifeByCategory[category]; !ok {
				life = fallbackUsefulLife
			}
		}

		yearsOwned := today.Sub(purchased.Time).Hours() / 24 / daysPerYear
		annual := cost / float64(life)
		accumulated := math.Min(cost, annual*yearsOwned)
		current := math.Max(0, cost-accumulated)
		remaining := math.Max(0, float64(life)-yearsOwned)

		report.TotalAccumulatedDepreciation += accumulated
		report.Assets = append(report.Assets, DepreciationEntry{
			SysID:                    r.Display("sys_id"),
			AssetTag:                 r.Display("asset_tag"),
			Cost:                     round2(cost),
			PurchaseDate:             purchased.Format("2006-01-02"),
			UsefulLifeYears:          life,
			YearsOwned:               round2(yearsOwned),
			AnnualDepreciation:       round2(annual),
			AccumulatedDepreciation:  round2(accumulated),
			CurrentValue:             round2(current),
			RemainingUsefulLifeYears: round2(remaining),
		})
	}

	report.Count = len(report.Assets)
	report.TotalAccumulatedDepreciation = round2(report.TotalAccumulatedDepreciation)
	return report, nil
}
