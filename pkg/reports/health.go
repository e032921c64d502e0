package reports

import (
	"context"
	"strings"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

// healthScanLimit bounds both dashboard queries; the dashboard is a sample,
// not a full census.
const healthScanLimit = 500

// HealthOptions optionally scope the dashboard to a location or category.
type HealthOptions struct {
	Location      string
	ModelCategory string
}

// HealthReport wraps the aggregate metrics snapshot.
type HealthReport struct {
	Metrics snow.HealthMetrics `json:"metrics"`
}

// HealthMetrics builds the asset health dashboard: status counts and total
// value over alm_asset plus the number of contracts ending within 30 days.
func HealthMetrics(ctx context.Context, client *snow.Client, opts HealthOptions) (*HealthReport, error) {
	var parts []string
	if opts.Location != "" {
		parts = append(parts, "locationLIKE"+opts.Location)
	}
	if opts.ModelCategory != "" {
		parts = append(parts, "model_category="+opts.ModelCategory)
	}

	assets, err := client.List(ctx, snow.TableAsset, snow.ListOptions{
		Query: joinQuery(parts...),
		Limit: healthScanLimit,
	})
	if err != nil {
		return nil, err
	}

	metrics := snow.HealthMetrics{TotalAssets: len(assets)}
	for _, a := range assets {
		switch strings.ToLower(a.Display("install_status")) {
		case "in use", "installed":
			metrics.ActiveAssets++
		case "retired":
			metrics.RetiredAssets++
		case "missing":
			metrics.MissingAssets++
		case "in stock":
			metrics.InStockAssets++
		}
		metrics.TotalAssetValue += snow.SafeFloat(a["cost"])
	}
	metrics.TotalAssetValue = round2(metrics.TotalAssetValue)

	today := startOfDay(time.Now())
	contractQuery := joinQuery(
		"ends>="+isoDate(today),
		"ends<="+isoDate(today.AddDate(0, 0, 30)),
	)
	expiring, err := client.List(ctx, snow.TableContract, snow.ListOptions{
		Query: contractQuery,
		Limit: healthScanLimit,
	})
	if err != nil {
		return nil, err
	}
	metrics.ExpiringContracts30d = len(expiring)

	return &HealthReport{Metrics: metrics}, nil
}
