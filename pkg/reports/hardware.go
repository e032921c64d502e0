package reports

import (
	"context"

	"github.com/opsforge/snowassets/pkg/snow"
)

const defaultQueryLimit = 50

// HardwareOptions filter a hardware query. Name-like fields use substring
// matching; status and category match exactly.
type HardwareOptions struct {
	Status        string
	Department    string
	Model         string
	ModelCategory string
	AssignedTo    string
	Location      string
	Limit         int // default: 50
}

func (o HardwareOptions) query() string {
	var parts []string
	if o.Status != "" {
		parts = append(parts, "install_status="+o.Status)
	}
	if o.Department != "" {
		parts = append(parts, "department="+o.Department)
	}
	if o.Model != "" {
		parts = append(parts, "modelLIKE"+o.Model)
	}
	if o.ModelCategory != "" {
		parts = append(parts, "model_category="+o.ModelCategory)
	}
	if o.AssignedTo != "" {
		parts = append(parts, "assigned_toLIKE"+o.AssignedTo)
	}
	if o.Location != "" {
		parts = append(parts, "locationLIKE"+o.Location)
	}
	return joinQuery(parts...)
}

// HardwareReport lists normalized hardware assets matching the filters.
type HardwareReport struct {
	Assets []snow.HardwareAsset `json:"assets"`
	Count  int                  `json:"count"`
}

// QueryHardware searches the alm_hardware table.
func QueryHardware(ctx context.Context, client *snow.Client, opts HardwareOptions) (*HardwareReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	records, err := client.List(ctx, snow.TableHardware, snow.ListOptions{
		Query: opts.query(),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	assets := make([]snow.HardwareAsset, 0, len(records))
	for _, r := range records {
		assets = append(assets, snow.HardwareFromRecord(r))
	}
	return &HardwareReport{Assets: assets, Count: len(assets)}, nil
}
