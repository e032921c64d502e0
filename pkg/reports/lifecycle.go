package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/opsforge/snowassets/pkg/snow"
)

// stageByStatus maps install_status values to human-readable lifecycle
// stages. Unknown statuses pass through unchanged.
var stageByStatus = map[string]string{
	"On order":       "Procurement",
	"In stock":       "Received/Stocked",
	"In transit":     "In Transit",
	"Installed":      "Active/Deployed",
	"In use":         "Active/Deployed",
	"In maintenance": "Maintenance",
	"Retired":        "Retired",
	"Missing":        "Missing",
	"Disposed":       "Disposed",
	"Absent":         "Missing",
}

// LifecycleOptions identify the asset to inspect, by sys_id or asset_tag.
type LifecycleOptions struct {
	SysID    string
	AssetTag string
}

// LifecycleReport carries the lifecycle stage of one asset and how long it
// has been in that stage.
type LifecycleReport struct {
	Lifecycle snow.Lifecycle `json:"lifecycle"`
}

// AssetLifecycle resolves the lifecycle stage of an asset from its
// install_status, with days in stage derived from sys_updated_on.
func AssetLifecycle(ctx context.Context, client *snow.Client, opts LifecycleOptions) (*LifecycleReport, error) {
	if opts.SysID == "" && opts.AssetTag == "" {
		return nil, &ValidationError{msg: "provide either sys_id or asset_tag"}
	}

	var record snow.Record
	if opts.SysID != "" {
		var err error
		record, err = client.Get(ctx, snow.TableAsset, opts.SysID, snow.GetOptions{})
		if err != nil {
			return nil, err
		}
	} else {
		records, err := client.List(ctx, snow.TableAsset, snow.ListOptions{
			Query: "asset_tag=" + opts.AssetTag,
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, &snow.Error{
				Kind:    snow.KindNotFound,
				Message: fmt.Sprintf("asset not found: asset_tag=%s", opts.AssetTag),
				Table:   snow.TableAsset,
			}
		}
		record = records[0]
	}

	status := record.Display("install_status")
	stage := status
	if mapped, ok := stageByStatus[status]; ok {
		stage = mapped
	}
	if stage == "" {
		stage = "Unknown"
	}

	days := daysSince(record["sys_updated_on"], time.Now())
	lifecycle := snow.LifecycleFromRecord(record, stage, days)
	return &LifecycleReport{Lifecycle: lifecycle}, nil
}
