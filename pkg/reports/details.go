package reports

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/pkg/snow"
)

// DetailsOptions identify a single asset. At least one of SysID or AssetTag
// must be set; SysID wins when both are.
type DetailsOptions struct {
	SysID    string
	AssetTag string
}

// DetailsReport carries the full normalized record of one asset.
type DetailsReport struct {
	Asset snow.Asset `json:"asset"`
}

// AssetDetails fetches one alm_asset record by sys_id or asset_tag.
func AssetDetails(ctx context.Context, client *snow.Client, opts DetailsOptions) (*DetailsReport, error) {
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

	return &DetailsReport{Asset: snow.AssetFromRecord(record)}, nil
}
