package reports

import (
	"context"

	"github.com/opsforge/snowassets/pkg/snow"
)

// ContractOptions filter a contract query.
type ContractOptions struct {
	AssetSysID string
	Vendor     string
	State      string
	Limit      int // default: 50
}

func (o ContractOptions) query() string {
	var parts []string
	if o.AssetSysID != "" {
		parts = append(parts, "asset="+o.AssetSysID)
	}
	if o.Vendor != "" {
		parts = append(parts, "vendorLIKE"+o.Vendor)
	}
	if o.State != "" {
		parts = append(parts, "state="+o.State)
	}
	return joinQuery(parts...)
}

// ContractReport lists normalized contracts matching the filters.
type ContractReport struct {
	Contracts []snow.Contract `json:"contracts"`
	Count     int             `json:"count"`
}

// QueryContracts searches the ast_contract table, optionally scoped to one
// asset, vendor, or state.
func QueryContracts(ctx context.Context, client *snow.Client, opts ContractOptions) (*ContractReport, error) {
	if opts.Limit == 0 {
		opts.Limit = defaultQueryLimit
	}
	if err := validateLimit(opts.Limit); err != nil {
		return nil, err
	}

	records, err := client.List(ctx, snow.TableContract, snow.ListOptions{
		Query: opts.query(),
		Limit: opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	contracts := make([]snow.Contract, 0, len(records))
	for _, r := range records {
		contracts = append(contracts, snow.ContractFromRecord(r))
	}
	return &ContractReport{Contracts: contracts, Count: len(contracts)}, nil
}
