package reports

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderutilizedAssets(t *testing.T) {
	var query string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("sysparm_query")
		fmt.Fprint(w, resultList(`[
			{"sys_id": "hw1", "asset_tag": "P100", "assigned_to": "", "cost": "1200.50", "sys_updated_on": "2024-01-01 10:00:00"},
			{"sys_id": "hw2", "asset_tag": "P101", "assigned_to": {"display_value": "Ada Lovelace", "value": "u1"}, "cost": "800", "sys_updated_on": "2024-02-01 10:00:00"}
		]`))
	})

	result, err := UnderutilizedAssets(context.Background(), client, UnderutilizedOptions{DaysThreshold: 120})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "install_statusINIn use,Installed^sys_updated_on<"))

	require.Equal(t, 2, result.Count)
	assert.Equal(t, ReasonUnassigned, result.UnderutilizedAssets[0].Reason)
	assert.Equal(t, ReasonInactive, result.UnderutilizedAssets[1].Reason)
	assert.Equal(t, "Ada Lovelace", result.UnderutilizedAssets[1].AssignedTo)
	assert.Equal(t, 2000.5, result.EstimatedWasteCost)
}

func TestUnderutilizedAssets_InvalidThreshold(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := UnderutilizedAssets(context.Background(), client, UnderutilizedOptions{DaysThreshold: -5})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestReconcileAssets(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/table/alm_hardware"):
			fmt.Fprint(w, resultList(`[
				{"sys_id": "a1", "asset_tag": "P100", "ci": {"display_value": "laptop-01", "value": "ci1"}},
				{"sys_id": "a2", "asset_tag": "P101", "ci": {"display_value": "laptop-02", "value": "ci-missing"}},
				{"sys_id": "a3", "asset_tag": "P102", "display_name": "Spare", "ci": ""}
			]`))
		case strings.Contains(r.URL.Path, "/table/cmdb_ci"):
			fmt.Fprint(w, resultList(`[
				{"sys_id": "ci1", "name": "laptop-01"},
				{"sys_id": "ci2", "name": "orphan-ci"}
			]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := ReconcileAssets(context.Background(), client, ReconcileOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, "a1", result.Matched[0].AssetSysID)
	assert.Equal(t, "ci1", result.Matched[0].CISysID)
	assert.Equal(t, "laptop-01", result.Matched[0].CIName)

	require.Equal(t, 2, result.UnmatchedAssetsCount)
	assert.Equal(t, "a2", result.UnmatchedAssets[0].SysID)
	assert.Equal(t, "a3", result.UnmatchedAssets[1].SysID)

	require.Equal(t, 1, result.UnmatchedCIsCount)
	assert.Equal(t, "ci2", result.UnmatchedCIs[0].SysID)
	assert.Equal(t, "orphan-ci", result.UnmatchedCIs[0].Name)
}

func TestHealthMetrics(t *testing.T) {
	var contractQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/table/alm_asset"):
			assert.Equal(t, "locationLIKEBerlin", r.URL.Query().Get("sysparm_query"))
			fmt.Fprint(w, resultList(`[
				{"sys_id": "a1", "install_status": "In use", "cost": "100"},
				{"sys_id": "a2", "install_status": "Installed", "cost": "200.10"},
				{"sys_id": "a3", "install_status": "Retired", "cost": "50"},
				{"sys_id": "a4", "install_status": "Missing"},
				{"sys_id": "a5", "install_status": "In stock", "cost": "25"},
				{"sys_id": "a6", "install_status": "On order", "cost": "75"}
			]`))
		case strings.Contains(r.URL.Path, "/table/ast_contract"):
			contractQuery = r.URL.Query().Get("sysparm_query")
			fmt.Fprint(w, resultList(`[{"sys_id": "c1"}, {"sys_id": "c2"}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := HealthMetrics(context.Background(), client, HealthOptions{Location: "Berlin"})
	require.NoError(t, err)

	m := result.Metrics
	assert.Equal(t, 6, m.TotalAssets)
	assert.Equal(t, 2, m.ActiveAssets)
	assert.Equal(t, 1, m.RetiredAssets)
	assert.Equal(t, 1, m.MissingAssets)
	assert.Equal(t, 1, m.InStockAssets)
	assert.Equal(t, 450.1, m.TotalAssetValue)
	assert.Equal(t, 2, m.ExpiringContracts30d)

	assert.Contains(t, contractQuery, "ends>=")
	assert.Contains(t, contractQuery, "^ends<=")
}

func TestExpiringContracts(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("sysparm_query")
		assert.Contains(t, q, "vendorLIKEAcme")
		fmt.Fprintf(w, resultList(`[
			{"sys_id": "c1", "number": "CNTR001", "vendor": "Acme", "ends": "%s", "cost": "1000"},
			{"sys_id": "c2", "number": "CNTR002", "vendor": "Acme", "ends": "%s", "cost": "500"},
			{"sys_id": "c3", "number": "CNTR003", "vendor": "Acme", "cost": "9000"},
			{"sys_id": "c4", "number": "CNTR004", "vendor": "Acme", "ends": "%s"}
		]`), daysFromNow(45), daysFromNow(10), daysFromNow(80))
	})

	result, err := ExpiringContracts(context.Background(), client, ExpiringOptions{Vendor: "Acme"})
	require.NoError(t, err)

	require.Equal(t, 4, result.Count)

	// Soonest first; the contract without an end date sorts last.
	assert.Equal(t, "CNTR002", result.Contracts[0].ContractNumber)
	assert.Equal(t, UrgencyCritical, result.Contracts[0].Urgency)
	assert.Equal(t, "CNTR001", result.Contracts[1].ContractNumber)
	assert.Equal(t, UrgencyWarning, result.Contracts[1].Urgency)
	assert.Equal(t, "CNTR004", result.Contracts[2].ContractNumber)
	assert.Equal(t, UrgencyNotice, result.Contracts[2].Urgency)
	assert.Equal(t, "CNTR003", result.Contracts[3].ContractNumber)
	assert.Equal(t, UrgencyUnknown, result.Contracts[3].Urgency)
	assert.Nil(t, result.Contracts[3].DaysRemaining)

	require.NotNil(t, result.Contracts[0].DaysRemaining)
	assert.Equal(t, 10, *result.Contracts[0].DaysRemaining)

	assert.Equal(t, 10500.0, result.TotalValueAtRisk)
}

func TestExpiringContracts_ExpiredBucket(t *testing.T) {
	var query string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("sysparm_query")
		fmt.Fprintf(w, resultList(`[
			{"sys_id": "c1", "number": "CNTR005", "ends": "%s", "cost": "250"}
		]`), daysFromNow(-10))
	})

	result, err := ExpiringContracts(context.Background(), client, ExpiringOptions{IncludeExpired: true})
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	assert.Equal(t, UrgencyExpired, result.Contracts[0].Urgency)
	require.NotNil(t, result.Contracts[0].DaysRemaining)
	assert.Equal(t, -10, *result.Contracts[0].DaysRemaining)

	// The lookback widens the window start to before today.
	assert.Contains(t, query, "ends>=")
}

func TestExpiringContracts_InvalidDaysAhead(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := ExpiringContracts(context.Background(), client, ExpiringOptions{DaysAhead: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
