package snow

// Normalized projections of raw table records. Every field is independently
// optional because ServiceNow records are frequently partially populated:
// string fields degrade to "", numeric and date fields to nil. Constructors
// never fail; an unparseable field degrades instead of rejecting the record.
//
// Relational fields (model, model_category, assigned_to, location, vendor,
// software_model) extract the display value. The hardware ci field is the one
// exception: it extracts the raw value, because it is used to join against
// cmdb_ci sys_ids.

// Table names used by the reporting operations.
const (
	TableAsset      = "alm_asset"
	TableHardware   = "alm_hardware"
	TableLicense    = "alm_license"
	TableContract   = "ast_contract"
	TableCI         = "cmdb_ci"
	TableProperties = "sys_properties"
)

// Asset is the shared projection of an alm_asset record.
type Asset struct {
	SysID         string   `json:"sys_id,omitempty"`
	AssetTag      string   `json:"asset_tag,omitempty"`
	DisplayName   string   `json:"display_name,omitempty"`
	Model         string   `json:"model,omitempty"`
	ModelCategory string   `json:"model_category,omitempty"`
	InstallStatus string   `json:"install_status,omitempty"`
	Substatus     string   `json:"substatus,omitempty"`
	AssignedTo    string   `json:"assigned_to,omitempty"`
	Location      string   `json:"location,omitempty"`
	Cost          *float64 `json:"cost"`
	PurchaseDate  *Date    `json:"purchase_date"`
	SysCreatedOn  string   `json:"sys_created_on,omitempty"`
	SysUpdatedOn  string   `json:"sys_updated_on,omitempty"`
}

// AssetFromRecord normalizes a raw alm_asset record.
func AssetFromRecord(r Record) Asset {
	return Asset{
		SysID:         r.Display("sys_id"),
		AssetTag:      r.Display("asset_tag"),
		DisplayName:   r.Display("display_name"),
		Model:         r.Display("model"),
		ModelCategory: r.Display("model_category"),
		InstallStatus: r.Display("install_status"),
		Substatus:     r.Display("substatus"),
		AssignedTo:    r.Display("assigned_to"),
		Location:      r.Display("location"),
		Cost:          ParseFloat(r["cost"]),
		PurchaseDate:  ParseDate(r["purchase_date"]),
		SysCreatedOn:  r.Display("sys_created_on"),
		SysUpdatedOn:  r.Display("sys_updated_on"),
	}
}

// HardwareAsset is the projection of an alm_hardware record.
type HardwareAsset struct {
	SysID              string   `json:"sys_id,omitempty"`
	AssetTag           string   `json:"asset_tag,omitempty"`
	DisplayName        string   `json:"display_name,omitempty"`
	Model              string   `json:"model,omitempty"`
	ModelCategory      string   `json:"model_category,omitempty"`
	SerialNumber       string   `json:"serial_number,omitempty"`
	AssignedTo         string   `json:"assigned_to,omitempty"`
	Location           string   `json:"location,omitempty"`
	InstallStatus      string   `json:"install_status,omitempty"`
	Substatus          string   `json:"substatus,omitempty"`
	Cost               *float64 `json:"cost"`
	PurchaseDate       *Date    `json:"purchase_date"`
	WarrantyExpiration *Date    `json:"warranty_expiration"`
	CI                 string   `json:"ci,omitempty"`
	SysUpdatedOn       string   `json:"sys_updated_on,omitempty"`
}

// HardwareFromRecord normalizes a raw alm_hardware record.
func HardwareFromRecord(r Record) HardwareAsset {
	return HardwareAsset{
		SysID:              r.Display("sys_id"),
		AssetTag:           r.Display("asset_tag"),
		DisplayName:        r.Display("display_name"),
		Model:              r.Display("model"),
		ModelCategory:      r.Display("model_category"),
		SerialNumber:       r.Display("serial_number"),
		AssignedTo:         r.Display("assigned_to"),
		Location:           r.Display("location"),
		InstallStatus:      r.Display("install_status"),
		Substatus:          r.Display("substatus"),
		Cost:               ParseFloat(r["cost"]),
		PurchaseDate:       ParseDate(r["purchase_date"]),
		WarrantyExpiration: ParseDate(r["warranty_expiration"]),
		CI:                 r.Ref("ci"),
		SysUpdatedOn:       r.Display("sys_updated_on"),
	}
}

// SoftwareLicense is the projection of an alm_license record.
type SoftwareLicense struct {
	SysID        string   `json:"sys_id,omitempty"`
	AssetTag     string   `json:"asset_tag,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
	Product      string   `json:"product,omitempty"`
	Vendor       string   `json:"vendor,omitempty"`
	LicenseKey   string   `json:"license_key,omitempty"`
	Rights       *int     `json:"rights"`
	Allocated    *int     `json:"allocated"`
	Cost         *float64 `json:"cost"`
	StartDate    *Date    `json:"start_date"`
	EndDate      *Date    `json:"end_date"`
	SysUpdatedOn string   `json:"sys_updated_on,omitempty"`
}

// LicenseFromRecord normalizes a raw alm_license record. The product name
// lives in the software_model reference.
func LicenseFromRecord(r Record) SoftwareLicense {
	return SoftwareLicense{
		SysID:        r.Display("sys_id"),
		AssetTag:     r.Display("asset_tag"),
		DisplayName:  r.Display("display_name"),
		Product:      r.Display("software_model"),
		Vendor:       r.Display("vendor"),
		LicenseKey:   r.Display("license_key"),
		Rights:       ParseInt(r["rights"]),
		Allocated:    ParseInt(r["allocated"]),
		Cost:         ParseFloat(r["cost"]),
		StartDate:    ParseDate(r["start_date"]),
		EndDate:      ParseDate(r["end_date"]),
		SysUpdatedOn: r.Display("sys_updated_on"),
	}
}

// Contract is the projection of an ast_contract record.
type Contract struct {
	SysID            string   `json:"sys_id,omitempty"`
	ContractNumber   string   `json:"contract_number,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	Vendor           string   `json:"vendor,omitempty"`
	Starts           *Date    `json:"starts"`
	Ends             *Date    `json:"ends"`
	Cost             *float64 `json:"cost"`
	PaymentAmount    *float64 `json:"payment_amount"`
	State            string   `json:"state,omitempty"`
	SysUpdatedOn     string   `json:"sys_updated_on,omitempty"`
}

// ContractFromRecord normalizes a raw ast_contract record.
func ContractFromRecord(r Record) Contract {
	return Contract{
		SysID:            r.Display("sys_id"),
		ContractNumber:   r.Display("number"),
		ShortDescription: r.Display("short_description"),
		Vendor:           r.Display("vendor"),
		Starts:           ParseDate(r["starts"]),
		Ends:             ParseDate(r["ends"]),
		Cost:             ParseFloat(r["cost"]),
		PaymentAmount:    ParseFloat(r["payment_amount"]),
		State:            r.Display("state"),
		SysUpdatedOn:     r.Display("sys_updated_on"),
	}
}

// Lifecycle carries lifecycle-stage information derived from an alm_asset
// record plus the computed stage and stage duration.
type Lifecycle struct {
	SysID         string `json:"sys_id,omitempty"`
	AssetTag      string `json:"asset_tag,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	Stage         string `json:"stage,omitempty"`
	InstallStatus string `json:"install_status,omitempty"`
	Substatus     string `json:"substatus,omitempty"`
	InstallDate   *Date  `json:"install_date"`
	RetiredDate   *Date  `json:"retired_date"`
	DisposalDate  *Date  `json:"disposal_date"`
	SysUpdatedOn  string `json:"sys_updated_on,omitempty"`
	DaysInStage   *int   `json:"days_in_stage"`
}

// LifecycleFromRecord normalizes a raw asset record into lifecycle form.
// Stage and daysInStage are computed by the caller.
func LifecycleFromRecord(r Record, stage string, daysInStage *int) Lifecycle {
	return Lifecycle{
		SysID:         r.Display("sys_id"),
		AssetTag:      r.Display("asset_tag"),
		DisplayName:   r.Display("display_name"),
		Stage:         stage,
		InstallStatus: r.Display("install_status"),
		Substatus:     r.Display("substatus"),
		InstallDate:   ParseDate(r["install_date"]),
		RetiredDate:   ParseDate(r["retired_date"]),
		DisposalDate:  ParseDate(r["disposal_date"]),
		SysUpdatedOn:  r.Display("sys_updated_on"),
		DaysInStage:   daysInStage,
	}
}

// HealthMetrics is the aggregate snapshot returned by the health dashboard.
type HealthMetrics struct {
	TotalAssets          int     `json:"total_assets"`
	ActiveAssets         int     `json:"active_assets"`
	RetiredAssets        int     `json:"retired_assets"`
	MissingAssets        int     `json:"missing_assets"`
	InStockAssets        int     `json:"in_stock_assets"`
	ExpiringContracts30d int     `json:"expiring_contracts_30d"`
	UnderutilizedCount   int     `json:"underutilized_count"`
	TotalAssetValue      float64 `json:"total_asset_value"`
}
