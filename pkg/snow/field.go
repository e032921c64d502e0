package snow

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Field is a single raw value from a ServiceNow record. The Table API returns
// a field in one of three shapes: absent/null, a plain scalar, or a reference
// object carrying a display_value and a value (the sys_id of the linked
// record). Field decodes all three into one type so downstream code never has
// to type-switch on raw JSON.
type Field struct {
	raw     json.RawMessage
	scalar  string
	display string
	value   string
	isRef   bool
	present bool
}

// reference is the wire shape of a reference-field object.
type reference struct {
	DisplayValue string `json:"display_value"`
	Value        string `json:"value"`
	Link         string `json:"link"`
}

func (f *Field) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	f.present = true

	switch trimmed[0] {
	case '{':
		var ref reference
		if err := json.Unmarshal(trimmed, &ref); err != nil {
			// Unexpected object shape; keep raw bytes, treat as empty.
			f.present = false
			return nil
		}
		f.isRef = true
		f.display = ref.DisplayValue
		f.value = ref.Value
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			f.present = false
			return nil
		}
		f.scalar = s
	default:
		// Number, bool, or array; keep the literal text.
		f.scalar = string(trimmed)
	}
	return nil
}

// MarshalJSON re-emits the original bytes so a record survives a decode/encode
// round trip unmodified.
func (f Field) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// IsEmpty reports whether the field was absent, null, or an empty string.
func (f Field) IsEmpty() bool {
	if !f.present {
		return true
	}
	if f.isRef {
		return f.display == "" && f.value == ""
	}
	return f.scalar == ""
}

// Display returns the human-readable value: display_value for reference
// fields, the scalar itself otherwise.
func (f Field) Display() string {
	if f.isRef {
		return f.display
	}
	return f.scalar
}

// Ref returns the machine identifier: the raw value for reference fields, the
// scalar itself otherwise. Used for fields that link records, such as the
// hardware ci field.
func (f Field) Ref() string {
	if f.isRef {
		return f.value
	}
	return f.scalar
}

// Record is one raw row from a table, as returned inside the response
// envelope's result. Values stay untouched until a caller normalizes them.
type Record map[string]Field

// Display returns the display value of a field, or "" when absent.
func (r Record) Display(key string) string {
	return r[key].Display()
}

// Ref returns the raw identifier of a field, or "" when absent.
func (r Record) Ref(key string) string {
	return r[key].Ref()
}

// Date is a calendar day without a time component. ServiceNow date fields
// carry no timezone, so neither does this.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format("2006-01-02"))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a date field, accepting both bare dates and datetime
// strings ("2024-06-15 10:30:00" yields 2024-06-15). Any unparseable or
// empty value yields nil; a malformed record never aborts a listing.
func ParseDate(f Field) *Date {
	s := strings.TrimSpace(f.Display())
	if s == "" {
		return nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &Date{Time: day}
}

// ParseFloat parses a numeric field, yielding nil on empty or unparseable
// input.
func ParseFloat(f Field) *float64 {
	s := strings.TrimSpace(f.Display())
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInt parses an integer field. Numeric strings with a decimal point are
// accepted and truncated ("42.7" yields 42). Yields nil on failure.
func ParseInt(f Field) *int {
	v := ParseFloat(f)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

// SafeFloat is ParseFloat defaulting to zero. Reporting arithmetic uses it so
// a malformed value contributes nothing to an aggregate instead of poisoning
// it.
func SafeFloat(f Field) float64 {
	if v := ParseFloat(f); v != nil {
		return *v
	}
	return 0
}

// SafeInt is ParseInt defaulting to zero.
func SafeInt(f Field) int {
	if v := ParseInt(f); v != nil {
		return *v
	}
	return 0
}
