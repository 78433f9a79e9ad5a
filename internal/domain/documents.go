package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Documents holds references to uploaded files for an inquiry, stored as a
// JSON array in a text column. Upload is not implemented in the current
// flow, so the array is always empty, but the column round-trips so the
// admin surface never sees null.
type Documents []string

// Value implements driver.Valuer.
func (d Documents) Value() (driver.Value, error) {
	if d == nil {
		d = Documents{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *Documents) Scan(value any) error {
	if value == nil {
		*d = Documents{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported documents column type %T", value)
	}
	if len(raw) == 0 {
		*d = Documents{}
		return nil
	}
	return json.Unmarshal(raw, d)
}
