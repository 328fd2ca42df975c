package duration

import (
	"database/sql/driver"
	"encoding/json"
)

// NullDuration is a Duration that may be null.
type NullDuration struct {
	Duration Duration
	Valid    bool
}

// Some wraps d as a valid NullDuration.
func Some(d Duration) NullDuration { return NullDuration{Duration: d, Valid: true} }

func (n NullDuration) String() string {
	if !n.Valid {
		return "null"
	}
	return n.Duration.String()
}

func (n NullDuration) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Duration.String())
}

func (n *NullDuration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullDuration{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := Parse(s)
	if err != nil {
		return err
	}
	*n = Some(d)
	return nil
}

func (n NullDuration) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Duration.Value()
}

func (n *NullDuration) Scan(src any) error {
	if src == nil {
		*n = NullDuration{}
		return nil
	}
	if err := n.Duration.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
