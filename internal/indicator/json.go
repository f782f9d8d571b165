package indicator

import "encoding/json"

// MarshalJSON encodes an undefined percent as null rather than NaN, which
// encoding/json cannot represent.
func (c Change) MarshalJSON() ([]byte, error) {
	out := struct {
		Absolute float64  `json:"absolute"`
		Percent  *float64 `json:"percent"`
	}{Absolute: c.Absolute}
	if c.PercentDefined {
		out.Percent = &c.Percent
	}
	return json.Marshal(out)
}
