// Package analysis derives macro risk readings from indicator series:
// FX stress, inflation state, yield curve regimes, fiscal stress and
// commodity traffic lights. Thresholds mirror the dashboard's published
// methodology and are configurable where noted.
package analysis

// Status is a traffic-light reading for one gauge.
type Status string

const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
)

// Gauge is the displayable state of one risk dial.
type Gauge struct {
	Name       string  `json:"name"`
	Status     Status  `json:"status"`
	Label      string  `json:"label,omitempty"`
	Commentary string  `json:"commentary"`
	Confidence int     `json:"confidence"`
	Value      float64 `json:"value"`
	MoMChange  float64 `json:"mom_change"`
}
