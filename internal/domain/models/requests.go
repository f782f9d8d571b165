package models

// Requests for the dashboard HTTP endpoints. Defined in domain for
// consistency and reuse.

type IndicatorsRequest struct {
	Window int `query:"window" json:"window" default:"3" validate:"gte=1,lte=24"`
}

type IndicatorRequest struct {
	Name   string `param:"name" json:"name" validate:"required"`
	Window int    `query:"window" json:"window" default:"3" validate:"gte=1,lte=24"`
}

type SnapshotRequest struct {
	Month string `query:"month" json:"month" validate:"omitempty"`
}

type BriefRequest struct {
	Month  string `query:"month" json:"month" validate:"omitempty"`
	Format string `query:"format" json:"format" default:"blog" validate:"oneof=blog whatsapp linkedin"`
}
