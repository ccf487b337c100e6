package mfjson

// Feature is the wire MF-JSON representation of a moving feature (§3): a
// GeoJSON-like envelope plus the temporalGeometries/temporalProperties
// collections OGC API - Moving Features adds on top.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`

	Time *TimeEnvelope `json:"time,omitempty"`
	BBox []float64     `json:"bbox,omitempty"`

	TemporalGeometries []TemporalGeometry `json:"temporalGeometries,omitempty"`
	TemporalProperties  []TemporalProperty `json:"temporalProperties,omitempty"`

	CRS string `json:"crs,omitempty"`
	TRS string `json:"trs,omitempty"`
}

// TimeEnvelope is the wire `time` block: either a single interval
// [start, end] or, for a leaf query result, a list of instants.
type TimeEnvelope struct {
	Interval []string `json:"interval,omitempty"`
	Instants []string `json:"instants,omitempty"`
}

// TemporalGeometry is the wire tGeometry object (§3): "type" uses the
// MovingPoint spelling (internal/mfjson converts it), "datetimes" is
// parallel to "coordinates".
type TemporalGeometry struct {
	Type          string      `json:"type"`
	ID            string      `json:"id,omitempty"`
	Interpolation string      `json:"interpolation"`
	Datetimes     []string    `json:"datetimes"`
	Coordinates   [][]float64 `json:"coordinates"`
	LowerInc      *bool       `json:"lower_inc,omitempty"`
	UpperInc      *bool       `json:"upper_inc,omitempty"`
	BBox          []float64   `json:"bbox,omitempty"`
}

// TemporalProperty is the wire tProperty object: a named time-varying
// attribute carrying one value sequence as "values" parallel to
// "datetimes"; the store files it under a datetime_group (§5).
type TemporalProperty struct {
	Name          string        `json:"property"`
	Values        []interface{} `json:"values"`
	Datetimes     []string      `json:"datetimes"`
	Interpolation string        `json:"interpolation,omitempty"`
	LowerInc      *bool         `json:"lower_inc,omitempty"`
	UpperInc      *bool         `json:"upper_inc,omitempty"`
}
