// Package domain holds the moving features data model (§3): collections,
// moving features, temporal geometries and temporal properties, and the
// value sequences a temporal property owns. Types here are the internal
// dialect; internal/mfjson converts to and from the MF-JSON wire dialect.
package domain

import "time"

// Collection is the top-level container for moving features (§3). A
// collection owns its features; deleting one cascades to every feature,
// temporal geometry and temporal property beneath it (§5).
type Collection struct {
	ID              string
	Title           string
	Description     string
	ItemType        string
	UpdateFrequency int
	Property        map[string]any // free-form descriptor (§3), stored as JSON
}

// MovingFeature is a single tracked entity within a collection: a set of
// temporal geometries (where it was) and temporal properties (what else
// changed about it over time), sharing one bbox/lifespan extent.
type MovingFeature struct {
	ID           string
	CollectionID string
	BBox         *BBox
	Lifespan     *Period
	Property     map[string]any // free-form descriptor (§3), stored as JSON
}

// BBox is a 2D or 3D axis-aligned extent. ZMin/ZMax are nil for a 2D box.
type BBox struct {
	XMin, YMin float64
	XMax, YMax float64
	ZMin, ZMax *float64
}

// Period is a half-open-or-closed instant range, mirroring Postgres/
// MobilityDB's period literal: [Start, End] with independent inclusivity
// on each bound (§3, lower_inc/upper_inc).
type Period struct {
	Start     time.Time
	End       time.Time
	LowerInc  bool
	UpperInc  bool
}

// Interpolation is the MF-JSON interpolation discriminator converted to
// its internal spelling by internal/mfjson (wire "Linear"/"Step" become
// these two).
type Interpolation string

const (
	InterpolationLinear  Interpolation = "Linear"
	InterpolationStepwise Interpolation = "Stepwise"
)

// TemporalGeometry is one tGeometry belonging to a moving feature: a
// sequence of (timestamp, coordinate) samples plus the interpolation rule
// used between them.
type TemporalGeometry struct {
	ID              string
	MFeatureID      string
	CollectionID    string
	Interpolation   Interpolation
	Is3D            bool
	BBox            *BBox
	Lifespan        *Period
	Datetimes       []time.Time
	Coordinates     [][]float64 // parallel to Datetimes, each [x,y] or [x,y,z]
}

// TemporalProperty is one named time-varying scalar/text attribute of a
// moving feature (§3): "speed", "fuel_level", and so on. Its values live
// in one or more ValueSequences, grouped by datetime_group (§5).
type TemporalProperty struct {
	ID           string
	MFeatureID   string
	CollectionID string
	Name         string
	ValueType    string // "measure" (numeric) or "text"
	Lifespan     *Period
}

// ValueSequence is one contiguous run of values for a TemporalProperty,
// keyed by datetime_group (§5): every insert adds a new sequence under the
// property's next free group (max + 1), allocated under an advisory lock so
// two concurrent POSTs cannot claim the same group; stored sequences are
// never rewritten.
type ValueSequence struct {
	ID                 string
	TPropertyID        string
	DatetimeGroup      int
	Interpolation      Interpolation
	Datetimes          []time.Time
	NumericValues      []float64 // used when ValueType == "measure"
	TextValues         []string  // used when ValueType == "text"
	LowerInc, UpperInc bool
}
