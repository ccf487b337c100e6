// Package mfjson implements the MF-JSON Schema Guard (§4.C) and the
// bidirectional wire/internal dialect conversion (§3): the wire dialect
// spells interpolation "Step"/"Linear" and geometry type "MovingPoint",
// always carries a trailing Z on instants, and omits lower_inc/upper_inc
// when both default true; the internal dialect normalizes all of that.
package mfjson

import (
	"strings"
	"time"

	"github.com/mf-api/server/internal/domain"
)

// wireToInternalInterp and internalToWireInterp map the wire spelling to
// the internal one and back.
var wireToInternalInterp = map[string]domain.Interpolation{
	"Linear": domain.InterpolationLinear,
	"Step":   domain.InterpolationStepwise,
}

var internalToWireInterp = map[domain.Interpolation]string{
	domain.InterpolationLinear:   "Linear",
	domain.InterpolationStepwise: "Step",
}

// InterpolationFromWire converts the wire "Linear"/"Step" token to the
// internal Interpolation. Unrecognized tokens pass through unchanged so
// the schema guard, not this helper, is what rejects them.
func InterpolationFromWire(wire string) domain.Interpolation {
	if v, ok := wireToInternalInterp[wire]; ok {
		return v
	}

	return domain.Interpolation(wire)
}

// InterpolationToWire converts an internal Interpolation back to its wire
// spelling.
func InterpolationToWire(interp domain.Interpolation) string {
	if v, ok := internalToWireInterp[interp]; ok {
		return v
	}

	return string(interp)
}

// GeometryTypeFromWire / GeometryTypeToWire convert the MF-JSON
// TemporalGeometry "type" discriminator: wire "MovingPoint" corresponds to
// the internal "MovingGeomPoint" spelling used throughout the store layer,
// matching the column/type naming MobilityDB itself uses internally.
func GeometryTypeFromWire(wire string) string {
	if wire == "MovingPoint" {
		return "MovingGeomPoint"
	}

	return wire
}

func GeometryTypeToWire(internal string) string {
	if internal == "MovingGeomPoint" {
		return "MovingPoint"
	}

	return internal
}

// InstantFromWire parses a wire-format instant. The wire dialect always
// carries a trailing "Z" (UTC); this is the single place that assumption
// is encoded.
func InstantFromWire(wire string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, wire)
}

// InstantToWire renders an internal instant in the wire dialect, with the
// trailing Z restored (time.Time already carries UTC since the store only
// ever deals in UTC instants, per §3).
func InstantToWire(t time.Time) string {
	s := t.UTC().Format(time.RFC3339Nano)
	if !strings.HasSuffix(s, "Z") {
		s += "Z"
	}

	return s
}

// inclusivityDefault is true for both bounds per §3; the wire dialect
// omits lower_inc/upper_inc entirely when they hold the default, so a
// reader must treat an absent field as true, not false.
const inclusivityDefault = true

// InclusivityFromWire returns the effective inclusivity for a bound that
// was present (ptr non-nil) or absent (defaults to true) on the wire.
func InclusivityFromWire(present *bool) bool {
	if present == nil {
		return inclusivityDefault
	}

	return *present
}

// InclusivityToWire returns nil (field omitted) when inc matches the
// default, or a pointer to inc otherwise, mirroring the wire dialect's
// omit-if-default convention.
func InclusivityToWire(inc bool) *bool {
	if inc == inclusivityDefault {
		return nil
	}

	return &inc
}
