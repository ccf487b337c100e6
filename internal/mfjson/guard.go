package mfjson

import (
	"encoding/json"

	"github.com/mf-api/server/pkg/mf/errors"
)

// ValidateFeature implements the MF-JSON Schema Guard (§4.C) for a moving
// feature document submitted on a write: it checks the structural
// invariants the database layer cannot economically enforce itself
// (coordinates/datetimes length parity, a recognized interpolation,
// well-formed geometry type) before a single query is issued.
func ValidateFeature(f *Feature) error {
	if f.Type != "Feature" {
		return errors.InvalidParameterValue{Param: []string{"type"}}
	}

	for i, tg := range f.TemporalGeometries {
		if err := ValidateTemporalGeometry(tg, i); err != nil {
			return err
		}
	}

	for i, tp := range f.TemporalProperties {
		if err := ValidateTemporalProperty(tp, i); err != nil {
			return err
		}
	}

	return nil
}

func ValidateTemporalGeometry(tg TemporalGeometry, index int) error {
	if tg.Type == "" {
		return errors.MissingParameterValue{Param: "temporalGeometries[].type", Structural: true}
	}

	internal := GeometryTypeFromWire(tg.Type)
	if internal != "MovingGeomPoint" {
		return errors.NotImplemented{Feature: "temporal geometry type " + tg.Type}
	}

	if tg.Interpolation == "" {
		return errors.MissingParameterValue{Param: "temporalGeometries[].interpolation", Structural: true}
	}

	if _, ok := wireToInternalInterp[tg.Interpolation]; !ok {
		return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].interpolation"}}
	}

	if len(tg.Datetimes) == 0 {
		return errors.MissingParameterValue{Param: "temporalGeometries[].datetimes", Structural: true}
	}

	if len(tg.Datetimes) != len(tg.Coordinates) {
		return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].coordinates"}}
	}

	dim := len(tg.Coordinates[0])
	if dim != 2 && dim != 3 {
		return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].coordinates"}}
	}

	for _, c := range tg.Coordinates {
		if len(c) != dim {
			return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].coordinates"}}
		}
	}

	var prev string

	for _, dt := range tg.Datetimes {
		if _, err := InstantFromWire(dt); err != nil {
			return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].datetimes"}}
		}

		if prev != "" && dt <= prev {
			return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].datetimes"}}
		}

		prev = dt
	}

	return nil
}

func ValidateTemporalProperty(tp TemporalProperty, index int) error {
	if tp.Name == "" {
		return errors.MissingParameterValue{Param: "temporalProperties[].property", Structural: true}
	}

	if len(tp.Datetimes) == 0 {
		return errors.MissingParameterValue{Param: "temporalProperties[].datetimes", Structural: true}
	}

	if len(tp.Datetimes) != len(tp.Values) {
		return errors.InvalidParameterValue{Param: []string{"temporalProperties[].values"}}
	}

	var prev string

	for _, dt := range tp.Datetimes {
		if _, err := InstantFromWire(dt); err != nil {
			return errors.InvalidParameterValue{Param: []string{"temporalProperties[].datetimes"}}
		}

		if prev != "" && dt <= prev {
			return errors.InvalidParameterValue{Param: []string{"temporalProperties[].datetimes"}}
		}

		prev = dt
	}

	return nil
}

// Parse decodes raw MF-JSON bytes into a Feature, returning
// InvalidParameterValue on malformed JSON rather than a bare decode error,
// so the responder maps it to 400 instead of 500.
func Parse(raw []byte) (*Feature, error) {
	var f Feature

	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.InvalidParameterValue{Param: []string{"body"}}
	}

	return &f, nil
}

// ParseTemporalGeometry decodes a standalone tGeometry body, for the
// POST .../tGeometries endpoint that appends one to an existing feature
// outside CreateFeature's nested ingestion (§6).
func ParseTemporalGeometry(raw []byte) (TemporalGeometry, error) {
	var tg TemporalGeometry

	if err := json.Unmarshal(raw, &tg); err != nil {
		return TemporalGeometry{}, errors.InvalidParameterValue{Param: []string{"body"}}
	}

	return tg, nil
}

// ParseTemporalProperty decodes a standalone tProperty body, for the
// POST .../tProperties endpoint (§6).
func ParseTemporalProperty(raw []byte) (TemporalProperty, error) {
	var tp TemporalProperty

	if err := json.Unmarshal(raw, &tp); err != nil {
		return TemporalProperty{}, errors.InvalidParameterValue{Param: []string{"body"}}
	}

	return tp, nil
}
