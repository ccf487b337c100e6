package mfjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFeature() *Feature {
	return &Feature{
		Type: "Feature",
		ID:   "f1",
		TemporalGeometries: []TemporalGeometry{
			{
				Type:          "MovingPoint",
				Interpolation: "Linear",
				Datetimes:     []string{"2023-01-01T00:00:00Z", "2023-01-01T01:00:00Z"},
				Coordinates:   [][]float64{{10, 20}, {11, 21}},
			},
		},
		TemporalProperties: []TemporalProperty{
			{
				Name:      "speed",
				Datetimes: []string{"2023-01-01T00:00:00Z", "2023-01-01T01:00:00Z"},
				Values:    []interface{}{1.0, 2.0},
			},
		},
	}
}

func TestValidateFeatureAccepts(t *testing.T) {
	assert.NoError(t, ValidateFeature(validFeature()))
}

func TestValidateFeatureRejectsWrongType(t *testing.T) {
	f := validFeature()
	f.Type = "NotAFeature"

	assert.Error(t, ValidateFeature(f))
}

func TestValidateFeatureRejectsMismatchedGeometryLengths(t *testing.T) {
	f := validFeature()
	f.TemporalGeometries[0].Coordinates = [][]float64{{10, 20}}

	assert.Error(t, ValidateFeature(f))
}

func TestValidateFeatureRejectsNonAscendingDatetimes(t *testing.T) {
	f := validFeature()
	f.TemporalGeometries[0].Datetimes = []string{"2023-01-01T01:00:00Z", "2023-01-01T00:00:00Z"}

	assert.Error(t, ValidateFeature(f))
}

func TestValidateFeatureRejectsUnknownInterpolation(t *testing.T) {
	f := validFeature()
	f.TemporalGeometries[0].Interpolation = "Cubic"

	assert.Error(t, ValidateFeature(f))
}

func TestValidateFeatureRejectsMismatchedPropertyLengths(t *testing.T) {
	f := validFeature()
	f.TemporalProperties[0].Values = []interface{}{1.0}

	assert.Error(t, ValidateFeature(f))
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseAcceptsWellFormed(t *testing.T) {
	f, err := Parse([]byte(`{"type":"Feature","id":"f1"}`))

	assert.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
}
