package mfjson

import (
	"testing"
	"time"

	"github.com/mf-api/server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInterpolationRoundTrip(t *testing.T) {
	assert.Equal(t, domain.InterpolationStepwise, InterpolationFromWire("Step"))
	assert.Equal(t, "Step", InterpolationToWire(domain.InterpolationStepwise))

	assert.Equal(t, domain.InterpolationLinear, InterpolationFromWire("Linear"))
	assert.Equal(t, "Linear", InterpolationToWire(domain.InterpolationLinear))
}

func TestGeometryTypeRoundTrip(t *testing.T) {
	assert.Equal(t, "MovingGeomPoint", GeometryTypeFromWire("MovingPoint"))
	assert.Equal(t, "MovingPoint", GeometryTypeToWire("MovingGeomPoint"))
}

func TestInstantRoundTrip(t *testing.T) {
	wire := "2023-01-01T12:30:00Z"

	parsed, err := InstantFromWire(wire)
	assert.NoError(t, err)

	assert.Equal(t, wire, InstantToWire(parsed))
}

func TestInclusivityDefaultsToTrueWhenAbsent(t *testing.T) {
	assert.True(t, InclusivityFromWire(nil))
}

func TestInclusivityRespectsExplicitFalse(t *testing.T) {
	f := false
	assert.False(t, InclusivityFromWire(&f))
}

func TestInclusivityToWireOmitsDefault(t *testing.T) {
	assert.Nil(t, InclusivityToWire(true))

	ptr := InclusivityToWire(false)
	assert.NotNil(t, ptr)
	assert.False(t, *ptr)
}

func TestInstantToWireAlwaysUTCWithZ(t *testing.T) {
	loc := time.FixedZone("+02:00", 2*60*60)
	t1 := time.Date(2023, 1, 1, 14, 0, 0, 0, loc)

	assert.Equal(t, "2023-01-01T12:00:00Z", InstantToWire(t1))
}
