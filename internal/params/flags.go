package params

import (
	"strconv"

	"github.com/mf-api/server/pkg/mf/errors"
)

// Bool parses a query flag given as "true"/"false" (or any other form
// strconv.ParseBool accepts), defaulting to defaultValue when the value is
// empty; a bare "?flag" with no value therefore also yields defaultValue.
func Bool(raw string, defaultValue bool) (bool, error) {
	if raw == "" {
		return defaultValue, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.InvalidParameterValue{Param: []string{"subTrajectory/subTemporalValue"}}
	}

	return v, nil
}

// ValidateExclusive enforces §4.B's mutual exclusion: leaf cannot be
// combined with subTrajectory on a tGeometry request, nor with
// subTemporalValue on a tProperty request.
func ValidateExclusive(hasLeaf, flag bool, flagName string) error {
	if hasLeaf && flag {
		return errors.InvalidParameterValue{Param: []string{"leaf", flagName}}
	}

	return nil
}
