package params

import (
	"strings"
	"time"

	"github.com/mf-api/server/pkg/mf/errors"
)

// Leaf parses the `leaf` query parameter (§4.B): a comma-separated list of
// instants, strictly ascending, used to sample a temporal property or
// geometry at exact timestamps rather than over a continuous interval.
func Leaf(raw string) ([]time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")

	out := make([]time.Time, len(parts))

	for i, p := range parts {
		t, err := time.Parse(dateTimeLayout, strings.TrimSpace(p))
		if err != nil {
			return nil, errors.InvalidParameterValue{Param: []string{"leaf"}}
		}

		if i > 0 && !t.After(out[i-1]) {
			return nil, errors.InvalidParameterValue{Param: []string{"leaf"}}
		}

		out[i] = t
	}

	return out, nil
}
