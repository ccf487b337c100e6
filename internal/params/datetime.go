package params

import (
	"strings"
	"time"

	"github.com/mf-api/server/pkg/mf/errors"
)

// dateTimeLayout is the RFC 3339-ish layout instants are parsed and
// formatted in; the trailing Z is always present on the wire and always
// stripped in the internal dialect (internal/mfjson handles that side of
// the conversion — this package only deals with query parameters).
const dateTimeLayout = time.RFC3339

// Interval is a parsed `datetime` query value (§4.B): either a single
// instant or a Start/End range. An unbounded side of a ".." range is left
// as the zero Time with the matching Open flag set.
type Interval struct {
	Start, End   time.Time
	OpenStart    bool
	OpenEnd      bool
	IsInstant    bool
}

// DateTime parses the `datetime` query parameter in the two forms §4.B
// allows: a single instant ("2023-01-01T00:00:00Z"), or an interval
// ("start/end") where either side may be ".." for unbounded.
func DateTime(raw string) (*Interval, error) {
	if raw == "" {
		return nil, nil
	}

	if !strings.Contains(raw, "/") {
		t, err := time.Parse(dateTimeLayout, raw)
		if err != nil {
			return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
		}

		return &Interval{Start: t, End: t, IsInstant: true}, nil
	}

	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
	}

	iv := &Interval{}

	if parts[0] == ".." || parts[0] == "" {
		iv.OpenStart = true
	} else {
		t, err := time.Parse(dateTimeLayout, parts[0])
		if err != nil {
			return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
		}

		iv.Start = t
	}

	if parts[1] == ".." || parts[1] == "" {
		iv.OpenEnd = true
	} else {
		t, err := time.Parse(dateTimeLayout, parts[1])
		if err != nil {
			return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
		}

		iv.End = t
	}

	if iv.OpenStart && iv.OpenEnd {
		return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
	}

	if !iv.OpenStart && !iv.OpenEnd && iv.Start.After(iv.End) {
		return nil, errors.InvalidParameterValue{Param: []string{"datetime"}}
	}

	return iv, nil
}

// Period renders the parsed Interval into the MobilityDB period literal
// form the store layer composes into predicates: "[start,end]" with an
// empty bound for an open side, e.g. "[,2023-06-01T00:00:00Z]".
func (iv *Interval) Period() string {
	start := ""
	if !iv.OpenStart {
		start = iv.Start.UTC().Format(dateTimeLayout)
	}

	end := ""
	if !iv.OpenEnd {
		end = iv.End.UTC().Format(dateTimeLayout)
	}

	return "[" + start + "," + end + "]"
}
