// Package params implements the Parameter Validators (§4.B): bbox,
// datetime, leaf, limit/offset, and the subTrajectory/subTemporalValue
// flags, each parsing a raw query string into a validated internal form
// or an errors.InvalidParameterValue.
package params

import (
	"strconv"
	"strings"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/pkg/mf/errors"
)

// BBox parses the `bbox` query parameter: 4 comma-separated floats
// (minx,miny,maxx,maxy) or 6 (minx,miny,minz,maxx,maxy,maxz). Rejects
// min > max on any axis and antimeridian-wrapping boxes outright — this
// server does not support bbox wraparound (§4.B).
func BBox(raw string) (*domain.BBox, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")

	floats := make([]float64, len(parts))

	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.InvalidParameterValue{Param: []string{"bbox"}}
		}

		floats[i] = f
	}

	switch len(floats) {
	case 4:
		b := &domain.BBox{XMin: floats[0], YMin: floats[1], XMax: floats[2], YMax: floats[3]}
		if err := validateBBox(b); err != nil {
			return nil, err
		}

		return b, nil
	case 6:
		zmin, zmax := floats[2], floats[5]
		b := &domain.BBox{
			XMin: floats[0], YMin: floats[1], ZMin: &zmin,
			XMax: floats[3], YMax: floats[4], ZMax: &zmax,
		}
		if err := validateBBox(b); err != nil {
			return nil, err
		}

		return b, nil
	default:
		return nil, errors.InvalidParameterValue{Param: []string{"bbox"}}
	}
}

func validateBBox(b *domain.BBox) error {
	if b.XMin > b.XMax || b.YMin > b.YMax {
		return errors.InvalidParameterValue{Param: []string{"bbox"}}
	}

	if b.ZMin != nil && b.ZMax != nil && *b.ZMin > *b.ZMax {
		return errors.InvalidParameterValue{Param: []string{"bbox"}}
	}

	return nil
}
