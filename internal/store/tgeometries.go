package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/pkg/mf/errors"
)

// insertTemporalGeometry writes one tGeometry row, storing datetimes and
// coordinates as parallel arrays the way the rest of the read path expects
// them back.
func insertTemporalGeometry(ctx context.Context, tx *sqlx.Tx, collectionID, mfeatureID string, tg mfjson.TemporalGeometry) error {
	id := tg.ID
	if id == "" {
		id = uuid.New().String()
	}

	datetimes := make([]string, len(tg.Datetimes))

	for i, raw := range tg.Datetimes {
		t, err := mfjson.InstantFromWire(raw)
		if err != nil {
			return errors.InvalidParameterValue{Param: []string{"temporalGeometries[].datetimes"}}
		}

		datetimes[i] = t.UTC().Format(storeTimestampLayout)
	}

	xs := make([]float64, len(tg.Coordinates))
	ys := make([]float64, len(tg.Coordinates))
	zs := make([]float64, len(tg.Coordinates))
	is3D := len(tg.Coordinates) > 0 && len(tg.Coordinates[0]) == 3

	for i, c := range tg.Coordinates {
		xs[i] = c[0]
		ys[i] = c[1]

		if is3D {
			zs[i] = c[2]
		}
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO tgeometry (id, mfeature_id, collection_id, interpolation, is_3d, datetimes, xs, ys, zs, lower_inc, upper_inc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, mfeatureID, collectionID, string(mfjson.InterpolationFromWire(tg.Interpolation)), is3D,
		pq.Array(datetimes), pq.Array(xs), pq.Array(ys), pq.Array(zs),
		mfjson.InclusivityFromWire(tg.LowerInc), mfjson.InclusivityFromWire(tg.UpperInc))
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return nil
}

// CreateTemporalGeometry appends a tGeometry to an existing feature
// outside CreateFeature's nested ingestion path (§6's standalone POST
// .../tGeometries), recomputing the feature's extent via the same
// tgeometry_extent_refresh trigger insertTemporalGeometry relies on.
func (s *Store) CreateTemporalGeometry(ctx context.Context, collectionID, mfeatureID string, tg mfjson.TemporalGeometry) (string, error) {
	if tg.ID == "" {
		tg.ID = uuid.New().String()
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		return insertTemporalGeometry(ctx, tx, collectionID, mfeatureID, tg)
	})

	return tg.ID, err
}

// ListTemporalGeometries returns every tGeometry owned by a feature,
// optionally restricted to a period (§4.B datetime) or a leaf instant set.
func (s *Store) ListTemporalGeometries(ctx context.Context, collectionID, mfeatureID string, period string, leaf []string) ([]domain.TemporalGeometry, error) {
	clauses := []string{"collection_id = $1", "mfeature_id = $2"}
	args := []interface{}{collectionID, mfeatureID}

	if period != "" {
		clauses = append(clauses, fmt.Sprintf(`atperiod(to_tgeompoint(xs, ys, zs, datetimes, is_3d), %s) IS NOT NULL`, quoteLiteral(period)))
	}

	rows, err := s.db.QueryxContext(ctx,
		fmt.Sprintf(`SELECT id, mfeature_id, collection_id, interpolation, is_3d, datetimes, xs, ys, zs, lower_inc, upper_inc
			FROM tgeometry WHERE %s ORDER BY id`, strings.Join(clauses, " AND ")), args...)
	if err != nil {
		return nil, errors.ConnectingError{Err: err}
	}

	defer rows.Close()

	out := make([]domain.TemporalGeometry, 0)

	for rows.Next() {
		tg, err := scanTemporalGeometry(rows)
		if err != nil {
			return nil, err
		}

		if len(leaf) > 0 {
			tg = filterGeometryToLeaf(tg, leaf)
		}

		out = append(out, tg)
	}

	return out, rows.Err()
}

func scanTemporalGeometry(rows *sqlx.Rows) (domain.TemporalGeometry, error) {
	var (
		tg                 domain.TemporalGeometry
		interp             string
		is3D               bool
		datetimes          pq.StringArray
		xs, ys, zs         pq.Float64Array
		lowerInc, upperInc bool
	)

	if err := rows.Scan(&tg.ID, &tg.MFeatureID, &tg.CollectionID, &interp, &is3D,
		&datetimes, &xs, &ys, &zs, &lowerInc, &upperInc); err != nil {
		return domain.TemporalGeometry{}, errors.ConnectingError{Err: err}
	}

	tg.Interpolation = domain.Interpolation(interp)
	tg.Is3D = is3D

	times, coords, err := assembleSamples(datetimes, xs, ys, zs, is3D)
	if err != nil {
		return domain.TemporalGeometry{}, err
	}

	tg.Datetimes = times
	tg.Coordinates = coords

	if len(times) > 0 {
		tg.Lifespan = &domain.Period{Start: times[0], End: times[len(times)-1], LowerInc: lowerInc, UpperInc: upperInc}
	}

	return tg, nil
}

func assembleSamples(datetimes pq.StringArray, xs, ys, zs pq.Float64Array, is3D bool) ([]stdTime, [][]float64, error) {
	times := make([]stdTime, len(datetimes))
	coords := make([][]float64, len(datetimes))

	for i, raw := range datetimes {
		t, err := parseStoreTimestamp(raw)
		if err != nil {
			return nil, nil, errors.ConnectingError{Err: err}
		}

		times[i] = t

		if is3D {
			coords[i] = []float64{xs[i], ys[i], zs[i]}
		} else {
			coords[i] = []float64{xs[i], ys[i]}
		}
	}

	return times, coords, nil
}

func filterGeometryToLeaf(tg domain.TemporalGeometry, leaf []string) domain.TemporalGeometry {
	want := make(map[string]bool, len(leaf))
	for _, l := range leaf {
		want[l] = true
	}

	var datetimes []stdTime

	var coords [][]float64

	for i, dt := range tg.Datetimes {
		if want[mfjson.InstantToWire(dt)] {
			datetimes = append(datetimes, dt)
			coords = append(coords, tg.Coordinates[i])
		}
	}

	tg.Datetimes = datetimes
	tg.Coordinates = coords

	return tg
}

// DeleteTemporalGeometry removes a single tGeometry by id.
func (s *Store) DeleteTemporalGeometry(ctx context.Context, collectionID, mfeatureID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tgeometry WHERE collection_id = $1 AND mfeature_id = $2 AND id = $3`,
		collectionID, mfeatureID, id)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return requireAffected(res, "tgeometry", id)
}
