package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/pkg/mf/errors"
)

// FeatureFilter carries the optional bbox/datetime predicates a features
// listing (§4.E) accepts, composed into the WHERE clause below using the
// STBOX/period operators MobilityDB provides.
type FeatureFilter struct {
	BBox   *domain.BBox
	Period string // MobilityDB period literal, e.g. "[2023-01-01T00:00:00Z,2023-06-01T00:00:00Z]"
	Limit  int
	Offset int
}

// ListFeatures returns the page of features matching filter plus the
// total match count (§6: numberMatched/numberReturned), via the
// count-then-page two-query pattern.
func (s *Store) ListFeatures(ctx context.Context, collectionID string, filter FeatureFilter) ([]domain.MovingFeature, int, error) {
	where, args := featureWhere(collectionID, filter)

	var total int
	if err := s.db.QueryRowxContext(ctx,
		fmt.Sprintf(`SELECT count(*) FROM mfeature WHERE %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, errors.ConnectingError{Err: err}
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryxContext(ctx,
		fmt.Sprintf(`SELECT id, collection_id, property,
			xmin(extent), ymin(extent), xmax(extent), ymax(extent), zmin(extent), zmax(extent),
			lower(period(extent)), upper(period(extent)), lower_inc(period(extent)), upper_inc(period(extent))
			FROM mfeature WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
			where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, errors.ConnectingError{Err: err}
	}

	defer rows.Close()

	out := make([]domain.MovingFeature, 0, filter.Limit)

	for rows.Next() {
		mf, err := scanFeature(rows)
		if err != nil {
			return nil, 0, err
		}

		out = append(out, mf)
	}

	return out, total, rows.Err()
}

func featureWhere(collectionID string, filter FeatureFilter) (string, []interface{}) {
	clauses := []string{"collection_id = $1"}
	args := []interface{}{collectionID}

	if filter.BBox != nil {
		if filter.BBox.ZMin != nil {
			clauses = append(clauses, fmt.Sprintf(
				`box3d(stbox_z(%f,%f,%f,%f,%f,%f)) &&& box3d(extent)`,
				filter.BBox.XMin, filter.BBox.YMin, *filter.BBox.ZMin,
				filter.BBox.XMax, filter.BBox.YMax, *filter.BBox.ZMax))
		} else {
			clauses = append(clauses, fmt.Sprintf(
				`box2d(stbox(%f,%f,%f,%f)) &&& box2d(extent)`,
				filter.BBox.XMin, filter.BBox.YMin, filter.BBox.XMax, filter.BBox.YMax))
		}
	}

	if filter.Period != "" {
		clauses = append(clauses, fmt.Sprintf(`period(extent) && period(%s)`, quoteLiteral(filter.Period)))
	}

	return strings.Join(clauses, " AND "), args
}

// quoteLiteral is used only for the period literal, which is never user
// input directly — it is rebuilt from parsed time.Time values in
// internal/params, so this is formatting, not concatenated user text.
func quoteLiteral(lit string) string {
	return "'" + lit + "'"
}

func scanFeature(rows interface{ Scan(dest ...interface{}) error }) (domain.MovingFeature, error) {
	var (
		mf                     domain.MovingFeature
		property               sql.NullString
		xmin, ymin, xmax, ymax sql.NullFloat64
		zmin, zmax             sql.NullFloat64
		lower, upper           sql.NullTime
		lowerInc, upperInc     sql.NullBool
	)

	if err := rows.Scan(&mf.ID, &mf.CollectionID, &property, &xmin, &ymin, &xmax, &ymax, &zmin, &zmax,
		&lower, &upper, &lowerInc, &upperInc); err != nil {
		return domain.MovingFeature{}, errors.ConnectingError{Err: err}
	}

	p, err := decodeProperty(property)
	if err != nil {
		return domain.MovingFeature{}, err
	}

	mf.Property = p

	if xmin.Valid {
		b := &domain.BBox{XMin: xmin.Float64, YMin: ymin.Float64, XMax: xmax.Float64, YMax: ymax.Float64}
		if zmin.Valid {
			z1, z2 := zmin.Float64, zmax.Float64
			b.ZMin, b.ZMax = &z1, &z2
		}

		mf.BBox = b
	}

	if lower.Valid {
		mf.Lifespan = &domain.Period{
			Start: lower.Time, End: upper.Time,
			LowerInc: lowerInc.Bool, UpperInc: upperInc.Bool,
		}
	}

	return mf, nil
}

// GetFeature fetches a single moving feature by id within a collection.
func (s *Store) GetFeature(ctx context.Context, collectionID, id string) (domain.MovingFeature, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT id, collection_id, property,
			xmin(extent), ymin(extent), xmax(extent), ymax(extent), zmin(extent), zmax(extent),
			lower(period(extent)), upper(period(extent)), lower_inc(period(extent)), upper_inc(period(extent))
			FROM mfeature WHERE collection_id = $1 AND id = $2`, collectionID, id)

	mf, err := scanFeature(row)
	if err == sql.ErrNoRows {
		return domain.MovingFeature{}, errors.NotFound{Entity: "mfeature", ID: id}
	}

	return mf, err
}

// DeleteFeature removes a moving feature; ON DELETE CASCADE on tgeometry
// and tproperties takes care of everything it owns (§5).
func (s *Store) DeleteFeature(ctx context.Context, collectionID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mfeature WHERE collection_id = $1 AND id = $2`, collectionID, id)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return requireAffected(res, "mfeature", id)
}

// CreateFeature inserts a moving feature and, when the MF-JSON body
// carries nested temporalGeometries/temporalProperties, ingests them in
// the same transaction (§5's "MAY strengthen cross-statement atomicity").
// Identifiers are opaque and server-assigned (§3): a feature id omitted
// from the body is minted here, the same way insertTemporalGeometry mints
// a uuid for a tGeometry that doesn't carry one.
func (s *Store) CreateFeature(ctx context.Context, collectionID string, f *mfjson.Feature) (string, error) {
	id := f.ID
	if id == "" {
		id = uuid.New().String()
	}

	property, err := encodeProperty(f.Properties)
	if err != nil {
		return "", err
	}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mfeature (id, collection_id, property) VALUES ($1, $2, $3)`,
			id, collectionID, property); err != nil {
			return errors.ConnectingError{Err: err}
		}

		for _, tg := range f.TemporalGeometries {
			if err := insertTemporalGeometry(ctx, tx, collectionID, id, tg); err != nil {
				return err
			}
		}

		for _, tp := range f.TemporalProperties {
			if err := insertTemporalProperty(ctx, tx, collectionID, id, tp); err != nil {
				return err
			}
		}

		return nil
	})

	return id, err
}

// CollectionExtent aggregates the bbox/lifespan of every feature a
// collection owns into the single envelope a collection resource
// representation carries (§3, §4.E): a collection-level derived extent,
// not a stored column, recomputed from mfeature.extent the way a feature's
// own extent is recomputed from its tGeometries.
func (s *Store) CollectionExtent(ctx context.Context, collectionID string) (*domain.BBox, *domain.Period, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT xmin(box), ymin(box), xmax(box), ymax(box), zmin(box), zmax(box),
			lower(period(box)), upper(period(box)), lower_inc(period(box)), upper_inc(period(box))
			FROM (SELECT extent(extent) AS box FROM mfeature WHERE collection_id = $1) sub`, collectionID)

	var (
		xmin, ymin, xmax, ymax sql.NullFloat64
		zmin, zmax             sql.NullFloat64
		lower, upper           sql.NullTime
		lowerInc, upperInc     sql.NullBool
	)

	if err := row.Scan(&xmin, &ymin, &xmax, &ymax, &zmin, &zmax, &lower, &upper, &lowerInc, &upperInc); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}

		return nil, nil, errors.ConnectingError{Err: err}
	}

	var bbox *domain.BBox

	if xmin.Valid {
		bbox = &domain.BBox{XMin: xmin.Float64, YMin: ymin.Float64, XMax: xmax.Float64, YMax: ymax.Float64}
		if zmin.Valid {
			z1, z2 := zmin.Float64, zmax.Float64
			bbox.ZMin, bbox.ZMax = &z1, &z2
		}
	}

	var lifespan *domain.Period

	if lower.Valid {
		lifespan = &domain.Period{Start: lower.Time, End: upper.Time, LowerInc: lowerInc.Bool, UpperInc: upperInc.Bool}
	}

	return bbox, lifespan, nil
}
