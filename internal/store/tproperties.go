package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/pkg/mf/errors"
)

// insertTemporalProperty writes one tProperty plus its first value
// sequence, running canPost's disjointness check and datetime_group
// allocation under an advisory lock (§5) so two concurrent POSTs for the
// same (collection, feature, property name) cannot both read the same
// "next group" and collide.
func insertTemporalProperty(ctx context.Context, tx *sqlx.Tx, collectionID, mfeatureID string, tp mfjson.TemporalProperty) error {
	if err := advisoryLock(ctx, tx, collectionID, mfeatureID, tp.Name); err != nil {
		return err
	}

	var tpropertyID string

	err := tx.QueryRowxContext(ctx,
		`SELECT id FROM tproperties WHERE collection_id = $1 AND mfeature_id = $2 AND name = $3`,
		collectionID, mfeatureID, tp.Name).Scan(&tpropertyID)

	switch {
	case err == sql.ErrNoRows:
		tpropertyID = uuid.New().String()

		valueType := "text"
		if _, ok := tp.Values[0].(float64); ok {
			valueType = "measure"
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tproperties (id, mfeature_id, collection_id, name, value_type) VALUES ($1, $2, $3, $4, $5)`,
			tpropertyID, mfeatureID, collectionID, tp.Name, valueType); err != nil {
			return errors.ConnectingError{Err: err}
		}
	case err != nil:
		return errors.ConnectingError{Err: err}
	}

	if err := checkCanPost(ctx, tx, tpropertyID, tp.Datetimes); err != nil {
		return err
	}

	group, err := nextDatetimeGroup(ctx, tx, tpropertyID)
	if err != nil {
		return err
	}

	return insertValueSequence(ctx, tx, tpropertyID, group, tp)
}

// checkCanPost (§5) rejects a new value sequence whose timestamp set
// overlaps, in time, a sequence already stored for this property.
func checkCanPost(ctx context.Context, tx *sqlx.Tx, tpropertyID string, wireDatetimes []string) error {
	if len(wireDatetimes) == 0 {
		return nil
	}

	first, err := mfjson.InstantFromWire(wireDatetimes[0])
	if err != nil {
		return errors.InvalidParameterValue{Param: []string{"temporalProperties[].datetimes"}}
	}

	last, err := mfjson.InstantFromWire(wireDatetimes[len(wireDatetimes)-1])
	if err != nil {
		return errors.InvalidParameterValue{Param: []string{"temporalProperties[].datetimes"}}
	}

	period := fmt.Sprintf("[%s,%s]", first.UTC().Format(storeTimestampLayout), last.UTC().Format(storeTimestampLayout))

	var conflicts int

	err = tx.QueryRowxContext(ctx,
		fmt.Sprintf(`SELECT count(*) FROM tpropertiesvalue
			WHERE tproperties_id = $1
			AND period(datetimes[1], datetimes[array_upper(datetimes,1)], lower_inc, upper_inc) && period(%s)`,
			quoteLiteral(period)), tpropertyID).Scan(&conflicts)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	if conflicts > 0 {
		return errors.Conflict{Reason: "value sequence overlaps an existing one for this property"}
	}

	return nil
}

// nextDatetimeGroup allocates the next datetime_group index for a
// property: a read-modify-write serialized by the advisory lock the
// caller already holds (§5).
func nextDatetimeGroup(ctx context.Context, tx *sqlx.Tx, tpropertyID string) (int, error) {
	var max sql.NullInt64

	err := tx.QueryRowxContext(ctx,
		`SELECT max(datetime_group) FROM tpropertiesvalue WHERE tproperties_id = $1`, tpropertyID).Scan(&max)
	if err != nil {
		return 0, errors.ConnectingError{Err: err}
	}

	if !max.Valid {
		return 0, nil
	}

	return int(max.Int64) + 1, nil
}

func insertValueSequence(ctx context.Context, tx *sqlx.Tx, tpropertyID string, group int, tp mfjson.TemporalProperty) error {
	datetimes := make([]string, len(tp.Datetimes))

	for i, raw := range tp.Datetimes {
		t, err := mfjson.InstantFromWire(raw)
		if err != nil {
			return errors.InvalidParameterValue{Param: []string{"temporalProperties[].datetimes"}}
		}

		datetimes[i] = t.UTC().Format(storeTimestampLayout)
	}

	numeric := make([]float64, len(tp.Values))
	text := make([]string, len(tp.Values))
	isNumeric := true

	for i, v := range tp.Values {
		switch val := v.(type) {
		case float64:
			numeric[i] = val
		case string:
			isNumeric = false
			text[i] = val
		default:
			return errors.InvalidParameterValue{Param: []string{"temporalProperties[].values"}}
		}
	}

	interp := "Linear"
	if tp.Interpolation != "" {
		interp = tp.Interpolation
	}

	id := uuid.New().String()

	var err error
	if isNumeric {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tpropertiesvalue (id, tproperties_id, datetime_group, interpolation, datetimes, numeric_values, lower_inc, upper_inc)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, tpropertyID, group, string(mfjson.InterpolationFromWire(interp)),
			pq.Array(datetimes), pq.Array(numeric),
			mfjson.InclusivityFromWire(tp.LowerInc), mfjson.InclusivityFromWire(tp.UpperInc))
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tpropertiesvalue (id, tproperties_id, datetime_group, interpolation, datetimes, text_values, lower_inc, upper_inc)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, tpropertyID, group, string(mfjson.InterpolationFromWire(interp)),
			pq.Array(datetimes), pq.Array(text),
			mfjson.InclusivityFromWire(tp.LowerInc), mfjson.InclusivityFromWire(tp.UpperInc))
	}

	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return nil
}

// CreateTemporalProperty adds a new tProperty (with its first value
// sequence) to an existing feature outside CreateFeature's nested
// ingestion path (§6's standalone POST .../tProperties).
func (s *Store) CreateTemporalProperty(ctx context.Context, collectionID, mfeatureID string, tp mfjson.TemporalProperty) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		return insertTemporalProperty(ctx, tx, collectionID, mfeatureID, tp)
	})
}

// AppendValueSequence adds a new value sequence to an already-existing
// tProperty, named by the POST .../tProperties/{name} path (§6), reusing
// the same canPost/datetime_group allocation insertTemporalProperty uses
// for a brand-new property.
func (s *Store) AppendValueSequence(ctx context.Context, collectionID, mfeatureID, name string, tp mfjson.TemporalProperty) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := advisoryLock(ctx, tx, collectionID, mfeatureID, name); err != nil {
			return err
		}

		var tpropertyID string

		err := tx.QueryRowxContext(ctx,
			`SELECT id FROM tproperties WHERE collection_id = $1 AND mfeature_id = $2 AND name = $3`,
			collectionID, mfeatureID, name).Scan(&tpropertyID)
		if err == sql.ErrNoRows {
			return errors.NotFound{Entity: "tproperties", ID: name}
		}

		if err != nil {
			return errors.ConnectingError{Err: err}
		}

		if err := checkCanPost(ctx, tx, tpropertyID, tp.Datetimes); err != nil {
			return err
		}

		group, err := nextDatetimeGroup(ctx, tx, tpropertyID)
		if err != nil {
			return err
		}

		return insertValueSequence(ctx, tx, tpropertyID, group, tp)
	})
}

// DeleteTemporalProperty removes a tProperty by name; its value sequences
// cascade via tpropertiesvalue's FK on tproperties.id (§5).
func (s *Store) DeleteTemporalProperty(ctx context.Context, collectionID, mfeatureID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tproperties WHERE collection_id = $1 AND mfeature_id = $2 AND name = $3`,
		collectionID, mfeatureID, name)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return requireAffected(res, "tproperties", name)
}

// ListTemporalProperties returns every tProperty owned by a feature,
// ordered by name. Only the property rows are read; value sequences are
// fetched separately with ListValueSequences.
func (s *Store) ListTemporalProperties(ctx context.Context, collectionID, mfeatureID string) ([]domain.TemporalProperty, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, mfeature_id, collection_id, name, value_type FROM tproperties
			WHERE collection_id = $1 AND mfeature_id = $2 ORDER BY name`, collectionID, mfeatureID)
	if err != nil {
		return nil, errors.ConnectingError{Err: err}
	}

	defer rows.Close()

	out := make([]domain.TemporalProperty, 0)

	for rows.Next() {
		var tp domain.TemporalProperty

		if err := rows.Scan(&tp.ID, &tp.MFeatureID, &tp.CollectionID, &tp.Name, &tp.ValueType); err != nil {
			return nil, errors.ConnectingError{Err: err}
		}

		out = append(out, tp)
	}

	return out, rows.Err()
}

// ListValueSequences returns every ValueSequence belonging to a tProperty,
// ordered by datetime_group, optionally restricted to a period.
func (s *Store) ListValueSequences(ctx context.Context, tpropertyID string, period string) ([]domain.ValueSequence, error) {
	clauses := []string{"tproperties_id = $1"}
	args := []interface{}{tpropertyID}

	if period != "" {
		clauses = append(clauses, fmt.Sprintf(
			`period(datetimes[1], datetimes[array_upper(datetimes,1)], lower_inc, upper_inc) && period(%s)`, quoteLiteral(period)))
	}

	rows, err := s.db.QueryxContext(ctx,
		fmt.Sprintf(`SELECT id, tproperties_id, datetime_group, interpolation, datetimes, numeric_values, text_values, lower_inc, upper_inc
			FROM tpropertiesvalue WHERE %s ORDER BY datetime_group`, strings.Join(clauses, " AND ")), args...)
	if err != nil {
		return nil, errors.ConnectingError{Err: err}
	}

	defer rows.Close()

	out := make([]domain.ValueSequence, 0)

	for rows.Next() {
		vs, err := scanValueSequence(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, vs)
	}

	return out, rows.Err()
}

func scanValueSequence(rows *sqlx.Rows) (domain.ValueSequence, error) {
	var (
		vs                 domain.ValueSequence
		interp             string
		datetimes          pq.StringArray
		numeric            pq.Float64Array
		text               pq.StringArray
		lowerInc, upperInc bool
	)

	if err := rows.Scan(&vs.ID, &vs.TPropertyID, &vs.DatetimeGroup, &interp,
		&datetimes, &numeric, &text, &lowerInc, &upperInc); err != nil {
		return domain.ValueSequence{}, errors.ConnectingError{Err: err}
	}

	vs.Interpolation = domain.Interpolation(interp)
	vs.LowerInc = lowerInc
	vs.UpperInc = upperInc

	times := make([]stdTime, len(datetimes))

	for i, raw := range datetimes {
		t, err := parseStoreTimestamp(raw)
		if err != nil {
			return domain.ValueSequence{}, errors.ConnectingError{Err: err}
		}

		times[i] = t
	}

	vs.Datetimes = times
	vs.NumericValues = numeric
	vs.TextValues = text

	return vs, nil
}
