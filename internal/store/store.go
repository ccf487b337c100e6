// Package store is the Data Access Layer (§4.D): one file per resource
// kind, each a thin struct wrapping *sqlx.DB, composing the spatiotemporal
// predicates MobilityDB understands and scanning results back into
// internal/domain types. Modelled on the teacher's examples/using-postgres
// store (QueryContext/QueryRowContext/ExecContext, $N placeholders,
// errors.DB wrapping).
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/mf-api/server/pkg/mf/errors"
)

// Store is the DAL entry point; one instance is shared across requests,
// each method opening its own query/transaction against the pool (§5: no
// per-request dedicated connection except where a transaction is used).
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sqlx.DB and *sqlx.Tx, letting the query
// helpers below run inside or outside a transaction interchangeably.
type querier interface {
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// withTx runs fn inside a new transaction, committing on success and
// rolling back on any error (used by CreateFeature's nested ingestion,
// §5's "MAY strengthen cross statement atomicity").
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.ConnectingError{Err: err}
	}

	return nil
}

// encodeProperty marshals a free-form §3 "property" descriptor to the JSON
// text the collection/mfeature "property" column stores; a nil map stores
// as SQL NULL rather than the literal "null".
func encodeProperty(p map[string]any) (interface{}, error) {
	if p == nil {
		return nil, nil
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, errors.InvalidParameterValue{Param: []string{"property"}}
	}

	return string(b), nil
}

// decodeProperty reverses encodeProperty, tolerating the column being NULL.
func decodeProperty(raw sql.NullString) (map[string]any, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	var p map[string]any
	if err := json.Unmarshal([]byte(raw.String), &p); err != nil {
		return nil, errors.ConnectingError{Err: err}
	}

	return p, nil
}

// advisoryLock serializes a critical section across concurrent requests
// sharing the same (collectionID, mfeatureID, tPropertyName) — used by
// canPost's conflict check and by datetime_group allocation (§5), both of
// which read-modify-write state that two concurrent POSTs could race on.
func advisoryLock(ctx context.Context, tx *sqlx.Tx, collectionID, mfeatureID, name string) error {
	key := collectionID + "/" + mfeatureID + "/" + name

	_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return nil
}
