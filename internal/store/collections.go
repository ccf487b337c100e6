package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/pkg/mf/errors"
)

// ListCollections returns every registered collection, ordered by id for
// stable pagination across repeated calls.
func (s *Store) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, title, description, item_type, update_frequency, property FROM collection ORDER BY id`)
	if err != nil {
		return nil, errors.ConnectingError{Err: err}
	}

	defer rows.Close()

	out := make([]domain.Collection, 0)

	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

// GetCollection fetches a single collection by id, returning
// errors.NotFound when it does not exist.
func (s *Store) GetCollection(ctx context.Context, id string) (domain.Collection, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT id, title, description, item_type, update_frequency, property FROM collection WHERE id = $1`, id)

	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return domain.Collection{}, errors.NotFound{Entity: "collection", ID: id}
	}

	return c, err
}

func scanCollection(row interface{ Scan(dest ...interface{}) error }) (domain.Collection, error) {
	var (
		c        domain.Collection
		property sql.NullString
	)

	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.ItemType, &c.UpdateFrequency, &property); err != nil {
		if err == sql.ErrNoRows {
			return domain.Collection{}, err
		}

		return domain.Collection{}, errors.ConnectingError{Err: err}
	}

	p, err := decodeProperty(property)
	if err != nil {
		return domain.Collection{}, err
	}

	c.Property = p

	return c, nil
}

// CreateCollection inserts a new collection, §3's unit of ownership for
// every moving feature beneath it, returning the id actually stored.
// Identifiers are opaque and server-assigned (§3): when c.ID is empty one
// is generated here, the same way insertTemporalGeometry mints a uuid when
// the MF-JSON body omits one.
func (s *Store) CreateCollection(ctx context.Context, c domain.Collection) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	property, err := encodeProperty(c.Property)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collection (id, title, description, item_type, update_frequency, property) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Title, c.Description, c.ItemType, c.UpdateFrequency, property)
	if err != nil {
		return "", errors.ConnectingError{Err: err}
	}

	return c.ID, nil
}

// UpdateCollection replaces a collection's mutable fields.
func (s *Store) UpdateCollection(ctx context.Context, c domain.Collection) error {
	property, err := encodeProperty(c.Property)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE collection SET title = $1, description = $2, item_type = $3, update_frequency = $4, property = $5 WHERE id = $6`,
		c.Title, c.Description, c.ItemType, c.UpdateFrequency, property, c.ID)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return requireAffected(res, "collection", c.ID)
}

// DeleteCollection removes a collection and, via ON DELETE CASCADE on the
// child tables (§5: deleting a collection cascades to every feature,
// tGeometry and tProperty beneath it), everything it owns.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collection WHERE id = $1`, id)
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	return requireAffected(res, "collection", id)
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.ConnectingError{Err: err}
	}

	if n == 0 {
		return errors.NotFound{Entity: entity, ID: id}
	}

	return nil
}
