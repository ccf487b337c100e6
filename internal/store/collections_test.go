package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/pkg/mf/errors"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	return New(sqlx.NewDb(db, "postgres")), mock
}

func TestGetCollection_Success(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "item_type", "update_frequency", "property"}).
		AddRow("c1", "Fleet", "a fleet of vehicles", "movingfeature", 60, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, item_type, update_frequency, property FROM collection WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(rows)

	c, err := s.GetCollection(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Equal(t, domain.Collection{ID: "c1", Title: "Fleet", Description: "a fleet of vehicles", ItemType: "movingfeature", UpdateFrequency: 60}, c)
}

func TestGetCollection_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, item_type, update_frequency, property FROM collection WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "item_type", "update_frequency", "property"}))

	_, err := s.GetCollection(context.Background(), "missing")

	assert.Equal(t, errors.NotFound{Entity: "collection", ID: "missing"}, err)
}

func TestCreateCollection(t *testing.T) {
	s, mock := newMockStore(t)

	c := domain.Collection{ID: "c1", Title: "Fleet", ItemType: "movingfeature"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collection (id, title, description, item_type, update_frequency, property) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs(c.ID, c.Title, c.Description, c.ItemType, c.UpdateFrequency, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := s.CreateCollection(context.Background(), c)

	assert.NoError(t, err)
	assert.Equal(t, "c1", id)
}

func TestCreateCollection_GeneratesIDWhenAbsent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collection (id, title, description, item_type, update_frequency, property) VALUES ($1, $2, $3, $4, $5, $6)")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := s.CreateCollection(context.Background(), domain.Collection{Title: "Fleet"})

	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestDeleteCollection_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collection WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteCollection(context.Background(), "missing")

	assert.Equal(t, errors.NotFound{Entity: "collection", ID: "missing"}, err)
}
