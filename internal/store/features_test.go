package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/mf-api/server/pkg/mf/errors"
)

func featureCols() []string {
	return []string{"id", "collection_id", "property", "xmin", "ymin", "xmax", "ymax", "zmin", "zmax",
		"lower", "upper", "lower_inc", "upper_inc"}
}

func TestGetFeature_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, collection_id, property,
			xmin(extent), ymin(extent), xmax(extent), ymax(extent), zmin(extent), zmax(extent),
			lower(period(extent)), upper(period(extent)), lower_inc(period(extent)), upper_inc(period(extent))
			FROM mfeature WHERE collection_id = $1 AND id = $2`)).
		WithArgs("c1", "missing").
		WillReturnRows(sqlmock.NewRows(featureCols()))

	_, err := s.GetFeature(context.Background(), "c1", "missing")

	assert.Equal(t, errors.NotFound{Entity: "mfeature", ID: "missing"}, err)
}

func TestListFeatures_NoFilter(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM mfeature WHERE collection_id = $1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, collection_id, property,
			xmin(extent), ymin(extent), xmax(extent), ymax(extent), zmin(extent), zmax(extent),
			lower(period(extent)), upper(period(extent)), lower_inc(period(extent)), upper_inc(period(extent))
			FROM mfeature WHERE collection_id = $1 ORDER BY id LIMIT $2 OFFSET $3`)).
		WithArgs("c1", 10, 0).
		WillReturnRows(sqlmock.NewRows(featureCols()).AddRow("mf1", "c1", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	features, total, err := s.ListFeatures(context.Background(), "c1", FeatureFilter{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, features, 1)
	assert.Equal(t, "mf1", features[0].ID)
}

func TestDeleteFeature_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM mfeature WHERE collection_id = $1 AND id = $2`)).
		WithArgs("c1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteFeature(context.Background(), "c1", "missing")

	assert.Equal(t, errors.NotFound{Entity: "mfeature", ID: "missing"}, err)
}

func TestCollectionExtent_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT xmin(box), ymin(box), xmax(box), ymax(box), zmin(box), zmax(box),
			lower(period(box)), upper(period(box)), lower_inc(period(box)), upper_inc(period(box))
			FROM (SELECT extent(extent) AS box FROM mfeature WHERE collection_id = $1) sub`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"xmin", "ymin", "xmax", "ymax", "zmin", "zmax", "lower", "upper", "lower_inc", "upper_inc"}).
			AddRow(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	bbox, period, err := s.CollectionExtent(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Nil(t, bbox)
	assert.Nil(t, period)
}
