package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/mf-api/server/internal/store"
	"github.com/mf-api/server/pkg/mf"
)

func newTestHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	return New(store.New(sqlx.NewDb(db, "postgres"))), mock
}

func newTestContext(method, target string, pathParams map[string]string) *mf.Context {
	r := httptest.NewRequest(method, target, nil)
	req := mf.NewRequest(r, pathParams, []string{"en"})

	return mf.NewContext(req, nil)
}

func TestGetCollection_HandlerReturnsNotFound(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, item_type, update_frequency, property FROM collection WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "item_type", "update_frequency", "property"}))

	ctx := newTestContext(http.MethodGet, "/collections/missing", map[string]string{"collectionId": "missing"})

	_, err := h.GetCollection(ctx)

	assert.Error(t, err)
}

func TestGetCollection_MissingPathParam(t *testing.T) {
	h, _ := newTestHandlers(t)

	ctx := newTestContext(http.MethodGet, "/collections/", nil)

	_, err := h.GetCollection(ctx)

	assert.Error(t, err)
}

func TestCreateCollection_GeneratesIDWhenAbsent(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collection (id, title, description, item_type, update_frequency, property) VALUES ($1, $2, $3, $4, $5, $6)")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT xmin(box), ymin(box), xmax(box), ymax(box), zmin(box), zmax(box),
			lower(period(box)), upper(period(box)), lower_inc(period(box)), upper_inc(period(box))
			FROM (SELECT extent(extent) AS box FROM mfeature WHERE collection_id = $1) sub`)).
		WillReturnRows(sqlmock.NewRows([]string{"xmin", "ymin", "xmax", "ymax", "zmin", "zmax", "lower", "upper", "lower_inc", "upper_inc"}).
			AddRow(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	r := httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(`{"title":"fleet"}`))
	req := mf.NewRequest(r, nil, []string{"en"})
	ctx := mf.NewContext(req, nil)

	resp, err := h.CreateCollection(ctx)

	assert.NoError(t, err)

	created, ok := resp.(mf.Created)
	assert.True(t, ok)
	assert.NotEmpty(t, created.Location)
}

func TestListCollections_Empty(t *testing.T) {
	h, mock := newTestHandlers(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, item_type, update_frequency, property FROM collection")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "item_type", "update_frequency", "property"}))

	ctx := newTestContext(http.MethodGet, "/collections", nil)

	resp, err := h.ListCollections(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
}
