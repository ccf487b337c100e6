package mf

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/collections?bbox=1,2,3,4", nil)
	req := NewRequest(r, map[string]string{"collectionId": "c1"}, []string{"en"})

	assert.Equal(t, "1,2,3,4", req.Param("bbox"))
	assert.Equal(t, "c1", req.PathParam("collectionId"))
}

func TestNewRequestBind(t *testing.T) {
	body := `{"id":"c1"}`
	r := httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	req := NewRequest(r, nil, []string{"en"})

	var out struct {
		ID string `json:"id"`
	}

	assert.NoError(t, req.Bind(&out))
	assert.Equal(t, "c1", out.ID)
}

func TestNegotiateFormatQueryParamWins(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/collections?f=html", nil)
	r.Header.Set("Accept", "application/json")

	req := NewRequest(r, nil, []string{"en"})

	assert.Equal(t, "html", req.Format())
}

func TestNegotiateFormatFromAcceptHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/collections", nil)
	r.Header.Set("Accept", "application/ld+json, application/json")

	req := NewRequest(r, nil, []string{"en"})

	assert.Equal(t, "jsonld", req.Format())
}

func TestNegotiateLocaleQueryParamWins(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/collections?lang=fr", nil)
	r.Header.Set("Accept-Language", "en")

	req := NewRequest(r, nil, []string{"en", "fr"})

	assert.Equal(t, "fr", req.Locale())
}

func TestNegotiateLocaleDefaultsToFirstSupported(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/collections", nil)

	req := NewRequest(r, nil, []string{"en", "fr"})

	assert.Equal(t, "en", req.Locale())
}
