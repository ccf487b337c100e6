package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateTimeInstant(t *testing.T) {
	iv, err := DateTime("2023-01-01T00:00:00Z")

	assert.NoError(t, err)
	assert.True(t, iv.IsInstant)
	assert.Equal(t, "[2023-01-01T00:00:00Z,2023-01-01T00:00:00Z]", iv.Period())
}

func TestDateTimeInterval(t *testing.T) {
	iv, err := DateTime("2023-01-01T00:00:00Z/2023-06-01T00:00:00Z")

	assert.NoError(t, err)
	assert.False(t, iv.IsInstant)
	assert.Equal(t, "[2023-01-01T00:00:00Z,2023-06-01T00:00:00Z]", iv.Period())
}

func TestDateTimeOpenStart(t *testing.T) {
	iv, err := DateTime("../2023-06-01T00:00:00Z")

	assert.NoError(t, err)
	assert.True(t, iv.OpenStart)
	assert.Equal(t, "[,2023-06-01T00:00:00Z]", iv.Period())
}

func TestDateTimeOpenEnd(t *testing.T) {
	iv, err := DateTime("2023-01-01T00:00:00Z/..")

	assert.NoError(t, err)
	assert.True(t, iv.OpenEnd)
	assert.Equal(t, "[2023-01-01T00:00:00Z,]", iv.Period())
}

func TestDateTimeOpenEndBareEmptySide(t *testing.T) {
	iv, err := DateTime("2023-01-01T00:00:00Z/")

	assert.NoError(t, err)
	assert.True(t, iv.OpenEnd)
	assert.Equal(t, "[2023-01-01T00:00:00Z,]", iv.Period())
}

func TestDateTimeOpenStartBareEmptySide(t *testing.T) {
	iv, err := DateTime("/2023-06-01T00:00:00Z")

	assert.NoError(t, err)
	assert.True(t, iv.OpenStart)
	assert.Equal(t, "[,2023-06-01T00:00:00Z]", iv.Period())
}

func TestDateTimeRejectsBothOpen(t *testing.T) {
	_, err := DateTime("../..")
	assert.Error(t, err)
}

func TestDateTimeRejectsReversedRange(t *testing.T) {
	_, err := DateTime("2023-06-01T00:00:00Z/2023-01-01T00:00:00Z")
	assert.Error(t, err)
}

func TestDateTimeRejectsMalformed(t *testing.T) {
	_, err := DateTime("not-a-date")
	assert.Error(t, err)
}

func TestDateTimeEmpty(t *testing.T) {
	iv, err := DateTime("")
	assert.NoError(t, err)
	assert.Nil(t, iv)
}
