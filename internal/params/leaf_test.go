package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafAscending(t *testing.T) {
	got, err := Leaf("2023-01-01T00:00:00Z,2023-01-02T00:00:00Z,2023-01-03T00:00:00Z")

	assert.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLeafRejectsNonAscending(t *testing.T) {
	_, err := Leaf("2023-01-02T00:00:00Z,2023-01-01T00:00:00Z")
	assert.Error(t, err)
}

func TestLeafRejectsDuplicate(t *testing.T) {
	_, err := Leaf("2023-01-01T00:00:00Z,2023-01-01T00:00:00Z")
	assert.Error(t, err)
}

func TestLeafEmpty(t *testing.T) {
	got, err := Leaf("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
