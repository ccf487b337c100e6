package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagingDefaults(t *testing.T) {
	limit, offset, err := Paging("", "")

	assert.NoError(t, err)
	assert.Equal(t, defaultLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestPagingExplicit(t *testing.T) {
	limit, offset, err := Paging("50", "100")

	assert.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)
}

func TestPagingRejectsZeroLimit(t *testing.T) {
	_, _, err := Paging("0", "")
	assert.Error(t, err)
}

func TestPagingRejectsOverMax(t *testing.T) {
	_, _, err := Paging("100000", "")
	assert.Error(t, err)
}

func TestPagingRejectsNegativeOffset(t *testing.T) {
	_, _, err := Paging("", "-1")
	assert.Error(t, err)
}
