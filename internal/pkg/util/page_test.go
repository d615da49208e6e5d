package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = NormalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxLimit, limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 0, Offset(-1, 10))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 2, TotalPages(15, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(21, 10))
}

func TestNewID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, IDLength)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestValidateID(t *testing.T) {
	assert.True(t, ValidateID(NewID()))
	assert.False(t, ValidateID(""))
	assert.False(t, ValidateID("short"))
	assert.False(t, ValidateID("aaaaaaaaaa/aaaaaaaaaa"))
}

func TestValidateDTO(t *testing.T) {
	type sample struct {
		Name string `validate:"required,max=3"`
	}
	assert.NoError(t, ValidateDTO(&sample{Name: "abc"}))
	err := ValidateDTO(&sample{Name: "abcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}
