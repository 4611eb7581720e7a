package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTzOffset(t *testing.T) {
	assert.Equal(t, 0, parseTzOffset(""))
	assert.Equal(t, -180, parseTzOffset("-180"), "São Paulo")
	assert.Equal(t, 540, parseTzOffset("540"), "Tokyo")
	assert.Equal(t, 0, parseTzOffset("junk"))
	assert.Equal(t, 0, parseTzOffset("100000"), "out of range falls back to UTC")
	assert.Equal(t, 0, parseTzOffset("-100000"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, validDate("2024-02-29"))
	assert.False(t, validDate("2024-2-9"))
	assert.False(t, validDate("29/02/2024"))
	assert.False(t, validDate(""))
}
