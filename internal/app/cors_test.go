package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	allow := originChecker([]string{"tagshop.io", "*.tagshop.io", "localhost:*"})

	assert.True(t, allow("https://tagshop.io"))
	assert.True(t, allow("https://creator.tagshop.io"))
	assert.True(t, allow("http://localhost:3000"))
	assert.True(t, allow("http://localhost:5173"))
	assert.False(t, allow("https://tagshop.io.evil.com"))
	assert.False(t, allow("https://example.com"))

	none := originChecker(nil)
	assert.False(t, none("https://tagshop.io"))
}
