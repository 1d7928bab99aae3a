package slugify

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "hello-world", Make("Hello World"))
	assert.Equal(t, "hello-world", Make("  Hello   World!  "))
	assert.Equal(t, "hello-world", Make("hello_world"))
	assert.Equal(t, "my-shop-2024", Make("My Shop 2024"))
	assert.Equal(t, "", Make("!!!"))
}

func TestWithSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^odecor-[a-z0-9]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s := WithSuffix("odecor")
		require.Regexp(t, pattern, s)
		seen[s] = true
	}
	// Suffixes are random; twenty draws colliding every time would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}
