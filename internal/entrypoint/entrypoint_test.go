package entrypoint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFSecret(t *testing.T) {
	t.Run("uses a hex key as is", func(t *testing.T) {
		hexKey := strings.Repeat("ab", 32)
		secret, err := csrfSecret(hexKey)
		require.NoError(t, err)
		assert.Len(t, secret, 32)
		assert.Equal(t, byte(0xab), secret[0])
	})

	t.Run("hashes other values to 32 bytes", func(t *testing.T) {
		first, err := csrfSecret("correct horse battery staple")
		require.NoError(t, err)
		second, err := csrfSecret("correct horse battery staple")
		require.NoError(t, err)
		assert.Len(t, first, 32)
		assert.Equal(t, first, second)
	})

	t.Run("generates a random key when empty", func(t *testing.T) {
		first, err := csrfSecret("")
		require.NoError(t, err)
		second, err := csrfSecret("")
		require.NoError(t, err)
		assert.Len(t, first, 32)
		assert.NotEqual(t, first, second)
	})
}
