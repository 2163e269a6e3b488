package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("trims the name", func(t *testing.T) {
		c, err := NewCategory("  Молочные продукты ")
		require.NoError(t, err)
		assert.Equal(t, "Молочные продукты", c.Name)
		assert.Equal(t, "Молочные продукты", c.String())
		assert.True(t, c.IsNew())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCategory("   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("length is counted in characters", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("я", 100))
		require.NoError(t, err)

		_, err = NewCategory(strings.Repeat("я", 101))
		require.Error(t, err)
	})
}
