package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	attributes, err := ParseAttributes([]string{"solid", "ice", "unisolid"})
	require.NoError(t, err)
	assert.Equal(t, TileSolid|TileIce|TileUnisolid, attributes)

	attributes, err = ParseAttributes(nil)
	require.NoError(t, err)
	assert.Zero(t, attributes)

	_, err = ParseAttributes([]string{"solid", "lava"})
	assert.ErrorContains(t, err, "lava")
}

func TestGroupRoles(t *testing.T) {
	assert.True(t, MovingStatic.IsMoving())
	assert.True(t, MovingStatic.IsObstacle())
	assert.True(t, MovingOnlyStatic.IsMoving())
	assert.False(t, Touchable.IsMoving())
	assert.False(t, Moving.IsObstacle())
	assert.Equal(t, "moving-static", MovingStatic.String())
}
