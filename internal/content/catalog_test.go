package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	e, ok := c.Enemy("typo-gremlin")
	require.True(t, ok)
	assert.Equal(t, 30, e.HP)
	assert.Equal(t, "throws a typo at you", e.AttackMessage(3))

	_, ok = c.Enemy("missing")
	assert.False(t, ok)

	r, ok := c.Ritual("summoning")
	require.True(t, ok)
	assert.Len(t, r.Incantation, 3)

	d, ok := c.Dialogue("greeting")
	require.True(t, ok)
	assert.Contains(t, d.Lines, "Hello, friend")

	ids := c.EnemyIDs()
	assert.Contains(t, ids, "the-backspace")
	assert.IsNonDecreasing(t, ids)
}

func TestLoadOverridesAndMissingFile(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	_, ok := c.Enemy("keyboard-slime")
	assert.True(t, ok)

	path := filepath.Join(dir, "catalog.yaml")
	data := []byte("enemies:\n  - id: keyboard-slime\n    name: Mega Slime\n    hp: 99\n  - id: lint-imp\n    name: Lint Imp\n    hp: 12\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err = Load(path)
	require.NoError(t, err)
	slime, ok := c.Enemy("keyboard-slime")
	require.True(t, ok)
	assert.Equal(t, 99, slime.HP)
	_, ok = c.Enemy("lint-imp")
	assert.True(t, ok)
	_, ok = c.Enemy("typo-gremlin")
	assert.True(t, ok)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enemies:\n  - name: Nameless\n    hp: 5\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("enemies: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
