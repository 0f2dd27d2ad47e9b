package theme

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, ok := ParseMode(" Light ")
	assert.True(t, ok)
	assert.Equal(t, Light, m)

	m, ok = ParseMode("DARK")
	assert.True(t, ok)
	assert.Equal(t, Dark, m)

	_, ok = ParseMode("sepia")
	assert.False(t, ok)
}

func TestModePresentation(t *testing.T) {
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, Light.Toggle())

	assert.Equal(t, Preference{Mode: Dark, Icon: "fas fa-moon", BodyClass: ""}, Dark.Preference())
	assert.Equal(t, Preference{Mode: Light, Icon: "fas fa-sun", BodyClass: "light-mode"}, Light.Preference())
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	mode, err := store.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)

	mode, err = Toggle(ctx, store, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, Light, mode)

	mode, err = store.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, Light, mode)

	mode, err = Toggle(ctx, store, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)

	// 其他访客不受影响
	require.NoError(t, store.Set(ctx, "visitor-2", Light))
	mode, err = store.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)

	assert.ErrorIs(t, store.Set(ctx, "visitor-1", Mode("sepia")), ErrInvalidMode)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteMemoryStore(t *testing.T) {
	store, err := OpenSQLiteMemory()
	require.NoError(t, err)
	defer store.Close()

	testStore(t, store)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "theme.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "v", Light))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	mode, err := reopened.Get(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, Light, mode)
	assert.Equal(t, path, reopened.Path())
}
