package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("reader.theme", "light"))
	require.NoError(t, store.Set("reader.show_progress", true))
	require.NoError(t, store.Set("reader.font_size", 14))

	assert.Equal(t, "light", store.GetString("reader.theme"))
	assert.True(t, store.GetBool("reader.show_progress"))
	assert.Equal(t, 14, store.GetInt("reader.font_size"))

	val, ok := store.Get("reader.theme")
	assert.True(t, ok)
	assert.Equal(t, "light", val)
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "not a number"))

	assert.Zero(t, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_IntConversions(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("i64", int64(42)))
	require.NoError(t, store.Set("f64", float64(7)))

	assert.Equal(t, 42, store.GetInt("i64"))
	assert.Equal(t, 7, store.GetInt("f64"))
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
