package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"resample.iterations": 10}
	store := NewConfigStore(seed)

	seed["resample.iterations"] = 99
	assert.Equal(t, 10, store.GetInt("resample.iterations"), "seed map is copied")
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("output.dir", "out"))
	require.NoError(t, store.Set("output.dir", "results"))

	val, ok := store.Get("output.dir")
	assert.True(t, ok)
	assert.Equal(t, "results", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{"s": "v", "n": 1})

	assert.Equal(t, "v", store.GetString("s"))
	assert.Equal(t, "", store.GetString("n"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"int":     5,
		"int64":   int64(6),
		"float":   7.9,
		"string":  "8",
		"garbage": "eight",
		"bool":    true,
	})

	assert.Equal(t, 5, store.GetInt("int"))
	assert.Equal(t, 6, store.GetInt("int64"))
	assert.Equal(t, 7, store.GetInt("float"))
	assert.Equal(t, 8, store.GetInt("string"))
	assert.Equal(t, 0, store.GetInt("garbage"))
	assert.Equal(t, 0, store.GetInt("bool"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{"on": true, "off": false, "str": "true"})

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("off"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Unset(t *testing.T) {
	store := NewConfigStore(map[string]any{"resample.seed": "42"})

	require.NoError(t, store.Unset("resample.seed"))
	_, ok := store.Get("resample.seed")
	assert.False(t, ok)

	assert.NoError(t, store.Unset("missing"))
}

func TestConfigStore_SaveAndLoad(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, 2, store.Saves())
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore(map[string]any{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("k", i)
			_ = store.GetInt("k")
			_ = store.Keys()
		}()
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}
