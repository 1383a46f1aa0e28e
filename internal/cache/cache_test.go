package cache

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestCache_New(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()

	tc := []struct {
		name      string
		opts      []Option
		expectErr bool
	}{
		{
			name: "creates cache with explicit options",
			opts: []Option{WithTTL(time.Hour), WithSize(10), WithCaching(true)},
		},
		{
			name: "creates cache with defaults",
			opts: nil,
		},
		{
			name:      "rejects non-positive TTL",
			opts:      []Option{WithTTL(0)},
			expectErr: true,
		},
		{
			name:      "rejects non-positive size",
			opts:      []Option{WithSize(-1)},
			expectErr: true,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCache[string](logger, testCase.opts...)
			if testCase.expectErr {
				require.Error(t, err)
				require.Nil(t, c)
			} else {
				require.NoError(t, err)
				require.NotNil(t, c)
			}
		})
	}
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](hclog.NewNullLogger(), WithTTL(time.Hour))
	require.NoError(t, err)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("answer", 42)
	got, ok := c.Get("answer")
	require.True(t, ok)
	require.Equal(t, 42, got)

	c.Set("answer", 43)
	got, ok = c.Get("answer")
	require.True(t, ok)
	require.Equal(t, 43, got)
}

func TestCache_EntriesExpire(t *testing.T) {
	t.Parallel()

	c, err := NewCache[string](hclog.NewNullLogger(), WithTTL(50*time.Millisecond))
	require.NoError(t, err)

	c.Set("key", "value")
	_, ok := c.Get("key")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)

	_, ok = c.Get("key")
	require.False(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	t.Parallel()

	c, err := NewCache[string](hclog.NewNullLogger(), WithCaching(false))
	require.NoError(t, err)

	c.Set("key", "value")
	_, ok := c.Get("key")
	require.False(t, ok)
}

func TestCache_EvictsBeyondSize(t *testing.T) {
	t.Parallel()

	c, err := NewCache[int](hclog.NewNullLogger(), WithSize(2), WithTTL(time.Hour))
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	require.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}
