package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFrontierFIFO(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFrontier()

	require.NoError(t, f.Push(ctx, "https://www.amazon.com/dp/B00000000A"))
	require.NoError(t, f.Push(ctx, "https://www.amazon.com/dp/B00000000B"))

	n, err := f.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	first, err := f.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com/dp/B00000000A", first)

	second, err := f.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com/dp/B00000000B", second)
}

func TestMemoryFrontierEmpty(t *testing.T) {
	f := NewMemoryFrontier()

	_, err := f.Pop(context.Background())
	assert.ErrorIs(t, err, ErrFrontierEmpty)
}
