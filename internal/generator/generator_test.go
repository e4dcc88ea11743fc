package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
)

func TestTownName(t *testing.T) {
	assert.Equal(t, domain.NodeID("A"), TownName(0))
	assert.Equal(t, domain.NodeID("Z"), TownName(25))
	assert.Equal(t, domain.NodeID("T27"), TownName(26))
	assert.Equal(t, domain.NodeID("T100"), TownName(99))
}

func TestGenerate_ProducesValidNetwork(t *testing.T) {
	cfg := Config{Towns: 30, EdgeChance: 0.2, MinDistance: 2, MaxDistance: 6, Seed: 7}
	edges, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, edges)

	outgoing := make(map[domain.NodeID]int)
	for _, e := range edges {
		assert.NotEqual(t, e.From, e.To, "self loop")
		assert.GreaterOrEqual(t, e.Weight, 2)
		assert.LessOrEqual(t, e.Weight, 6)
		outgoing[e.From]++
	}
	assert.Len(t, outgoing, 30)

	n, err := routing.New(edges)
	require.NoError(t, err)
	assert.True(t, n.HasTown("T30"))
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Towns: 8, Seed: 99}
	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNew_Defaults(t *testing.T) {
	got := New(Config{Seed: 1, MinDistance: 5, MaxDistance: 2}).Config()
	assert.Equal(t, DefaultConfig().Towns, got.Towns)
	assert.Equal(t, DefaultConfig().EdgeChance, got.EdgeChance)
	assert.Equal(t, 5, got.MinDistance)
	assert.Equal(t, 9, got.MaxDistance)
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteNetwork_RoundTrip(t *testing.T) {
	edges, err := New(Config{Towns: 5, Seed: 3}).Generate(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "network.yaml")
	require.NoError(t, WriteNetwork(edges, path))

	loaded, err := network.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, edges, loaded)
	assert.Equal(t, network.Fingerprint(edges), network.Fingerprint(loaded))
}
