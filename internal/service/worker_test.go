package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
)

type stubRouteWriter struct {
	mu      sync.Mutex
	written []domain.Edge
	failOn  domain.NodeID
}

func (s *stubRouteWriter) UpsertRoute(_ context.Context, edge domain.Edge) error {
	if edge.From == s.failOn {
		return errors.New("write failed for " + string(edge.From))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, edge)
	return nil
}

func TestBulkIngestor_IngestRoutes(t *testing.T) {
	writer := &stubRouteWriter{}
	ingestor := NewBulkIngestor(writer, 3)

	require.NoError(t, ingestor.IngestRoutes(context.Background(), network.Reference()))
	assert.ElementsMatch(t, network.Reference(), writer.written)
}

func TestBulkIngestor_AggregatesErrors(t *testing.T) {
	writer := &stubRouteWriter{failOn: "A"}
	ingestor := NewBulkIngestor(writer, 2)

	err := ingestor.IngestRoutes(context.Background(), network.Reference())
	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Len(t, taskErr.Errors, 3)
	assert.Contains(t, err.Error(), "multiple errors")
	assert.Len(t, writer.written, 6)
}

func TestBulkIngestor_Empty(t *testing.T) {
	assert.NoError(t, NewBulkIngestor(&stubRouteWriter{}, 0).IngestRoutes(context.Background(), nil))
}

func TestBulkIngestor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewBulkIngestor(&stubRouteWriter{}, 1).IngestRoutes(ctx, network.Reference())
	assert.ErrorIs(t, err, context.Canceled)
}

type concurrencyWriter struct {
	active  atomic.Int32
	peak    atomic.Int32
	written atomic.Int32
}

func (c *concurrencyWriter) UpsertRoute(context.Context, domain.Edge) error {
	n := c.active.Add(1)
	defer c.active.Add(-1)
	for {
		peak := c.peak.Load()
		if n <= peak || c.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	c.written.Add(1)
	return nil
}

func TestBulkIngestor_BoundsConcurrency(t *testing.T) {
	writer := &concurrencyWriter{}

	require.NoError(t, NewBulkIngestor(writer, 2).IngestRoutes(context.Background(), network.Reference()))
	assert.EqualValues(t, 9, writer.written.Load())
	assert.LessOrEqual(t, writer.peak.Load(), int32(2))
}

type cancelingWriter struct{}

func (cancelingWriter) UpsertRoute(context.Context, domain.Edge) error {
	return context.DeadlineExceeded
}

func TestBulkIngestor_PropagatesContextErrors(t *testing.T) {
	err := NewBulkIngestor(cancelingWriter{}, 3).IngestRoutes(context.Background(), network.Reference())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var taskErr *TaskError
	assert.False(t, errors.As(err, &taskErr))
}
