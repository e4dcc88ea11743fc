package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// RouteWriter persists a single network edge.
type RouteWriter interface {
	UpsertRoute(ctx context.Context, edge domain.Edge) error
}

// BulkIngestor writes network edges to the graph store with bounded concurrency.
// A failed edge does not stop the others; failures are reported together.
type BulkIngestor struct {
	writer  RouteWriter
	workers int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(writer RouteWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
	}
}

// IngestRoutes upserts every edge concurrently.
func (bi *BulkIngestor) IngestRoutes(ctx context.Context, edges []domain.Edge) error {
	return bi.run(ctx, len(edges), func(idx int) error {
		return bi.writer.UpsertRoute(ctx, edges[idx])
	})
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		taskErr TaskError
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bi.workers)
	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := workerFn(i)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			mu.Lock()
			taskErr.append(err)
			mu.Unlock()
			return nil
		})
	}
	waitErr := g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}
	return taskErr.asError()
}
