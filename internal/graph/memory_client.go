package graph

import (
	"context"
	"maps"
	"sync"
)

// MemoryClient is an in-memory Client for tests. Reads and writes are
// recorded, and queued results are returned in FIFO order.
type MemoryClient struct {
	mu           sync.Mutex
	reads        []Query
	writes       []Query
	readQueue    []Result
	failure      error
	connectivity error
	closed       bool
}

// Query is a recorded Cypher statement with its parameters.
type Query struct {
	Cypher string
	Params map[string]any
}

// NewMemoryClient returns an empty MemoryClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// FailWith makes every subsequent read and write return err.
func (m *MemoryClient) FailWith(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
	return m
}

// Unreachable makes VerifyConnectivity return err.
func (m *MemoryClient) Unreachable(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// QueueRead appends a result for a future ExecuteRead call.
func (m *MemoryClient) QueueRead(res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readQueue = append(m.readQueue, res)
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return Result{}, m.failure
	}
	m.writes = append(m.writes, Query{Cypher: cypher, Params: maps.Clone(params)})
	return Result{}, nil
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return Result{}, m.failure
	}
	m.reads = append(m.reads, Query{Cypher: cypher, Params: maps.Clone(params)})

	if len(m.readQueue) == 0 {
		return Result{}, nil
	}
	res := m.readQueue[0]
	m.readQueue = m.readQueue[1:]
	return res, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Reads returns a snapshot of executed read queries.
func (m *MemoryClient) Reads() []Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Query(nil), m.reads...)
}

// Writes returns a snapshot of executed write queries.
func (m *MemoryClient) Writes() []Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Query(nil), m.writes...)
}

// Closed reports whether Close has been called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
