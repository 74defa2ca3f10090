package pipeline

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// StateCache defines the interface for the global pipeline state cache.
// States are keyed by full structural equality of their descriptions; the
// cache is append-mostly and safe for concurrent lookups with
// insert-if-absent semantics.
type StateCache interface {
	// GetOrCreate retrieves the pipeline state for the description, creating
	// and caching it if no structurally equal description was seen before.
	// Submitting two equal descriptions yields the identical PipelineState.
	//
	// Parameters:
	//   - desc: the complete state description
	//
	// Returns:
	//   - PipelineState: the shared pipeline state for the description
	GetOrCreate(desc StateDescription) PipelineState

	// State retrieves the cached pipeline state for a key, or nil.
	//
	// Parameters:
	//   - key: the canonical state key
	//
	// Returns:
	//   - PipelineState: the cached state, or nil if not present
	State(key string) PipelineState

	// Len retrieves the number of cached pipeline states.
	//
	// Returns:
	//   - int: the cache entry count
	Len() int
}

// stateCache is the implementation of the StateCache interface.
type stateCache struct {
	mu     *sync.RWMutex
	states map[string]PipelineState
}

var _ StateCache = &stateCache{}

// NewStateCache creates an empty pipeline state cache.
//
// Returns:
//   - StateCache: a new cache instance
func NewStateCache() StateCache {
	return &stateCache{
		mu:     &sync.RWMutex{},
		states: make(map[string]PipelineState),
	}
}

func (c *stateCache) GetOrCreate(desc StateDescription) PipelineState {
	key := desc.Key()

	c.mu.RLock()
	state, ok := c.states[key]
	c.mu.RUnlock()
	if ok {
		return state
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if state, ok = c.states[key]; ok {
		return state
	}

	// Copy the layout slice so the cached state does not alias caller memory.
	desc.VertexLayouts = append([]wgpu.VertexBufferLayout(nil), desc.VertexLayouts...)
	state = &pipelineState{key: key, desc: desc}
	c.states[key] = state
	return state
}

func (c *stateCache) State(key string) PipelineState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states[key]
}

func (c *stateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}
