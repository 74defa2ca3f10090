package shader

import (
	"strconv"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// CompileFunc produces a shader module descriptor for a (stage, name, defines)
// variation. Returning nil means no source exists for the name; the variation
// is recorded as missing and the affected batch is skipped by its caller.
type CompileFunc func(stage Stage, name, defines string) *wgpu.ShaderModuleDescriptor

// Resolver defines the interface for resolving shader variations. Resolution
// is memoized: repeated lookups for the same (stage, name, defines) return the
// same Shader handle.
type Resolver interface {
	// Resolve retrieves the shader variation for the given stage, name and
	// defines, compiling and caching it on first sight. Returns nil when no
	// shader exists for the name.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//   - name: the shader name
	//   - defines: the space-separated define string
	//
	// Returns:
	//   - Shader: the resolved shader variation, or nil if missing
	Resolve(stage Stage, name, defines string) Shader

	// Len retrieves the number of cached variations, including recorded misses.
	//
	// Returns:
	//   - int: the cache entry count
	Len() int
}

// cache is the implementation of the Resolver interface.
type cache struct {
	mu      *sync.RWMutex
	compile CompileFunc
	shaders map[string]Shader
}

var _ Resolver = &cache{}

// NewCache creates a shader Resolver backed by the given compile function.
// Panics if compile is nil.
//
// Parameters:
//   - compile: produces module descriptors for shader variations
//
// Returns:
//   - Resolver: a new memoizing shader resolver
func NewCache(compile CompileFunc) Resolver {
	if compile == nil {
		panic("shader: NewCache requires a non-nil compile function")
	}
	return &cache{
		mu:      &sync.RWMutex{},
		compile: compile,
		shaders: make(map[string]Shader),
	}
}

func (c *cache) Resolve(stage Stage, name, defines string) Shader {
	if name == "" {
		return nil
	}
	key := variationKey(stage, name, defines)

	c.mu.RLock()
	s, seen := c.shaders[key]
	c.mu.RUnlock()
	if seen {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, seen = c.shaders[key]; seen {
		return s
	}

	module := c.compile(stage, name, defines)
	if module == nil {
		// Record the miss so missing sources are not recompiled every frame.
		c.shaders[key] = nil
		return nil
	}
	s = &shaderImpl{
		key:     key,
		name:    name,
		stage:   stage,
		defines: defines,
		module:  module,
	}
	c.shaders[key] = s
	return s
}

func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shaders)
}

// variationKey builds the cache key for a shader variation.
func variationKey(stage Stage, name, defines string) string {
	return strconv.Itoa(int(stage)) + "|" + name + "|" + defines
}
