package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies the pipeline stage a shader runs in.
type Stage int

const (
	// StageVertex is the vertex shader stage of a render pipeline.
	StageVertex Stage = iota

	// StagePixel is the pixel (fragment) shader stage of a render pipeline.
	StagePixel
)

// shaderImpl is the implementation of the Shader interface.
type shaderImpl struct {
	key     string
	name    string
	stage   Stage
	defines string
	module  *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a resolved shader variation: a named
// shader compiled for one stage with a specific define string. Shader source
// loading and translation happen outside this core; a Shader here is the
// opaque handle the pipeline state cache keys on.
type Shader interface {
	// Key retrieves the unique identifier of this shader variation, derived
	// from the stage, name and defines.
	//
	// Returns:
	//   - string: the shader variation key
	Key() string

	// Name retrieves the shader name the variation was resolved from.
	//
	// Returns:
	//   - string: the shader name
	Name() string

	// Stage retrieves the pipeline stage this shader runs in.
	//
	// Returns:
	//   - Stage: the shader stage
	Stage() Stage

	// Defines retrieves the define string this variation was compiled with.
	//
	// Returns:
	//   - string: space-separated defines
	Defines() string

	// Module retrieves the shader module descriptor handed to the GPU backend
	// when the pipeline state is realized.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shaderImpl{}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Name() string {
	return s.name
}

func (s *shaderImpl) Stage() Stage {
	return s.stage
}

func (s *shaderImpl) Defines() string {
	return s.defines
}

func (s *shaderImpl) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
