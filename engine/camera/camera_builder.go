package camera

// CameraBuilderOption is a function that configures a Camera instance during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the camera's world-space position.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a cameraImpl
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the camera's look-at target.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a cameraImpl
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp is an option builder that sets the camera's up vector.
//
// Parameters:
//   - x: the x up component
//   - y: the y up component
//   - z: the z up component
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a cameraImpl
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov is an option builder that sets the field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option to a cameraImpl
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect is an option builder that sets the aspect ratio.
//
// Parameters:
//   - aspect: the aspect ratio (width / height)
//
// Returns:
//   - CameraBuilderOption: a function that applies the aspect option to a cameraImpl
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping
// plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip plane option to a cameraImpl
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithReversed is an option builder that sets the orientation-reversal flag.
// Reversed cameras (e.g. planar-reflection cameras) swap triangle winding.
//
// Parameters:
//   - reversed: true if the camera orientation is mirrored
//
// Returns:
//   - CameraBuilderOption: a function that applies the reversal option to a cameraImpl
func WithReversed(reversed bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.reversed = reversed
	}
}
