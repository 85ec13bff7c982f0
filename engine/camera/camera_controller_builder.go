package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithOrbit is an option builder that sets the initial spherical pose around the target.
//
// Parameters:
//   - radius: distance from the target
//   - azimuth: horizontal angle around the Y axis in radians
//   - elevation: angle above the horizontal plane in radians
//
// Returns:
//   - CameraControllerOption: a function that applies the orbit option to a controller
func WithOrbit(radius, azimuth, elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius, cc.azimuth, cc.elevation = radius, azimuth, elevation
	}
}

// WithPivot is an option builder that sets the orbit pivot point.
//
// Parameters:
//   - x, y, z: world-space pivot components
//
// Returns:
//   - CameraControllerOption: a function that applies the pivot option to a controller
func WithPivot(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}

// WithRadiusBounds is an option builder that sets the zoom limits.
//
// Parameters:
//   - min: minimum orbit radius
//   - max: maximum orbit radius
//
// Returns:
//   - CameraControllerOption: a function that applies the radius bounds to a controller
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius, cc.maxRadius = min, max
	}
}

// WithSpeeds is an option builder that sets the orbit, zoom and pan speeds.
//
// Parameters:
//   - orbit: radians per orbit step
//   - zoom: radius change per unit of zoom input
//   - pan: distance per unit of pan input
//
// Returns:
//   - CameraControllerOption: a function that applies the speeds to a controller
func WithSpeeds(orbit, zoom, pan float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed, cc.zoomSpeed, cc.panSpeed = orbit, zoom, pan
	}
}
