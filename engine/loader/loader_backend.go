package loader

// Backend creates GPU objects from asset data. Every method is called from the thread
// that owns the graphics context, inside Loader.Upload.
type Backend interface {
	// NewProgram compiles and links a vertex/fragment shader pair.
	//
	// Parameters:
	//   - vertexSource: GLSL vertex shader source
	//   - fragmentSource: GLSL fragment shader source
	//
	// Returns:
	//   - uint32: the linked program id
	//   - error: error if compiling or linking fails
	NewProgram(vertexSource, fragmentSource string) (uint32, error)

	// NewMesh uploads interleaved vertices and triangle indices.
	//
	// Parameters:
	//   - vertices: interleaved vertex data
	//   - indices: triangle list indices
	//
	// Returns:
	//   - uint32: the vertex array id
	//   - int32: the number of indices
	NewMesh(vertices []float32, indices []uint32) (uint32, int32)

	// NewTexture uploads RGBA8 pixels.
	//
	// Parameters:
	//   - pixels: RGBA data, 4 bytes per pixel
	//   - width, height: dimensions in pixels
	//
	// Returns:
	//   - uint32: the texture id
	//   - error: error if the upload fails
	NewTexture(pixels []byte, width, height int) (uint32, error)
}
