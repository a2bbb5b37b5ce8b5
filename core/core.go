package core

// Display describes the graphics context owned by the rendering thread.
// It is only ever borrowed for the duration of a call and must not be
// retained by the caller.
type Display interface {
	// UploadTexture creates a GPU texture from RGBA pixels
	UploadTexture(name string, pixels *Pixels) (Texture, error)

	// CompileShader creates a shader program out of the given stages
	CompileShader(name string, stages []ShaderStage) (Shader, error)
}

// Texture is a GPU resident image ready to be drawn.
type Texture interface {
	// Width returns width in pixels
	Width() int

	// Height returns height in pixels
	Height() int

	// Destroy releases the GPU memory held by the texture
	Destroy()
}

// Shader is a compiled shader program.
type Shader interface {
	// Name returns the name the shader was loaded with
	Name() string

	// Stages returns the types of the compiled stages
	Stages() []ShaderType

	// Destroy destroys internal members
	Destroy()
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// String returns the file suffix used for the shader type.
func (t ShaderType) String() string {
	switch t {
	case VertexShaderType:
		return "vert"
	case FragmentShaderType:
		return "frag"
	default:
		return "unknown"
	}
}

// ShaderStage is the compiled code of a single shader stage.
type ShaderStage struct {
	Type ShaderType
	Code []byte
}

// Pixels is a tightly or row-pitch packed RGBA8 pixel buffer.
type Pixels struct {
	Width  int
	Height int

	// Stride is the amount of bytes between two rows
	Stride int
	Pix    []uint8
}

// Row returns the pixels of row y without padding.
func (p *Pixels) Row(y int) []uint8 {
	start := y * p.Stride
	return p.Pix[start : start+p.Width*4]
}
