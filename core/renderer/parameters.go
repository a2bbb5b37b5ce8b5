package renderer

// DepthTest is the comparison used against the depth buffer
type DepthTest int

// Supported depth comparisons
const (
	DepthTestOverwrite DepthTest = iota
	DepthTestIfLess
	DepthTestIfLessOrEqual
	DepthTestIfMore
	DepthTestIfEqual
	DepthTestNever
)

// BlendFactor is a multiplier applied to a blend operand
type BlendFactor int

// Supported blend factors
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSourceAlpha
	BlendOneMinusSourceAlpha
)

// Depth describes how fragments interact with the depth buffer
type Depth struct {
	Test  DepthTest
	Write bool
}

// Blend describes how fragments are combined with the framebuffer
type Blend struct {
	Enabled bool

	ColorSource      BlendFactor
	ColorDestination BlendFactor
	AlphaSource      BlendFactor
	AlphaDestination BlendFactor
}

// AlphaBlending returns the usual source-over blending
func AlphaBlending() Blend {
	return Blend{
		Enabled:          true,
		ColorSource:      BlendSourceAlpha,
		ColorDestination: BlendOneMinusSourceAlpha,
		AlphaSource:      BlendSourceAlpha,
		AlphaDestination: BlendOneMinusSourceAlpha,
	}
}

// DrawParameters is the fixed function state a draw call is issued with
type DrawParameters struct {
	Depth Depth
	Blend Blend
}

// Parameters to draw almost any shape
func Parameters() DrawParameters {
	return DrawParameters{
		Depth: Depth{
			Test:  DepthTestIfLess,
			Write: true,
		},
		Blend: AlphaBlending(),
	}
}

// NoDepth parameters draw shapes without depth, used for the GUI
func NoDepth() DrawParameters {
	return DrawParameters{
		Blend: AlphaBlending(),
	}
}

// DepthEnabled reports whether the depth buffer is used at all
func (p DrawParameters) DepthEnabled() bool {
	return p.Depth.Test != DepthTestOverwrite || p.Depth.Write
}
