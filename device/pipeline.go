package device

import (
	"github.com/devblok/litecraft/core/renderer"
	vk "github.com/devblok/vulkan"
)

func bool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

// CompareOp converts a depth test into the Vulkan comparison
func CompareOp(test renderer.DepthTest) vk.CompareOp {
	switch test {
	case renderer.DepthTestIfLess:
		return vk.CompareOpLess
	case renderer.DepthTestIfLessOrEqual:
		return vk.CompareOpLessOrEqual
	case renderer.DepthTestIfMore:
		return vk.CompareOpGreater
	case renderer.DepthTestIfEqual:
		return vk.CompareOpEqual
	case renderer.DepthTestNever:
		return vk.CompareOpNever
	default:
		return vk.CompareOpAlways
	}
}

// BlendFactor converts a blend factor into the Vulkan one
func BlendFactor(factor renderer.BlendFactor) vk.BlendFactor {
	switch factor {
	case renderer.BlendOne:
		return vk.BlendFactorOne
	case renderer.BlendSourceAlpha:
		return vk.BlendFactorSrcAlpha
	case renderer.BlendOneMinusSourceAlpha:
		return vk.BlendFactorOneMinusSrcAlpha
	default:
		return vk.BlendFactorZero
	}
}

// DepthStencilState builds the pipeline depth state, stencil is never used
func DepthStencilState(params renderer.DrawParameters) vk.PipelineDepthStencilStateCreateInfo {
	keep := vk.StencilOpState{
		FailOp:    vk.StencilOpKeep,
		PassOp:    vk.StencilOpKeep,
		CompareOp: vk.CompareOpAlways,
	}
	return vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       bool32(params.DepthEnabled()),
		DepthWriteEnable:      bool32(params.Depth.Write),
		DepthCompareOp:        CompareOp(params.Depth.Test),
		DepthBoundsTestEnable: vk.False,
		StencilTestEnable:     vk.False,
		Front:                 keep,
		Back:                  keep,
	}
}

// ColorBlendAttachment builds the blend state of a single color attachment
func ColorBlendAttachment(params renderer.DrawParameters) vk.PipelineColorBlendAttachmentState {
	blend := params.Blend
	return vk.PipelineColorBlendAttachmentState{
		ColorWriteMask:      0xF,
		BlendEnable:         bool32(blend.Enabled),
		SrcColorBlendFactor: BlendFactor(blend.ColorSource),
		DstColorBlendFactor: BlendFactor(blend.ColorDestination),
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: BlendFactor(blend.AlphaSource),
		DstAlphaBlendFactor: BlendFactor(blend.AlphaDestination),
		AlphaBlendOp:        vk.BlendOpAdd,
	}
}
