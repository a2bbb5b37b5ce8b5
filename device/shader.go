package device

import (
	"errors"
	"sort"

	"github.com/devblok/litecraft/core"
	vk "github.com/devblok/vulkan"
)

// ErrShaderType is returned for a stage that has no Vulkan counterpart
var ErrShaderType = errors.New("unsupported shader type")

// Shader is a set of shader modules, one per stage. It implements core.Shader.
type Shader struct {
	name    string
	device  vk.Device
	stages  []core.ShaderType
	modules map[core.ShaderType]vk.ShaderModule
}

// Name implements core.Shader
func (s *Shader) Name() string {
	return s.name
}

// Stages implements core.Shader
func (s *Shader) Stages() []core.ShaderType {
	return s.stages
}

// Module returns the shader module compiled for a stage
func (s *Shader) Module(t core.ShaderType) (vk.ShaderModule, bool) {
	module, ok := s.modules[t]
	return module, ok
}

// StageCreateInfos returns the stages ready to be put in a pipeline
func (s *Shader) StageCreateInfos() []vk.PipelineShaderStageCreateInfo {
	types := make([]core.ShaderType, 0, len(s.modules))
	for t := range s.modules {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	infos := make([]vk.PipelineShaderStageCreateInfo, 0, len(types))
	for _, t := range types {
		flag, _ := stageFlag(t)
		infos = append(infos, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  flag,
			Module: s.modules[t],
			PName:  "main\x00",
		})
	}
	return infos
}

// Destroy implements core.Shader
func (s *Shader) Destroy() {
	for t, module := range s.modules {
		vk.DestroyShaderModule(s.device, module, nil)
		delete(s.modules, t)
	}
	s.stages = nil
}

func stageFlag(t core.ShaderType) (vk.ShaderStageFlagBits, error) {
	switch t {
	case core.VertexShaderType:
		return vk.ShaderStageVertexBit, nil
	case core.FragmentShaderType:
		return vk.ShaderStageFragmentBit, nil
	default:
		return 0, ErrShaderType
	}
}
