// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"github.com/devblok/litecraft/core"
	log "github.com/sirupsen/logrus"
	"go.trai.ch/zerr"
)

// programStages are the stages every shader program is made of
var programStages = []core.ShaderType{
	core.VertexShaderType,
	core.FragmentShaderType,
}

// NewShaderManager creates a shader manager reading compiled
// stages of the given namespace from source.
func NewShaderManager(source Source, namespace string, logger log.FieldLogger) *ShaderManager {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ShaderManager{
		source:    source,
		namespace: namespace,
		logger:    logger.WithField("component", "shaders"),
		cache:     NewCache[string, core.Shader](),
	}
}

// ShaderManager owns the shader cache. Shaders are compiled synchronously
// on the calling goroutine, which has to own the Display.
type ShaderManager struct {
	source    Source
	namespace string
	logger    log.FieldLogger

	cache *Cache[string, core.Shader]
}

// Load returns the shader program called name, compiling it with display
// the first time. Failures are not cached, a later Load tries again.
func (m *ShaderManager) Load(name string, display core.Display) (core.Shader, error) {
	if shader, ok := m.cache.Get(name); ok {
		return shader, nil
	}

	stages := make([]core.ShaderStage, 0, len(programStages))
	for _, shaderType := range programStages {
		id := ShaderStageID(m.namespace, name, shaderType)
		code, err := ReadAll(m.source, id)
		if err != nil {
			return nil, zerr.With(err, "shader", name)
		}
		if err := core.ValidateSPIRV(code); err != nil {
			return nil, withResource(zerr.Wrap(ErrCompile, err.Error()), id)
		}
		stages = append(stages, core.ShaderStage{Type: shaderType, Code: code})
	}

	shader, err := display.CompileShader(name, stages)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrCompile, err.Error()), "shader", name)
	}

	m.cache.Put(name, shader)
	m.logger.WithField("shader", name).Debug("shader ready")
	return shader, nil
}

// Get returns an already loaded shader.
func (m *ShaderManager) Get(name string) (core.Shader, bool) {
	return m.cache.Get(name)
}

// Len returns the amount of loaded shaders.
func (m *ShaderManager) Len() int {
	return m.cache.Len()
}

// Destroy releases every shader and empties the cache.
func (m *ShaderManager) Destroy() {
	m.cache.Each(func(_ string, shader core.Shader) {
		shader.Destroy()
	})
	m.cache.Clear()
}
