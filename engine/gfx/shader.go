package gfx

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a compiled GPU program. Upload* calls apply to the bound program.
type Shader interface {
	Name() string
	Bind()
	Unbind()
	UploadUniformInt(name string, v int32)
	UploadUniformIntArray(name string, v []int32)
	UploadUniformFloat(name string, v float32)
	UploadUniformFloat2(name string, v mgl32.Vec2)
	UploadUniformFloat3(name string, v mgl32.Vec3)
	UploadUniformFloat4(name string, v mgl32.Vec4)
	UploadUniformMat3(name string, v mgl32.Mat3)
	UploadUniformMat4(name string, v mgl32.Mat4)
	Release()
}

// ShaderSource holds the per-stage sources of one shader. GL backends use
// Vertex and Fragment; the ebiten backend uses the Kage program.
type ShaderSource struct {
	Vertex   string
	Fragment string
	Kage     string
}

// ParseShaderSource splits a combined shader file into stages. Sections start
// with a "#type <stage>" line where stage is vertex, fragment (or pixel) or
// kage.
func ParseShaderSource(name, src string) (ShaderSource, error) {
	var out ShaderSource
	var cur *string
	var b strings.Builder
	commit := func() {
		if cur != nil {
			*cur = b.String()
		}
		b.Reset()
	}

	for line := range strings.Lines(src) {
		trimmed := strings.TrimSpace(line)
		stage, ok := strings.CutPrefix(trimmed, "#type")
		if !ok {
			if cur != nil {
				b.WriteString(line)
			}
			continue
		}
		commit()
		switch strings.TrimSpace(stage) {
		case "vertex":
			cur = &out.Vertex
		case "fragment", "pixel":
			cur = &out.Fragment
		case "kage":
			cur = &out.Kage
		default:
			return ShaderSource{}, &ShaderError{Name: name, Stage: "parse", Log: "unknown shader type " + strings.TrimSpace(stage)}
		}
	}
	commit()

	if out.Vertex == "" && out.Fragment == "" && out.Kage == "" {
		return ShaderSource{}, &ShaderError{Name: name, Stage: "parse", Log: "no #type sections"}
	}
	return out, nil
}
