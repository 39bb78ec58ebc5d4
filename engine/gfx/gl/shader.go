package glbackend

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
)

type Shader struct {
	name      string
	program   uint32
	locations map[string]int32
}

func (s *Shader) Name() string { return s.name }
func (s *Shader) Bind()        { gl.UseProgram(s.program) }
func (s *Shader) Unbind()      { gl.UseProgram(0) }

func (s *Shader) Release() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// location caches uniform locations; unknown names resolve to -1 which GL
// ignores.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	if loc < 0 {
		logging.Core().Warn("uniform not found", "shader", s.name, "uniform", name)
	}
	s.locations[name] = loc
	return loc
}

func (s *Shader) UploadUniformInt(name string, v int32) {
	gl.Uniform1i(s.location(name), v)
}

func (s *Shader) UploadUniformIntArray(name string, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(s.location(name), int32(len(v)), &v[0])
}

func (s *Shader) UploadUniformFloat(name string, v float32) {
	gl.Uniform1f(s.location(name), v)
}

func (s *Shader) UploadUniformFloat2(name string, v mgl32.Vec2) {
	gl.Uniform2f(s.location(name), v[0], v[1])
}

func (s *Shader) UploadUniformFloat3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.location(name), v[0], v[1], v[2])
}

func (s *Shader) UploadUniformFloat4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.location(name), v[0], v[1], v[2], v[3])
}

func (s *Shader) UploadUniformMat3(name string, v mgl32.Mat3) {
	gl.UniformMatrix3fv(s.location(name), 1, false, &v[0])
}

func (s *Shader) UploadUniformMat4(name string, v mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &v[0])
}

// --- compile helpers ---

func makeShader(name, stage, src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, &gfx.ShaderError{Name: name, Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}
	return sh, nil
}

func makeProgram(name, vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(name, "vertex", vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(name, "fragment", fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &gfx.ShaderError{Name: name, Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}
	return prog, nil
}
