// Package shader compiles and links GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/golden-sphere/internal/logger"
)

type stage struct {
	kind   uint32
	name   string
	source string
}

// CompileProgram builds a program from a vertex and a fragment stage.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []stage{
		{gl.VERTEX_SHADER, "vertex", vertexSrc},
		{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		id, err := st.compile()
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, id)
		// Flagged for deletion; freed once the program goes away.
		defer gl.DeleteShader(id)
	}
	gl.LinkProgram(program)

	if !succeeded(program, gl.GetProgramiv, gl.LINK_STATUS) {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func (st stage) compile() (uint32, error) {
	id := gl.CreateShader(st.kind)
	src, free := gl.Strs(st.source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	if !succeeded(id, gl.GetShaderiv, gl.COMPILE_STATUS) {
		msg := infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s", st.name, msg)
	}
	return id, nil
}

type getiv func(id uint32, pname uint32, params *int32)

func succeeded(id uint32, get getiv, pname uint32) bool {
	var status int32
	get(id, pname, &status)
	return status != gl.FALSE
}

func infoLog(id uint32, get getiv, read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	get(id, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "no info log"
	}
	buf := strings.Repeat("\x00", int(n)+1)
	read(id, n, nil, gl.Str(buf))
	return strings.TrimSpace(strings.TrimRight(buf, "\x00"))
}

// Uniform returns the location of a uniform, or -1 if it is missing or was
// optimised away.
func Uniform(program uint32, name string) int32 {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Debug("inactive uniform", zap.String("name", name), zap.Uint32("program", program))
	}
	return loc
}
