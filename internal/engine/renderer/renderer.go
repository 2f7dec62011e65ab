// Package renderer draws the sphere geometry with OpenGL.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/golden-sphere/internal/engine/shader"
	"github.com/Faultbox/golden-sphere/internal/logger"
	"github.com/Faultbox/golden-sphere/internal/scene"
	"github.com/Faultbox/golden-sphere/pkg/math"
	"github.com/Faultbox/golden-sphere/pkg/sphere"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform float uPointSize;

out float vDepth;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
	// Shade the far hemisphere darker.
	vDepth = clamp(gl_Position.z / gl_Position.w * 0.5 + 0.5, 0.0, 1.0);
}
`

const fragmentShaderSource = `
#version 410 core

uniform vec4 uColor;

in float vDepth;
out vec4 FragColor;

void main() {
	FragColor = vec4(uColor.rgb * mix(1.0, 0.35, vDepth), uColor.a);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer uploads one geometry buffer at a time and draws it.
type Renderer struct {
	config Config

	program    uint32
	locMVP     int32
	locColor   int32
	locPtSize  int32
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	mode       uint32
	uploaded   *sphere.Buffer
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)

	var err error
	r.program, err = shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locMVP = shader.Uniform(r.program, "uMVP")
	r.locColor = shader.Uniform(r.program, "uColor")
	r.locPtSize = shader.Uniform(r.program, "uPointSize")

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Upload replaces the GPU buffers with buf. Uploading the buffer that is
// already resident is a no-op.
func (r *Renderer) Upload(buf *sphere.Buffer) {
	if buf == nil || buf == r.uploaded {
		return
	}

	gl.BindVertexArray(r.vao)

	vertices := buf.Flatten()
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(buf.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(buf.Indices)*4, gl.Ptr(buf.Indices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.indexCount = int32(len(buf.Indices))
	r.mode = primitiveMode(buf.Topology)
	r.uploaded = buf
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded geometry with the given transforms and material.
func (r *Renderer) Draw(model, view, projection math.Mat4, material scene.Material) {
	if r.indexCount == 0 {
		return
	}

	mvp := projection.Mul(view).Mul(model)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.Uniform4f(r.locColor, material.Color[0], material.Color[1], material.Color[2], material.Color[3])
	gl.Uniform1f(r.locPtSize, material.PointSize)
	if material.LineWidth > 0 {
		// Core profiles only guarantee a width of 1; larger values may be ignored.
		gl.LineWidth(material.LineWidth)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(r.mode, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// ReadPixels reads the framebuffer as tightly packed RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func primitiveMode(t sphere.Topology) uint32 {
	switch t {
	case sphere.Lines:
		return gl.LINES
	case sphere.Triangles:
		return gl.TRIANGLES
	default:
		return gl.POINTS
	}
}
