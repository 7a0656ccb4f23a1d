// Package renderer draws the particle cloud with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/engine/shader"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/pkg/math"
)

const pointVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform float uPointSize;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);

	// Perspective size attenuation: particles shrink with distance.
	gl_PointSize = uPointSize * clamp(600.0 / gl_Position.w, 0.3, 6.0);
}
`

const pointFragmentSrc = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	// Round sprite with a soft edge.
	vec2 d = gl_PointCoord - vec2(0.5);
	float r2 = dot(d, d);
	if (r2 > 0.25) {
		discard;
	}
	float alpha = smoothstep(0.25, 0.05, r2);
	FragColor = vec4(uColor, alpha);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state for drawing point clouds. The position VBO is
// re-uploaded whenever the caller provides a fresh buffer, which in practice
// is every frame the tween or the interaction field is active.
type Renderer struct {
	config Config

	program *shader.Program
	vao     uint32
	vbo     uint32

	capacity int // particles the VBO can hold
}

// New creates a renderer sized for at most maxParticles points.
// Must be called after the OpenGL context exists.
func New(cfg Config, maxParticles int) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		capacity: maxParticles,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	r.program, err = shader.Compile(pointVertexSrc, pointFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create point shader: %w", err)
	}

	// Translucent additive-leaning blending over a near-black clear, depth
	// writes off so overlapping particles accumulate instead of popping.
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.01, 0.015, 0.03, 1.0)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxParticles*3*4, nil, gl.STREAM_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("particle buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Int("capacity", maxParticles),
	)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
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

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// UploadPositions replaces the position VBO contents. positions is tightly
// packed x,y,z triples; at most capacity particles are uploaded.
func (r *Renderer) UploadPositions(positions []float32) {
	if len(positions) == 0 {
		return
	}
	count := len(positions)
	if count > r.capacity*3 {
		count = r.capacity * 3
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	// Orphan the old store so the driver never stalls on an in-flight frame.
	gl.BufferData(gl.ARRAY_BUFFER, r.capacity*3*4, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*4, gl.Ptr(positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ReadPixels reads the back buffer as RGBA rows, bottom-to-top.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, r.config.Width*r.config.Height*4)
	gl.ReadPixels(0, 0, int32(r.config.Width), int32(r.config.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// DrawPoints renders count particles with the given transform and tint.
func (r *Renderer) DrawPoints(count int, mvp math.Mat4, cr, cg, cb, pointSize float32) {
	if count <= 0 {
		return
	}
	if count > r.capacity {
		count = r.capacity
	}

	r.program.Use()
	r.program.SetMat4("uMVP", mvp)
	r.program.SetVec3("uColor", cr, cg, cb)
	r.program.SetFloat("uPointSize", pointSize)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.BindVertexArray(0)
}
