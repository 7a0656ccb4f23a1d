// Offscreen point-cloud viewer for the shape lab.
package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/morphfield/internal/engine/camera"
	"github.com/Faultbox/morphfield/internal/engine/framebuffer"
	"github.com/Faultbox/morphfield/internal/engine/shader"
	mmath "github.com/Faultbox/morphfield/pkg/math"
)

const viewerVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform float uPointSize;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize * clamp(600.0 / gl_Position.w, 0.3, 6.0);
}
`

const viewerFragmentSrc = `#version 410 core
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	vec2 d = gl_PointCoord - vec2(0.5);
	float r2 = dot(d, d);
	if (r2 > 0.25) {
		discard;
	}
	FragColor = vec4(uColor, smoothstep(0.25, 0.05, r2));
}
`

// Viewer renders a sampled point cloud to an offscreen framebuffer shown as
// an ImGui image.
type Viewer struct {
	fb      *framebuffer.Framebuffer
	program *shader.Program
	vao     uint32
	vbo     uint32

	capacity int
	count    int

	cam       *camera.OrbitCamera
	pointSize float32
}

// NewViewer creates a viewer sized for at most capacity points.
func NewViewer(width, height int32, capacity int) (*Viewer, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}

	program, err := shader.Compile(viewerVertexSrc, viewerFragmentSrc)
	if err != nil {
		fb.Destroy()
		return nil, err
	}

	v := &Viewer{
		fb:        fb,
		program:   program,
		capacity:  capacity,
		cam:       camera.NewOrbitCamera(),
		pointSize: 2.0,
	}

	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)

	gl.GenBuffers(1, &v.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return v, nil
}

// SetCloud uploads a new point cloud.
func (v *Viewer) SetCloud(cloud []float32) {
	count := len(cloud) / 3
	if count > v.capacity {
		count = v.capacity
	}
	v.count = count
	if count == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*3*4, gl.Ptr(cloud))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the cloud offscreen and returns the color texture ID.
// GL state is set per call since the ImGui backend owns the context between
// frames.
func (v *Viewer) Render() uint32 {
	restore := v.fb.BindWithViewport()
	defer restore()

	v.fb.Clear(0.02, 0.025, 0.05, 1.0)

	if v.count > 0 {
		gl.Disable(gl.DEPTH_TEST)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		gl.Enable(gl.PROGRAM_POINT_SIZE)

		w, h := v.fb.Size()
		aspect := float32(w) / float32(h)
		proj := mmath.Perspective(0.9, aspect, 0.1, 5000)
		mvp := proj.Mul(v.cam.ViewMatrix())

		v.program.Use()
		v.program.SetMat4("uMVP", mvp)
		v.program.SetVec3("uColor", 0.31, 0.79, 1.0)
		v.program.SetFloat("uPointSize", v.pointSize)

		gl.BindVertexArray(v.vao)
		gl.DrawArrays(gl.POINTS, 0, int32(v.count))
		gl.BindVertexArray(0)

		gl.Disable(gl.BLEND)
	}

	return v.fb.ColorTexture()
}

// HandleMouseDrag rotates the orbit camera.
func (v *Viewer) HandleMouseDrag(dx, dy float32) {
	v.cam.HandleDrag(dx, dy)
}

// HandleMouseWheel zooms the orbit camera.
func (v *Viewer) HandleMouseWheel(delta float32) {
	v.cam.HandleZoom(delta)
}

// Size returns the framebuffer dimensions.
func (v *Viewer) Size() (int32, int32) {
	return v.fb.Size()
}

// ReadPixels reads the rendered view for export.
func (v *Viewer) ReadPixels() []byte {
	return v.fb.ReadPixels()
}

// Destroy releases GL resources.
func (v *Viewer) Destroy() {
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
		v.vao = 0
	}
	if v.vbo != 0 {
		gl.DeleteBuffers(1, &v.vbo)
		v.vbo = 0
	}
	if v.program != nil {
		v.program.Delete()
		v.program = nil
	}
	if v.fb != nil {
		v.fb.Destroy()
		v.fb = nil
	}
}
