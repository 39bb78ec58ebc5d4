// Package renderer2d batches quads into large indexed draws.
package renderer2d

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/profiler"
)

// DefaultMaxQuads is used when New gets a non-positive capacity.
const DefaultMaxQuads = 10000

// Vertex: pos3 + color4 + uv2 + texIndex1 => 10 floats
const (
	vStride      = 10
	vertsPerQuad = 4
	indsPerQuad  = 6
	maxTexSlots  = 32
)

var quadLayout = gfx.NewBufferLayout(
	gfx.BufferElement{Name: "a_Position", Type: gfx.Float3},
	gfx.BufferElement{Name: "a_Color", Type: gfx.Float4},
	gfx.BufferElement{Name: "a_TexCoord", Type: gfx.Float2},
	gfx.BufferElement{Name: "a_TexIndex", Type: gfx.Float},
)

// Unit quad corners, counter-clockwise from bottom-left.
var (
	quadPositions = [vertsPerQuad]mgl32.Vec4{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 0, 1},
		{0.5, 0.5, 0, 1},
		{-0.5, 0.5, 0, 1},
	}
	quadUVs = [vertsPerQuad]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
)

// Statistics captures the counts generated since the last ResetStats.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	device gfx.Device
	shader gfx.Shader
	va     gfx.VertexArray
	vb     gfx.VertexBuffer
	white  gfx.Texture2D

	slots     []gfx.Texture2D
	slotCount int
	slotOf    *intmap.Map[uint32, int]

	verts     []float32
	quadCount int
	maxQuads  int

	active bool
	stats  Statistics
	log    *slog.Logger
}

// New creates the batch buffers, the white texture and compiles the quad
// shader. The shader samples u_Textures[a_TexIndex] and multiplies a_Color.
func New(device gfx.Device, src gfx.ShaderSource, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = DefaultMaxQuads
	}
	shader, err := device.CreateShader("Renderer2D", src)
	if err != nil {
		return nil, err
	}

	vb, err := device.CreateDynamicVertexBuffer(maxQuads * vertsPerQuad * vStride)
	if err != nil {
		shader.Release()
		return nil, err
	}
	vb.SetLayout(quadLayout)

	ib, err := device.CreateIndexBuffer(quadIndices(maxQuads))
	if err != nil {
		vb.Release()
		shader.Release()
		return nil, err
	}
	va, err := device.CreateVertexArray()
	if err != nil {
		ib.Release()
		vb.Release()
		shader.Release()
		return nil, err
	}
	if err := va.AddVertexBuffer(vb); err != nil {
		va.Release()
		ib.Release()
		vb.Release()
		shader.Release()
		return nil, err
	}
	va.SetIndexBuffer(ib)

	white, err := device.CreateTexture2D(gfx.TextureSpec{
		Width: 1, Height: 1,
		Pixels: gfx.WhitePixel,
		Filter: gfx.FilterNearest,
		Wrap:   gfx.WrapClamp,
	})
	if err != nil {
		va.Release()
		shader.Release()
		return nil, err
	}

	slots := min(device.MaxTextureSlots(), maxTexSlots)
	if slots < 1 {
		slots = 1
	}
	samplers := make([]int32, slots)
	for i := range samplers {
		samplers[i] = int32(i)
	}
	shader.Bind()
	shader.UploadUniformIntArray("u_Textures", samplers)

	rd := &Renderer2D{
		device:   device,
		shader:   shader,
		va:       va,
		vb:       vb,
		white:    white,
		slots:    make([]gfx.Texture2D, slots),
		slotOf:   intmap.New[uint32, int](slots),
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		maxQuads: maxQuads,
		log:      logging.Core(),
	}
	rd.startBatch()
	return rd, nil
}

// quadIndices builds the shared index pattern 0,1,2, 2,3,0 per quad.
func quadIndices(maxQuads int) []uint32 {
	inds := make([]uint32, maxQuads*indsPerQuad)
	var offset uint32
	for i := 0; i < len(inds); i += indsPerQuad {
		inds[i+0] = offset + 0
		inds[i+1] = offset + 1
		inds[i+2] = offset + 2
		inds[i+3] = offset + 2
		inds[i+4] = offset + 3
		inds[i+5] = offset + 0
		offset += vertsPerQuad
	}
	return inds
}

// Shutdown releases GPU resources.
func (rd *Renderer2D) Shutdown() {
	rd.white.Release()
	rd.va.Release()
	rd.shader.Release()
}

func (rd *Renderer2D) Device() gfx.Device          { return rd.device }
func (rd *Renderer2D) MaxQuads() int               { return rd.maxQuads }
func (rd *Renderer2D) TextureSlots() int           { return len(rd.slots) }
func (rd *Renderer2D) SceneActive() bool           { return rd.active }
func (rd *Renderer2D) Stats() Statistics           { return rd.stats }
func (rd *Renderer2D) ResetStats()                 { rd.stats = Statistics{} }
func (rd *Renderer2D) WhiteTexture() gfx.Texture2D { return rd.white }

func (rd *Renderer2D) BeginScene(camera gfx.ViewProjector) error {
	if !core.Assert(!rd.active, "Renderer2D.BeginScene called twice without EndScene") {
		return gfx.ErrSceneActive
	}
	rd.active = true
	rd.shader.Bind()
	rd.shader.UploadUniformMat4("u_ViewProjection", camera.ViewProjectionMatrix())
	rd.startBatch()
	return nil
}

func (rd *Renderer2D) EndScene() error {
	if !core.Assert(rd.active, "Renderer2D.EndScene called without BeginScene") {
		return gfx.ErrNoActiveScene
	}
	rd.flush()
	rd.active = false
	return nil
}

// DrawQuad draws a flat colored quad centered on pos.
func (rd *Renderer2D) DrawQuad(pos mgl32.Vec3, size mgl32.Vec2, color colors.Color) {
	rd.DrawQuadTransform(quadTransform(pos, size, 0), color)
}

// DrawRotatedQuad rotates around the quad center; rotation is in degrees.
func (rd *Renderer2D) DrawRotatedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, color colors.Color) {
	rd.DrawQuadTransform(quadTransform(pos, size, rotation), color)
}

// DrawTexturedQuad repeats tex tiling times across the quad, tinted.
func (rd *Renderer2D) DrawTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, tex gfx.Texture2D, tiling float32, tint colors.Color) {
	rd.drawQuad(quadTransform(pos, size, 0), tint, tex, tiledUVs(tiling))
}

func (rd *Renderer2D) DrawRotatedTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, tex gfx.Texture2D, tiling float32, tint colors.Color) {
	rd.drawQuad(quadTransform(pos, size, rotation), tint, tex, tiledUVs(tiling))
}

// DrawSubTexQuad draws one region of an atlas.
func (rd *Renderer2D) DrawSubTexQuad(pos mgl32.Vec3, size mgl32.Vec2, sub SubTexture2D, tint colors.Color) {
	rd.drawQuad(quadTransform(pos, size, 0), tint, sub.Texture, sub.UVs())
}

func (rd *Renderer2D) DrawRotatedSubTexQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, sub SubTexture2D, tint colors.Color) {
	rd.drawQuad(quadTransform(pos, size, rotation), tint, sub.Texture, sub.UVs())
}

// DrawQuadTransform draws the unit quad through an arbitrary model matrix.
func (rd *Renderer2D) DrawQuadTransform(transform mgl32.Mat4, color colors.Color) {
	rd.drawQuad(transform, color, nil, quadUVs)
}

// --- internals ---

func quadTransform(pos mgl32.Vec3, size mgl32.Vec2, rotationDeg float32) mgl32.Mat4 {
	m := mgl32.Translate3D(pos[0], pos[1], pos[2])
	if rotationDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDeg)))
	}
	return m.Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

func tiledUVs(tiling float32) [vertsPerQuad]mgl32.Vec2 {
	if tiling <= 0 {
		tiling = 1
	}
	var uvs [vertsPerQuad]mgl32.Vec2
	for i, uv := range quadUVs {
		uvs[i] = uv.Mul(tiling)
	}
	return uvs
}

func (rd *Renderer2D) drawQuad(transform mgl32.Mat4, color colors.Color, tex gfx.Texture2D, uvs [vertsPerQuad]mgl32.Vec2) {
	if !core.Assert(rd.active, "Renderer2D draw outside BeginScene/EndScene") {
		return
	}
	if rd.quadCount >= rd.maxQuads {
		rd.nextBatch()
	}
	texIndex := rd.texSlot(tex)

	for i, p := range quadPositions {
		v := transform.Mul4x1(p)
		rd.verts = append(rd.verts,
			v[0], v[1], v[2],
			color[0], color[1], color[2], color[3],
			uvs[i][0], uvs[i][1],
			texIndex,
		)
	}
	rd.quadCount++
	rd.stats.QuadCount++
}

// texSlot returns the batch slot of tex, flushing when every slot is taken.
func (rd *Renderer2D) texSlot(tex gfx.Texture2D) float32 {
	if tex == nil {
		return 0
	}
	if slot, ok := rd.slotOf.Get(tex.ID()); ok {
		return float32(slot)
	}
	if rd.slotCount >= len(rd.slots) {
		rd.nextBatch()
	}
	slot := rd.slotCount
	rd.slots[slot] = tex
	rd.slotOf.Put(tex.ID(), slot)
	rd.slotCount++
	rd.stats.TextureCount++
	return float32(slot)
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}
	scope := profiler.Start("Renderer2D.Flush")
	defer scope()

	rd.vb.SetData(rd.verts)
	for i := 0; i < rd.slotCount; i++ {
		rd.slots[i].Bind(i)
	}
	rd.shader.Bind()
	rd.device.DrawIndexed(rd.va, rd.quadCount*indsPerQuad)
	rd.stats.DrawCalls++
}

func (rd *Renderer2D) nextBatch() {
	rd.flush()
	rd.startBatch()
}

func (rd *Renderer2D) startBatch() {
	rd.verts = rd.verts[:0]
	rd.quadCount = 0
	clear(rd.slots)
	rd.slotOf.Clear()
	rd.slots[0] = rd.white
	rd.slotOf.Put(rd.white.ID(), 0)
	rd.slotCount = 1
}
