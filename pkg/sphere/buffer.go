package sphere

import "github.com/Faultbox/golden-sphere/pkg/math"

// Buffer is a complete geometry snapshot handed to a renderer.
// A Buffer is never modified after Build returns it.
type Buffer struct {
	Positions []math.Vec3
	Indices   []uint32
	Topology  Topology
}

// Build generates a fresh buffer of n spiral points connected per t.
func Build(n int, t Topology) *Buffer {
	return &Buffer{
		Positions: Generate(n),
		Indices:   BuildIndices(n, t),
		Topology:  t,
	}
}

// PointCount returns the number of vertices.
func (b *Buffer) PointCount() int {
	return len(b.Positions)
}

// Primitives returns how many points, segments or triangles the indices form.
func (b *Buffer) Primitives() int {
	switch b.Topology {
	case Lines:
		return len(b.Indices) / 2
	case Triangles:
		return len(b.Indices) / 3
	default:
		return len(b.Indices)
	}
}

// Flatten returns the positions as interleaved xyz floats for a vertex buffer.
func (b *Buffer) Flatten() []float32 {
	out := make([]float32, 0, 3*len(b.Positions))
	for _, p := range b.Positions {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
