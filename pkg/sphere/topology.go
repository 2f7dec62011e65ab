package sphere

import (
	"fmt"
	"strings"
)

// Topology is the primitive assembly mode for the index buffer.
// Values match the mesh topology tags of the original viewer.
type Topology int

const (
	Triangles Topology = 0
	Lines     Topology = 3
	Points    Topology = 5
)

// Topologies lists every mode in cycling order.
var Topologies = []Topology{Points, Lines, Triangles}

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Next returns the mode after t in Topologies, wrapping around.
// Unknown values go to Points.
func (t Topology) Next() Topology {
	for i, v := range Topologies {
		if v == t {
			return Topologies[(i+1)%len(Topologies)]
		}
	}
	return Points
}

// ParseTopology converts a case-insensitive name to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points", "point":
		return Points, nil
	case "lines", "line":
		return Lines, nil
	case "triangles", "triangle", "tris":
		return Triangles, nil
	}
	return Points, fmt.Errorf("unknown topology %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(text []byte) error {
	v, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BuildIndices returns the index list connecting n spiral points in mode t.
//
// Points lists every index once. Lines closes a loop through all points in
// generation order, ending with the (n-1, 0) segment. Triangles emits the
// sliding window (k, k+1, k+2); it follows spiral order and does not form a
// closed surface. Inputs too small for a primitive give an empty list.
func BuildIndices(n int, t Topology) []uint32 {
	switch t {
	case Points:
		if n <= 0 {
			return []uint32{}
		}
		idx := make([]uint32, n)
		for i := range idx {
			idx[i] = uint32(i)
		}
		return idx

	case Lines:
		if n < 2 {
			return []uint32{}
		}
		idx := make([]uint32, 2*n)
		for i := 0; i < n-1; i++ {
			idx[2*i] = uint32(i)
			idx[2*i+1] = uint32(i + 1)
		}
		idx[2*n-2] = uint32(n - 1)
		idx[2*n-1] = 0
		return idx

	case Triangles:
		if n < 3 {
			return []uint32{}
		}
		idx := make([]uint32, 0, 3*(n-2))
		for k := 0; k < n-2; k++ {
			idx = append(idx, uint32(k), uint32(k+1), uint32(k+2))
		}
		return idx
	}
	return []uint32{}
}
