// Package sphere places points on the unit sphere along a golden-angle spiral
// and assembles them into point, line or triangle index buffers.
package sphere

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/golden-sphere/pkg/math"
)

// goldenTurn is π(1+√5), the azimuth advance per unit of f.
var goldenTurn = math32.Pi * (1 + math32.Sqrt(5))

// Generate returns n points spread over the unit sphere.
//
// Point i sits at f = i+0.5 with polar angle acos(1-2f/n) and azimuth
// π(1+√5)f. The azimuth is left unbounded; sin/cos wrap it. The output is
// deterministic and its order matters to the topology builders. n <= 0
// yields an empty slice.
func Generate(n int) []math.Vec3 {
	if n <= 0 {
		return []math.Vec3{}
	}

	points := make([]math.Vec3, n)
	count := float32(n)
	for i := range points {
		f := float32(i) + 0.5
		phi := math32.Acos(1 - 2*f/count)
		theta := goldenTurn * f

		sinPhi, cosPhi := math32.Sincos(phi)
		sinTheta, cosTheta := math32.Sincos(theta)
		points[i] = math.Vec3{
			X: cosTheta * sinPhi,
			Y: sinTheta * sinPhi,
			Z: cosPhi,
		}
	}
	return points
}
