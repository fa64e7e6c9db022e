package viz

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neonfolio/internal/cube"
)

// DrawCube outlines the faces turned toward the viewer and writes their
// labels. Faces must be projected into the canvas dot space and ordered far
// to near, as cube.ProjectFaces returns them.
func DrawCube(c *Canvas, faces []cube.ProjectedFace, edge, label colorful.Color) {
	if c == nil {
		return
	}
	for _, f := range faces {
		if !f.Visible {
			continue
		}
		// nearer faces read brighter
		alpha := 0.35 + 0.65*math.Min(1, math.Max(0, f.Normal.Z))
		for i := range f.Corners {
			a, b := f.Corners[i], f.Corners[(i+1)%len(f.Corners)]
			c.StrokeLine(round(a.X), round(a.Y), round(b.X), round(b.Y), edge, alpha)
		}
	}
	for _, f := range faces {
		if !f.Visible || f.Label == "" || f.Normal.Z < 0.35 {
			continue
		}
		c.Label(round(f.Center.X)/2, round(f.Center.Y)/4, f.Label, label)
	}
}

func round(v float64) int { return int(math.Round(v)) }
