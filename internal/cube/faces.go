package cube

import (
	"sort"

	"github.com/san-kum/neonfolio/internal/vmath"
)

const (
	// perspective is the viewer distance, in cube units, from the plane the
	// cube rotates about.
	perspective = 1000.0
	// viewport is the side of the square the cube is laid out in, in cube
	// units; Project scales it to the requested size.
	viewport = 260.0

	// MaxEdge bounds Edge from above. A cube this large has corners that
	// reach the viewer.
	MaxEdge = 2 * perspective / 1.7320508075688772
)

// toViewer points from the cube toward the eye.
var toViewer = vmath.Vec3{Z: 1}

// Face is one side of the cube. Offset places it on the cube and never
// changes; only the group rotation moves faces.
type Face struct {
	Label  string
	Side   string
	Offset Rotation
}

var sides = [6]struct {
	name   string
	offset Rotation
}{
	{"front", Rotation{0, 0}},
	{"right", Rotation{0, 90}},
	{"left", Rotation{0, -90}},
	{"top", Rotation{90, 0}},
	{"bottom", Rotation{-90, 0}},
	{"back", Rotation{0, 180}},
}

func buildFaces(labels []string) [6]Face {
	var faces [6]Face
	for i, s := range sides {
		label := ""
		if i < len(labels) {
			label = labels[i]
		} else if i < len(DefaultLabels) {
			label = DefaultLabels[i]
		}
		faces[i] = Face{Label: label, Side: s.name, Offset: s.offset}
	}
	return faces
}

// place applies the face offset and then the shared group rotation.
// The group transform is rotateX(rot.X) rotateY(rot.Y), so Y turns first.
func place(p vmath.Vec3, f Face, rot Rotation) vmath.Vec3 {
	p = p.RotateY(f.Offset.Y).RotateX(f.Offset.X)
	return p.RotateY(rot.Y).RotateX(rot.X)
}

// Normal is the outward unit normal of f under rot, taken from two edges of
// the placed face. Positive Z faces the viewer.
func Normal(f Face, rot Rotation) vmath.Vec3 {
	a := place(vmath.Vec3{X: -1, Y: -1, Z: 1}, f, rot)
	b := place(vmath.Vec3{X: 1, Y: -1, Z: 1}, f, rot)
	d := place(vmath.Vec3{X: -1, Y: 1, Z: 1}, f, rot)
	return b.Sub(a).Cross(d.Sub(a)).Normalize()
}

type ProjectedFace struct {
	Face
	Corners [4]vmath.Vec2
	Center  vmath.Vec2
	Normal  vmath.Vec3
	Depth   float64
	Visible bool
}

// Project lays the cube out in a width x height viewport with the current
// rotation. Faces come back ordered far to near.
func (w *Widget) Project(width, height float64) []ProjectedFace {
	return ProjectFaces(w.faces[:], w.rot, w.cfg.Edge, width, height)
}

func ProjectFaces(faces []Face, rot Rotation, edge, width, height float64) []ProjectedFace {
	if width <= 0 || height <= 0 || edge <= 0 || edge >= MaxEdge {
		return nil
	}
	s := edge / 2
	scale := width / viewport
	if h := height / viewport; h < scale {
		scale = h
	}
	cx, cy := width/2, height/2
	local := [4]vmath.Vec3{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}

	project := func(p vmath.Vec3) vmath.Vec2 {
		k := perspective / (perspective - p.Z)
		return vmath.Vec2{X: cx + p.X*k*scale, Y: cy + p.Y*k*scale}
	}

	out := make([]ProjectedFace, 0, len(faces))
	for _, f := range faces {
		pf := ProjectedFace{Face: f, Normal: Normal(f, rot)}
		var sum vmath.Vec3
		for i, c := range local {
			world := place(c, f, rot)
			pf.Corners[i] = project(world)
			sum = sum.Add(world)
		}
		pf.Depth = sum.Scale(0.25).Z
		pf.Center = project(place(vmath.Vec3{Z: s}, f, rot))
		pf.Visible = pf.Normal.Dot(toViewer) > 1e-9
		out = append(out, pf)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}
