package cube_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neonfolio/internal/cube"
	"github.com/san-kum/neonfolio/internal/frame"
	"github.com/san-kum/neonfolio/internal/input"
)

var _ = Describe("Widget", func() {
	var (
		q   *frame.Queue
		bus *input.Bus
		w   *cube.Widget
	)

	flush := func(n int) {
		for i := 0; i < n; i++ {
			q.Flush(time.Now())
		}
	}

	BeforeEach(func() {
		q = frame.NewQueue()
		bus = input.NewBus()
		w = cube.New(q, bus, cube.DefaultConfig())
		w.Start()
	})

	AfterEach(func() {
		w.Stop()
	})

	It("starts at the initial tilt", func() {
		Expect(w.Rotation()).To(Equal(cube.Rotation{X: -20, Y: 25}))
		Expect(w.Dragging()).To(BeFalse())
	})

	Describe("auto-rotation", func() {
		It("tumbles a fixed step every frame", func() {
			flush(10)
			r := w.Rotation()
			Expect(r.X).To(BeNumerically("~", -20+10*0.2, 1e-9))
			Expect(r.Y).To(BeNumerically("~", 25+10*0.3, 1e-9))
		})

		It("is suppressed while dragging and resumes on the next frame after release", func() {
			w.PointerDown(input.Point{X: 10, Y: 10})
			before := w.Rotation()
			flush(5)
			w.AutoRotate()
			Expect(w.Rotation()).To(Equal(before))

			w.PointerUp()
			flush(1)
			Expect(w.Rotation().X).To(BeNumerically("~", before.X+0.2, 1e-9))
			Expect(w.Rotation().Y).To(BeNumerically("~", before.Y+0.3, 1e-9))
		})
	})

	Describe("dragging", func() {
		It("maps horizontal motion to Y and vertical motion to X", func() {
			start := w.Rotation()
			bus.DispatchPointer(input.PointerEvent{Phase: input.PointerDown, Points: []input.Point{{X: 100, Y: 100}}})
			bus.DispatchPointer(input.PointerEvent{Phase: input.PointerMove, Points: []input.Point{{X: 130, Y: 115}}})

			r := w.Rotation()
			Expect(r.Y - start.Y).To(BeNumerically("~", 18, 1e-9))
			Expect(r.X - start.X).To(BeNumerically("~", 9, 1e-9))
			Expect(w.Dragging()).To(BeTrue())
		})

		It("accumulates deltas from the last recorded position", func() {
			start := w.Rotation()
			w.PointerDown(input.Point{X: 0, Y: 0})
			w.PointerMove(input.Point{X: 10, Y: 0})
			w.PointerMove(input.Point{X: 15, Y: 0})
			Expect(w.Rotation().Y - start.Y).To(BeNumerically("~", 15*0.6, 1e-9))
		})

		It("ignores moves when no drag is active", func() {
			start := w.Rotation()
			w.PointerMove(input.Point{X: 500, Y: 500})
			Expect(w.Rotation()).To(Equal(start))
		})

		It("ends on pointer leave", func() {
			w.PointerDown(input.Point{X: 1, Y: 1})
			bus.DispatchPointer(input.PointerEvent{Phase: input.PointerLeave})
			Expect(w.Dragging()).To(BeFalse())
		})

		It("uses the first touch point", func() {
			start := w.Rotation()
			bus.DispatchPointer(input.PointerEvent{Phase: input.PointerDown, Source: input.Touch, Points: []input.Point{{X: 0, Y: 0}, {X: 99, Y: 99}}})
			bus.DispatchPointer(input.PointerEvent{Phase: input.PointerMove, Source: input.Touch, Points: []input.Point{{X: 0, Y: 10}}})
			Expect(w.Rotation().X - start.X).To(BeNumerically("~", 6, 1e-9))
		})

		It("drops events without a position", func() {
			start := w.Rotation()
			Expect(func() {
				bus.DispatchPointer(input.PointerEvent{Phase: input.PointerDown, Source: input.Touch})
				bus.DispatchPointer(input.PointerEvent{Phase: input.PointerMove, Source: input.Touch})
			}).NotTo(Panic())
			Expect(w.Dragging()).To(BeFalse())
			Expect(w.Rotation()).To(Equal(start))
		})
	})

	Describe("keyboard", func() {
		It("turns Y by one step on ArrowRight", func() {
			bus.DispatchKey(input.KeyEvent{Key: input.ParseKey("ArrowRight")})
			Expect(w.Rotation()).To(Equal(cube.Rotation{X: -20, Y: 31}))
		})

		DescribeTable("nudges one axis per arrow",
			func(key input.Key, want cube.Rotation) {
				bus.DispatchKey(input.KeyEvent{Key: key})
				Expect(w.Rotation()).To(Equal(want))
			},
			Entry("left", input.KeyLeft, cube.Rotation{X: -20, Y: 19}),
			Entry("right", input.KeyRight, cube.Rotation{X: -20, Y: 31}),
			Entry("up", input.KeyUp, cube.Rotation{X: -26, Y: 25}),
			Entry("down", input.KeyDown, cube.Rotation{X: -14, Y: 25}),
			Entry("other", input.KeyOther, cube.Rotation{X: -20, Y: 25}),
		)

		It("composes with an active drag", func() {
			w.PointerDown(input.Point{X: 0, Y: 0})
			w.PointerMove(input.Point{X: 10, Y: 0})
			bus.DispatchKey(input.KeyEvent{Key: input.KeyRight})
			Expect(w.Rotation().Y).To(BeNumerically("~", 25+6+6, 1e-9))
		})
	})

	Describe("teardown", func() {
		It("releases every registration and ignores later events", func() {
			w.Stop()
			w.Stop()
			Expect(q.Pending()).To(BeZero())
			Expect(bus.Listeners()).To(BeZero())

			frozen := w.Rotation()
			Expect(func() {
				flush(3)
				w.AutoRotate()
				bus.DispatchKey(input.KeyEvent{Key: input.KeyLeft})
				w.HandleKey(input.KeyEvent{Key: input.KeyLeft})
				w.PointerDown(input.Point{X: 1, Y: 1})
				w.PointerMove(input.Point{X: 50, Y: 50})
				bus.DispatchResize(input.ResizeEvent{Width: 1, Height: 1})
			}).NotTo(Panic())
			Expect(w.Rotation()).To(Equal(frozen))
			Expect(w.Running()).To(BeFalse())
		})
	})
})

var _ = Describe("Faces", func() {
	It("keeps fixed 90 degree offsets", func() {
		w := cube.New(nil, nil, cube.DefaultConfig())
		offsets := map[string]cube.Rotation{}
		for _, f := range w.Faces() {
			offsets[f.Side] = f.Offset
		}
		Expect(offsets).To(Equal(map[string]cube.Rotation{
			"front":  {X: 0, Y: 0},
			"right":  {X: 0, Y: 90},
			"left":   {X: 0, Y: -90},
			"top":    {X: 90, Y: 0},
			"bottom": {X: -90, Y: 0},
			"back":   {X: 0, Y: 180},
		}))
	})

	It("labels faces in order and falls back to defaults", func() {
		cfg := cube.DefaultConfig()
		cfg.Labels = []string{"Go"}
		faces := cube.New(nil, nil, cfg).Faces()
		Expect(faces[0].Label).To(Equal("Go"))
		Expect(faces[1].Label).To(Equal("Node.js"))
	})

	It("stays a rigid, mutually orthogonal set under any rotation sequence", func() {
		q := frame.NewQueue()
		bus := input.NewBus()
		w := cube.New(q, bus, cube.DefaultConfig())
		w.Start()
		defer w.Stop()

		offsets := w.Faces()
		for i := 0; i < 200; i++ {
			switch i % 4 {
			case 0:
				q.Flush(time.Now())
			case 1:
				bus.DispatchKey(input.KeyEvent{Key: input.KeyDown})
			case 2:
				w.PointerDown(input.Point{X: float64(i), Y: 0})
			case 3:
				w.PointerMove(input.Point{X: float64(i * 3), Y: float64(i)})
				w.PointerUp()
			}
		}
		Expect(w.Faces()).To(Equal(offsets))

		faces := w.Faces()
		rot := w.Rotation()
		for i := range faces {
			ni := cube.Normal(faces[i], rot)
			Expect(ni.Length()).To(BeNumerically("~", 1, 1e-9))
			for j := i + 1; j < len(faces); j++ {
				d := cube.Normal(faces[j], rot).Dot(ni)
				Expect(math.Abs(d) < 1e-9 || math.Abs(d+1) < 1e-9).To(BeTrue(),
					"faces %s and %s: dot %v", faces[i].Side, faces[j].Side, d)
			}
		}
	})

	It("projects only the faces turned toward the viewer", func() {
		w := cube.New(nil, nil, cube.Config{Initial: cube.Rotation{}, Edge: 180})
		pf := w.Project(260, 260)
		Expect(pf).To(HaveLen(6))

		visible := 0
		for _, f := range pf {
			if f.Visible {
				visible++
				Expect(f.Side).To(Equal("front"))
				Expect(f.Center.X).To(BeNumerically("~", 130, 1e-9))
				Expect(f.Center.Y).To(BeNumerically("~", 130, 1e-9))
			}
		}
		Expect(visible).To(Equal(1))
		Expect(pf[len(pf)-1].Side).To(Equal("front"))
	})

	It("returns nothing for an empty viewport", func() {
		w := cube.New(nil, nil, cube.DefaultConfig())
		Expect(w.Project(0, 10)).To(BeEmpty())
	})

	It("derives face normals from the placed face edges", func() {
		faces := cube.New(nil, nil, cube.DefaultConfig()).Faces()
		want := map[string][3]float64{
			"front":  {0, 0, 1},
			"back":   {0, 0, -1},
			"right":  {1, 0, 0},
			"left":   {-1, 0, 0},
			"top":    {0, -1, 0},
			"bottom": {0, 1, 0},
		}
		for _, f := range faces {
			n := cube.Normal(f, cube.Rotation{})
			w := want[f.Side]
			Expect(n.X).To(BeNumerically("~", w[0], 1e-9), f.Side)
			Expect(n.Y).To(BeNumerically("~", w[1], 1e-9), f.Side)
			Expect(n.Z).To(BeNumerically("~", w[2], 1e-9), f.Side)
		}
	})

	It("orders faces by the mean depth of their corners", func() {
		pf := cube.ProjectFaces(cube.New(nil, nil, cube.DefaultConfig()).Faces(), cube.Rotation{}, 180, 260, 260)
		Expect(pf[0].Side).To(Equal("back"))
		Expect(pf[0].Depth).To(BeNumerically("~", -90, 1e-9))
		Expect(pf[len(pf)-1].Depth).To(BeNumerically("~", 90, 1e-9))
	})

	It("refuses cubes large enough to reach the viewer", func() {
		faces := cube.New(nil, nil, cube.DefaultConfig()).Faces()
		Expect(cube.ProjectFaces(faces, cube.Rotation{}, cube.MaxEdge, 260, 260)).To(BeEmpty())
		Expect(cube.ProjectFaces(faces, cube.Rotation{}, 2000, 260, 260)).To(BeEmpty())

		for _, rot := range []cube.Rotation{{}, {X: 35.26, Y: 45}, {X: -35.26, Y: 225}} {
			for _, f := range cube.ProjectFaces(faces, rot, cube.MaxEdge-1, 260, 260) {
				for _, c := range f.Corners {
					Expect(math.IsInf(c.X, 0) || math.IsNaN(c.X)).To(BeFalse())
					Expect(math.IsInf(c.Y, 0) || math.IsNaN(c.Y)).To(BeFalse())
				}
			}
		}
	})
})
