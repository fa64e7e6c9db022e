package metrics

// Containment is the fraction of frames in which every particle was inside
// the surface.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s Sample) {
	c.samples++
	for _, p := range s.Particles {
		if p.X < 0 || p.Y < 0 || p.X > s.Width || p.Y > s.Height {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// MeanLinks is the average number of connections drawn per frame.
type MeanLinks struct {
	name    string
	sum     float64
	samples int
}

func NewMeanLinks() *MeanLinks {
	return &MeanLinks{name: "mean_links"}
}

func (m *MeanLinks) Name() string {
	return m.name
}

func (m *MeanLinks) Observe(s Sample) {
	m.sum += float64(s.Links)
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.sum = 0
	m.samples = 0
}
