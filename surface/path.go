package surface

// Point is a path vertex.
type Point struct {
	X float64
	Y float64
}

// Subpath is one MoveTo-started run of points.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path accumulates subpaths between BeginPath and Stroke/Fill.
type Path struct {
	Subpaths []Subpath
}

func (p *Path) Begin() {
	p.Subpaths = p.Subpaths[:0]
}

func (p *Path) MoveTo(x, y float64) {
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{{x, y}}})
}

// LineTo extends the current subpath; without one it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.Subpaths) == 0 {
		p.MoveTo(x, y)
		return
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	last.Points = append(last.Points, Point{x, y})
}

func (p *Path) Close() {
	if len(p.Subpaths) == 0 {
		return
	}
	p.Subpaths[len(p.Subpaths)-1].Closed = true
}

// Segments calls fn for every line segment, including closing segments.
func (p *Path) Segments(fn func(a, b Point)) {
	for _, sp := range p.Subpaths {
		for i := 1; i < len(sp.Points); i++ {
			fn(sp.Points[i-1], sp.Points[i])
		}
		if sp.Closed && len(sp.Points) > 2 {
			fn(sp.Points[len(sp.Points)-1], sp.Points[0])
		}
	}
}

// RectPath returns a closed rectangle path.
func RectPath(x, y, w, h float64) Path {
	var p Path
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}
