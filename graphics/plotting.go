// Package graphics renders solver snapshots to PNG files: line plots for
// 1D fields, heat maps for 2D, and a mid-plane heat map slice for 3D.
package graphics

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/gospectral/solver"
)

// NewPNGSink returns a snapshot sink writing one PNG per sample into dir,
// named <name>_<step>.png. The real part of component comp is rendered.
func NewPNGSink(dir, name string, comp int) solver.SnapshotFunc {
	return func(s *solver.Snapshot) error {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		p, err := render(s, comp)
		if err != nil {
			return err
		}
		fname := filepath.Join(dir, fmt.Sprintf("%s_%06d.png", name, s.Step))
		return p.Save(6*vg.Inch, 5*vg.Inch, fname)
	}
}

func render(s *solver.Snapshot, comp int) (p *plot.Plot, err error) {
	p = plot.New()
	p.Title.Text = fmt.Sprintf("t = %.4f", s.Time)
	switch len(s.Size) {
	case 1:
		err = renderLine(p, s, comp)
	default:
		err = renderHeatMap(p, s, comp)
	}
	return
}

func renderLine(p *plot.Plot, s *solver.Snapshot, comp int) error {
	var (
		vals = s.Real(comp)
		lo   = s.Bounds[0][0]
		h    = (s.Bounds[0][1] - lo) / float64(s.Size[0])
	)
	pts := make(plotter.XYs, len(vals))
	for i, v := range vals {
		pts[i].X = lo + float64(i)*h
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.X.Label.Text = "x"
	if s.ValueRange != [2]float64{} {
		p.Y.Min, p.Y.Max = s.ValueRange[0], s.ValueRange[1]
	}
	return nil
}

// fieldGrid adapts one component of a snapshot to the plotter grid
// interface. For 3D fields it presents the mid-plane slice in the last
// dimension.
type fieldGrid struct {
	s     *solver.Snapshot
	vals  []float64
	slice int // flattened offset of the rendered plane
}

func (g fieldGrid) Dims() (c, r int) { return g.s.Size[0], g.s.Size[1] }

func (g fieldGrid) Z(c, r int) float64 {
	var stride = 1
	for d := 2; d < len(g.s.Size); d++ {
		stride *= g.s.Size[d]
	}
	return g.vals[(c*g.s.Size[1]+r)*stride+g.slice]
}

func (g fieldGrid) X(c int) float64 { return coord(g.s.Bounds[0], g.s.Size[0], c) }
func (g fieldGrid) Y(r int) float64 { return coord(g.s.Bounds[1], g.s.Size[1], r) }

func coord(b [2]float64, n, i int) float64 {
	return b[0] + float64(i)*(b[1]-b[0])/float64(n)
}

func renderHeatMap(p *plot.Plot, s *solver.Snapshot, comp int) error {
	g := fieldGrid{s: s, vals: s.Real(comp)}
	if len(s.Size) == 3 {
		g.slice = s.Size[2] / 2
	}
	pal := moreland.Kindlmann().Palette(255)
	hm := plotter.NewHeatMap(g, pal)
	if s.ValueRange != [2]float64{} {
		hm.Min, hm.Max = s.ValueRange[0], s.ValueRange[1]
	}
	p.Add(hm)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return nil
}
