package visuals

import (
	"math"

	"pageload/internal/stats"
)

const (
	glyphBlank       = ' '
	glyphFill        = '─'
	glyphTopLeft     = '┌'
	glyphTopTee      = '┬'
	glyphTopRight    = '┐'
	glyphBottomLeft  = '└'
	glyphBottomTee   = '┴'
	glyphBottomRight = '┘'
	glyphCapLeft     = '├'
	glyphCapRight    = '┤'
	glyphMedian      = '│'
	glyphNearOutlier = '○'
	glyphFarOutlier  = '✳'
)

// BoxPlot is the input to RenderBoxPlot.
type BoxPlot struct {
	Summary  stats.Summary
	Fences   stats.Fences
	Outliers []float64
}

// BoxPlotFromDistribution picks the fields a box plot needs out of d.
func BoxPlotFromDistribution(d stats.Distribution) BoxPlot {
	return BoxPlot{Summary: d.Summary, Fences: d.Fences, Outliers: d.Outliers}
}

// RenderBoxPlot draws p on a horizontal axis spanning [Min, Max] as three lines
// of exactly width runes. It returns nil when width <= 0. When Min == Max every
// value is drawn in column 0.
func RenderBoxPlot(p BoxPlot, width int) []string {
	if width <= 0 {
		return nil
	}

	s := p.Summary
	project := projector(s.Min, s.Max, width)

	loWhisker := math.Max(s.Min, p.Fences.InnerLower)
	upWhisker := math.Min(s.Max, p.Fences.InnerUpper)
	p1 := project(loWhisker)
	p2 := project(s.Q1)
	p3 := project(s.Median)
	p4 := project(s.Q3)
	p5 := project(upWhisker)

	top := newCanvasLine(width)
	mid := newCanvasLine(width)
	bottom := newCanvasLine(width)

	top.set(p2, glyphTopLeft)
	top.fill(p2+1, p3, glyphFill)
	top.set(p3, glyphTopTee)
	top.fill(p3+1, p4, glyphFill)
	top.set(p4, glyphTopRight)

	mid.set(p1, glyphCapLeft)
	mid.fill(p1+1, p2, glyphFill)
	mid.set(p2, glyphCapRight)
	mid.set(p3, glyphMedian)
	mid.set(p4, glyphCapLeft)
	mid.fill(p4+1, p5, glyphFill)
	mid.set(p5, glyphCapRight)

	bottom.set(p2, glyphBottomLeft)
	bottom.fill(p2+1, p3, glyphFill)
	bottom.set(p3, glyphBottomTee)
	bottom.fill(p3+1, p4, glyphFill)
	bottom.set(p4, glyphBottomRight)

	for _, o := range p.Outliers {
		glyph := glyphNearOutlier
		if p.Fences.IsFarOut(o) {
			glyph = glyphFarOutlier
		}
		mid.set(project(o), glyph)
	}

	return []string{top.String(), mid.String(), bottom.String()}
}

// projector maps a value in [lo, hi] to a column in [0, width-1].
func projector(lo, hi float64, width int) func(float64) int {
	span := hi - lo
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return func(float64) int { return 0 }
	}
	ratio := float64(width-1) / span
	return func(x float64) int {
		col := int(math.Round((x - lo) * ratio))
		return min(max(col, 0), width-1)
	}
}

type canvasLine []rune

func newCanvasLine(width int) canvasLine {
	line := make(canvasLine, width)
	for i := range line {
		line[i] = glyphBlank
	}
	return line
}

func (l canvasLine) set(i int, r rune) {
	if i >= 0 && i < len(l) {
		l[i] = r
	}
}

// fill writes r to columns [from, to).
func (l canvasLine) fill(from, to int, r rune) {
	for i := max(from, 0); i < to && i < len(l); i++ {
		l[i] = r
	}
}

func (l canvasLine) String() string {
	return string(l)
}
