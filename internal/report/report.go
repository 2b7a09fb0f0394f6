package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"pageload/internal/sampling"
	"pageload/internal/stats"
	"pageload/internal/visuals"

	"github.com/fatih/color"
)

// DefaultWidth is the box plot width in columns.
const DefaultWidth = 50

const separatorWidth = 50

// Report is the rendered outcome of one sampling run.
type Report struct {
	Distribution stats.Distribution
	Plot         []string
	Converged    bool
	Iterations   int
}

// Build summarizes res and renders its box plot at the given width.
func Build(res sampling.Result, m stats.FenceMultipliers, width int) Report {
	d := stats.Describe(res.Samples, m)
	return Report{
		Distribution: d,
		Plot:         visuals.RenderBoxPlot(visuals.BoxPlotFromDistribution(d), width),
		Converged:    res.Converged,
		Iterations:   res.Iterations,
	}
}

// SummaryLines returns the aligned numeric summary printed under the plot.
func (r Report) SummaryLines() []string {
	d := r.Distribution
	iqrPercent := "n/a"
	if pct, ok := d.IQRPercent(); ok {
		iqrPercent = strconv.FormatFloat(pct, 'f', 2, 64) + "%"
	}

	return []string{
		fmt.Sprintf("  samples   : %d", len(d.Samples)),
		fmt.Sprintf("  median    : %s msec", FormatMs(d.Summary.Median)),
		fmt.Sprintf("  IQR       : %s msec (%s)", FormatMs(d.IQR), iqrPercent),
		fmt.Sprintf("  min       : %s msec", FormatMs(d.Summary.Min)),
		fmt.Sprintf("  max       : %s msec", FormatMs(d.Summary.Max)),
		fmt.Sprintf("  # outliers: %d", len(d.Outliers)),
	}
}

// Warning returns the non-convergence message, or "" for a converged run.
func (r Report) Warning() string {
	if r.Converged {
		return ""
	}
	return fmt.Sprintf("median is not stable after %d iterations", r.Iterations)
}

// String renders the whole report without colour.
func (r Report) String() string {
	var sb strings.Builder
	_ = write(&sb, r, false)
	return sb.String()
}

// Write prints r the way the CLI shows it: separator, optional warning, then
// the plot framed by the numeric summary.
func Write(w io.Writer, r Report) error {
	return write(w, r, true)
}

func write(w io.Writer, r Report, colored bool) error {
	header := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	if !colored {
		header.DisableColor()
		warn.DisableColor()
		dim.DisableColor()
	}

	if _, err := dim.Fprintln(w, strings.Repeat("-", separatorWidth)); err != nil {
		return err
	}
	if msg := r.Warning(); msg != "" {
		if _, err := warn.Fprintln(w, msg); err != nil {
			return err
		}
	}
	if _, err := header.Fprintln(w, "load time statistics:"); err != nil {
		return err
	}

	lines := []string{""}
	lines = append(lines, r.Plot...)
	lines = append(lines, "")
	lines = append(lines, r.SummaryLines()...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteWarmup announces the warm-up phase.
func WriteWarmup(w io.Writer) {
	fmt.Fprintln(w, "warming up server...")
}

// WriteProgress prints one measurement line.
func WriteProgress(w io.Writer, iteration int, latencyMs float64) {
	fmt.Fprintf(w, "measuring #%d: %s msec\n", iteration, FormatMs(latencyMs))
}

// FormatMs prints v rounded to two decimals without trailing zeros.
func FormatMs(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
