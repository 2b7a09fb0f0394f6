package visuals

import (
	"fmt"
	"math"
	"strings"

	"pageload/internal/stats"
)

// GenerateLatencyChart creates a Mermaid xychart-beta of the measured latencies in
// sampling order, with the median and the upper inner fence drawn as flat lines.
func GenerateLatencyChart(sequence []float64, d stats.Distribution) string {
	if len(sequence) == 0 {
		return ""
	}

	var labels []string
	var values []string
	var medians []string
	var fences []string

	for i, v := range sequence {
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%.1f", v))
		medians = append(medians, fmt.Sprintf("%.1f", d.Summary.Median))
		fences = append(fences, fmt.Sprintf("%.1f", d.Fences.InnerUpper))
	}

	// Leave headroom above whichever is higher: the slowest sample or the fence line
	maxY := math.Max(d.Summary.Max, d.Fences.InnerUpper) * 1.1
	if maxY <= 0 {
		maxY = 1
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Page Load Latency by Iteration\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Load Time (ms)\" 0 --> %d\n", int(math.Ceil(maxY))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(medians, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(fences, ", ")))
	sb.WriteString("```")
	return sb.String()
}
