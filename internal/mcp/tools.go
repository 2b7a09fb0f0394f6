package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MeasureInput are the arguments of measure_page_load. Unset optional fields
// fall back to the server configuration.
type MeasureInput struct {
	URL           string   `json:"url" jsonschema:"absolute http or https URL of the page to measure"`
	Warmup        *int     `json:"warmup,omitempty" jsonschema:"number of discarded warm-up loads"`
	MinIterations *int     `json:"min_iterations,omitempty" jsonschema:"measurements taken before the stability check starts"`
	MaxIterations *int     `json:"max_iterations,omitempty" jsonschema:"hard ceiling on measurements"`
	Threshold     *float64 `json:"threshold,omitempty" jsonschema:"relative IQR (IQR / median) at which the median counts as stable"`
	Width         *int     `json:"width,omitempty" jsonschema:"box plot width in columns"`
}

// DescribeInput are the arguments of describe_samples.
type DescribeInput struct {
	Samples []float64 `json:"samples" jsonschema:"latency samples in milliseconds, in any order"`
	Width   *int      `json:"width,omitempty" jsonschema:"box plot width in columns"`
}

// SummaryOutput is the structured result shared by both tools.
type SummaryOutput struct {
	URL        string    `json:"url,omitempty"`
	Samples    int       `json:"samples"`
	Converged  bool      `json:"converged"`
	Iterations int       `json:"iterations"`
	MedianMs   float64   `json:"median_ms"`
	IQRMs      float64   `json:"iqr_ms"`
	IQRPercent *float64  `json:"iqr_percent,omitempty"`
	MinMs      float64   `json:"min_ms"`
	MaxMs      float64   `json:"max_ms"`
	Outliers   []float64 `json:"outliers"`
	Plot       []string  `json:"plot"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name: "measure_page_load",
		Description: "Load a page repeatedly over HTTP until the median load time is stable " +
			"(IQR within the threshold of the median) or the iteration ceiling is hit, " +
			"then return a box plot and summary of the latencies.",
	}, s.handleMeasurePageLoad)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "describe_samples",
		Description: "Summarize an existing set of latency samples: quartiles, IQR, Tukey outliers and a text box plot.",
	}, s.handleDescribeSamples)
}
