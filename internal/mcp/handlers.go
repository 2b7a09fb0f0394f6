package mcp

import (
	"context"
	"errors"
	"fmt"

	"pageload/internal/report"
	"pageload/internal/sampling"
	"pageload/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleMeasurePageLoad(ctx context.Context, _ *sdk.CallToolRequest, in MeasureInput) (*sdk.CallToolResult, SummaryOutput, error) {
	sampleCfg := s.cfg.Sampling
	overrideInt(&sampleCfg.Warmup, in.Warmup)
	overrideInt(&sampleCfg.MinIterations, in.MinIterations)
	overrideInt(&sampleCfg.MaxIterations, in.MaxIterations)
	if in.Threshold != nil {
		sampleCfg.StabilityThreshold = *in.Threshold
	}
	width := s.cfg.Width
	overrideInt(&width, in.Width)

	if err := sampleCfg.Validate(); err != nil {
		return nil, SummaryOutput{}, err
	}
	if err := s.cfg.Fences.Validate(); err != nil {
		return nil, SummaryOutput{}, err
	}

	probeCfg := s.cfg.Probe
	probeCfg.URL = in.URL
	p, err := s.newProbe(probeCfg)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	if err := s.runs.Acquire(ctx, 1); err != nil {
		return nil, SummaryOutput{}, fmt.Errorf("waiting for the running measurement: %w", err)
	}
	defer s.runs.Release(1)

	log.Info().Str("url", in.URL).Msg("Measuring page load")
	res, err := sampling.Run(ctx, p, sampleCfg, func(i int, v float64) {
		log.Debug().Int("iteration", i).Float64("latency_ms", v).Msg("Measured")
	})
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	r := report.Build(res, s.cfg.Fences, width)
	text := r.String()
	if s.cfg.EnableMermaidCharts {
		text += "\n" + visuals.GenerateLatencyChart(res.Sequence, r.Distribution)
	}

	out := summarize(r)
	out.URL = in.URL
	return textResult(text), out, nil
}

func (s *Server) handleDescribeSamples(_ context.Context, _ *sdk.CallToolRequest, in DescribeInput) (*sdk.CallToolResult, SummaryOutput, error) {
	if len(in.Samples) == 0 {
		return nil, SummaryOutput{}, errors.New("samples must not be empty")
	}
	if err := s.cfg.Fences.Validate(); err != nil {
		return nil, SummaryOutput{}, err
	}
	width := s.cfg.Width
	overrideInt(&width, in.Width)

	res := sampling.Result{
		Samples:    in.Samples,
		Sequence:   in.Samples,
		Converged:  true,
		Iterations: len(in.Samples),
	}
	r := report.Build(res, s.cfg.Fences, width)
	return textResult(r.String()), summarize(r), nil
}

func summarize(r report.Report) SummaryOutput {
	d := r.Distribution
	out := SummaryOutput{
		Samples:    len(d.Samples),
		Converged:  r.Converged,
		Iterations: r.Iterations,
		MedianMs:   d.Summary.Median,
		IQRMs:      d.IQR,
		MinMs:      d.Summary.Min,
		MaxMs:      d.Summary.Max,
		Outliers:   d.Outliers,
		Plot:       r.Plot,
	}
	if out.Outliers == nil {
		out.Outliers = []float64{}
	}
	if out.Plot == nil {
		out.Plot = []string{}
	}
	if pct, ok := d.IQRPercent(); ok {
		out.IQRPercent = &pct
	}
	return out
}

func textResult(text string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: text}},
	}
}

func overrideInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
