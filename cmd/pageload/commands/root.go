package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"pageload/internal/config"
	"pageload/internal/logging"
	"pageload/internal/probe"
	"pageload/internal/report"
	"pageload/internal/sampling"
	"pageload/internal/stats"
	"pageload/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

// measureFlags hold command-line overrides; they only apply when set.
type measureFlags struct {
	warmup      int
	min         int
	max         int
	width       int
	threshold   float64
	innerFence  float64
	outerFence  float64
	timeoutSecs int
	strictTLS   bool
	showBrowser bool
	mermaid     bool
}

var flags measureFlags

var rootCmd = &cobra.Command{
	Use:   "pageload [url]",
	Short: "Measure page load time until the median is stable",
	Long: `Loads a page repeatedly, one request at a time, until the interquartile range
of the load times is within 1% of the median (or an iteration ceiling is hit),
then prints a text box plot and a summary of the distribution.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("pageload starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		probeCfg := cfg.Probe
		probeCfg.URL = args[0]
		p, err := probe.NewHTTPProbe(probeCfg)
		if err != nil {
			return err
		}

		if flags.showBrowser {
			openInBrowser(p.URL())
		}
		return measure(cmd, p)
	},
}

// measure runs the sampler against p and prints progress and the report.
func measure(cmd *cobra.Command, p sampling.Probe) error {
	if err := cfg.Fences.Validate(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	report.WriteWarmup(out)
	res, err := sampling.Run(cmd.Context(), p, cfg.Sampling, func(i int, v float64) {
		report.WriteProgress(out, i, v)
	})
	if err != nil {
		return err
	}

	r := report.Build(res, cfg.Fences, cfg.Width)
	if err := report.Write(out, r); err != nil {
		return err
	}
	if cfg.EnableMermaidCharts {
		_, err = fmt.Fprintf(out, "\n%s\n", visuals.GenerateLatencyChart(res.Sequence, r.Distribution))
	}
	return err
}

func openInBrowser(url string) {
	// Keep the browser launcher's own output off stdout.
	browser.Stdout = os.Stderr
	if err := browser.OpenURL(url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
	}
}

func applyFlags(cmd *cobra.Command, c *config.AppConfig) {
	f := cmd.Flags()
	if f.Changed("warmup") {
		c.Sampling.Warmup = flags.warmup
	}
	if f.Changed("min") {
		c.Sampling.MinIterations = flags.min
	}
	if f.Changed("max") {
		c.Sampling.MaxIterations = flags.max
	}
	if f.Changed("threshold") {
		c.Sampling.StabilityThreshold = flags.threshold
	}
	if f.Changed("width") {
		c.Width = flags.width
	}
	if f.Changed("inner-fence") {
		c.Fences.Inner = flags.innerFence
	}
	if f.Changed("outer-fence") {
		c.Fences.Outer = flags.outerFence
	}
	if f.Changed("timeout") {
		c.Probe.Timeout = time.Duration(flags.timeoutSecs) * time.Second
	}
	if f.Changed("strict-tls") {
		c.Probe.StrictTLS = flags.strictTLS
	}
	if f.Changed("mermaid") {
		c.EnableMermaidCharts = flags.mermaid
	}
}

// ExecuteContext runs the CLI with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flags.warmup, "warmup", sampling.DefaultWarmup, "discarded warm-up loads")
	pf.IntVar(&flags.min, "min", sampling.DefaultMinIterations, "measurements before the stability check starts")
	pf.IntVar(&flags.max, "max", sampling.DefaultMaxIterations, "maximum number of measurements")
	pf.Float64Var(&flags.threshold, "threshold", stats.DefaultStabilityThreshold, "relative IQR (IQR / median) at which the median is stable")
	pf.IntVar(&flags.width, "width", report.DefaultWidth, "box plot width in columns")
	pf.Float64Var(&flags.innerFence, "inner-fence", stats.DefaultInnerFence, "IQR multiplier for outliers")
	pf.Float64Var(&flags.outerFence, "outer-fence", stats.DefaultOuterFence, "IQR multiplier for far-out outliers")
	pf.BoolVar(&flags.mermaid, "mermaid", false, "also print a Mermaid chart of the samples")

	pf.IntVar(&flags.timeoutSecs, "timeout", int(probe.DefaultTimeout/time.Second), "per-load timeout in seconds")
	pf.BoolVar(&flags.strictTLS, "strict-tls", false, "verify TLS certificates")

	rootCmd.Flags().BoolVar(&flags.showBrowser, "show-browser", false, "open the page in the system browser before measuring")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}
