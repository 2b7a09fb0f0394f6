package commands

import (
	"time"

	"pageload/internal/probe"

	"github.com/spf13/cobra"
)

var simCfg probe.SyntheticConfig

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the sampler against generated latencies instead of a real page",
	Long: `Runs the same warm-up, convergence check and report as a real measurement,
but each sample comes from a generator so the stopping rule can be observed
without a server. Scenarios: mild (1% jitter), chaos (stalls / heavy tail),
drift (latency creeps upward).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("seed") {
			simCfg.Seed = time.Now().UnixNano()
		}
		p, err := probe.NewSyntheticProbe(simCfg)
		if err != nil {
			return err
		}
		return measure(cmd, p)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simCfg.Scenario, "scenario", probe.ScenarioMild, "scenario to generate: mild, chaos, drift")
	f.StringVar(&simCfg.Distribution, "distribution", probe.DistributionUniform, "distribution to use: uniform, weibull")
	f.Float64Var(&simCfg.BaseMs, "base", 250, "typical latency in milliseconds")
	f.IntVar(&simCfg.Horizon, "horizon", 50, "number of calls over which drift plays out")
	f.Int64Var(&simCfg.Seed, "seed", 0, "random seed (defaults to the current time)")
}
