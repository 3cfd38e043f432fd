package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Simplici0/marsloop/internal/regional"
)

var logger = zap.NewNop()

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "marsloop",
		Short:        "Material and energy balance for a Mars habitat waste loop",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			zcfg := zap.NewDevelopmentConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(evaluateCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(regionalCmd())
	return root
}

type profileFlags struct {
	dir     string
	url     string
	timeout time.Duration
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "regolith-dir", "", "directory with regolith_<site>.json profiles")
	cmd.Flags().StringVar(&f.url, "regolith-url", "", "base URL of a marsloop server to fetch profiles from")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 5*time.Second, "profile lookup timeout")
}

func evaluateCmd() *cobra.Command {
	var (
		profiles profileFlags
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [scenario.yaml]",
		Short: "Evaluate one scenario and print the balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), cmd.OutOrStdout(), scenarioPath(args), profiles, asJSON)
		},
	}
	profiles.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func sweepCmd() *cobra.Command {
	var (
		profiles       profileFlags
		field          string
		from, to, step float64
		out            string
	)

	cmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "Evaluate a scenario across a range of one input and write CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), cmd.OutOrStdout(), sweepOptions{
				scenario: scenarioPath(args),
				profiles: profiles,
				field:    field,
				from:     from,
				to:       to,
				step:     step,
				out:      out,
			})
		},
	}
	profiles.register(cmd)
	cmd.Flags().StringVar(&field, "field", "plastics3d_kg_day", "input to vary")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 3, "last value")
	cmd.Flags().Float64Var(&step, "step", 0.5, "increment")
	cmd.Flags().StringVarP(&out, "out", "o", "", "CSV file (default stdout)")
	return cmd
}

func regionalCmd() *cobra.Command {
	var opts regionalOptions

	cmd := &cobra.Command{
		Use:   "regional",
		Short: "Evaluate the terrestrial plastics-to-energy variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegional(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Float64Var(&opts.lat, "lat", regional.DefaultLatitude, "latitude")
	cmd.Flags().Float64Var(&opts.lon, "lon", regional.DefaultLongitude, "longitude")
	cmd.Flags().Float64Var(&opts.intake, "intake", regional.DefaultIntakeKgDay, "waste intake, kg/day")
	cmd.Flags().IntVar(&opts.days, "days", regional.DefaultProjectionDays, "projection days")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip the solar fetch and use the default irradiance")
	cmd.Flags().StringVar(&opts.solarURL, "solar-url", "", "irradiance API base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "solar fetch timeout")
	return cmd
}

func scenarioPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
