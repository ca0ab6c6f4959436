package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/balsini/RTSIM/config"
	"github.com/balsini/RTSIM/engine"
	"github.com/balsini/RTSIM/examples/markov"
	"github.com/balsini/RTSIM/rtlib"
)

var logLevel string

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "rtsim",
	Short: "Discrete-event simulator for real-time scheduling scenarios",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(markovCmd)
	rootCmd.AddCommand(stepCmd)
}

var (
	scenarioPath string
	kernelName   string
)

// runCmd loads a scenario file and drives it to completion with
// Simulation.Run.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario file to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scenarioPath == "" {
			return fmt.Errorf("--scenario is required")
		}

		scen, err := config.Load(scenarioPath)
		if err != nil {
			return err
		}

		sim := engine.NewSimulation(logrus.StandardLogger())

		var kernel rtlib.Kernel
		switch kernelName {
		case "", "fp":
			kernel = rtlib.NewFPKernel("fp")
		default:
			return fmt.Errorf("unknown kernel %q", kernelName)
		}

		tasks, err := scen.Build(sim, kernel)
		if err != nil {
			return err
		}
		logrus.WithField("tasks", len(tasks)).Info("scenario loaded")

		if err := sim.Run(engine.Tick(scen.Horizon), scen.NRuns); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		logrus.Info("run complete")
		return nil
	},
}

var (
	markovHorizon int64
	markovNRuns   int
)

// markovCmd drives the two-state Markov chain demo, reporting each
// state's average dwell time.
var markovCmd = &cobra.Command{
	Use:   "markov",
	Short: "Run the two-state Markov chain demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim := engine.NewSimulation(logrus.StandardLogger())

		a, err := markov.NewState(sim, "A", true)
		if err != nil {
			return err
		}
		b, err := markov.NewState(sim, "B", false)
		if err != nil {
			return err
		}
		a.AddLink(5, b)
		b.AddLink(5, a)

		statA := markov.NewAvgTimeInState("A", a)
		statB := markov.NewAvgTimeInState("B", b)

		if err := sim.Run(engine.Tick(markovHorizon), markovNRuns); err != nil {
			return err
		}

		fmt.Printf("average dwell time: A=%.3f B=%.3f\n", statA.Average(), statB.Average())
		return nil
	},
}

var (
	stepScenarioPath string
	stepCount        int
)

// stepCmd exposes SimStep one call at a time, for debugging a scenario
// without running it to completion.
var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Single-step a scenario, printing the time of each fired event",
	RunE: func(cmd *cobra.Command, args []string) error {
		if stepScenarioPath == "" {
			return fmt.Errorf("--scenario is required")
		}

		scen, err := config.Load(stepScenarioPath)
		if err != nil {
			return err
		}

		sim := engine.NewSimulation(logrus.StandardLogger())
		kernel := rtlib.NewFPKernel("fp")

		if _, err := scen.Build(sim, kernel); err != nil {
			return err
		}
		sim.InitRuns(1)
		sim.InitSingleRun()

		for i := 0; i < stepCount; i++ {
			t, err := sim.SimStep()
			if err != nil {
				fmt.Printf("step %d: %v\n", i, err)
				break
			}
			fmt.Printf("step %d: t=%s queueLen=%d\n", i, t, sim.QueueLen())
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a scenario YAML file")
	runCmd.Flags().StringVar(&kernelName, "kernel", "fp", "kernel to schedule tasks with (fp)")

	markovCmd.Flags().Int64Var(&markovHorizon, "horizon", 1000, "simulation horizon (ticks)")
	markovCmd.Flags().IntVar(&markovNRuns, "runs", 1, "number of replicas")

	stepCmd.Flags().StringVar(&stepScenarioPath, "scenario", "", "path to a scenario YAML file")
	stepCmd.Flags().IntVar(&stepCount, "count", 10, "number of events to step through")
}
