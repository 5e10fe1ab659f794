package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventspike/spikecore/config"
	"github.com/eventspike/spikecore/monitor"
)

func main() {
	var configPath string
	var durationOverride float64
	var threadsOverride int

	rootCmd := &cobra.Command{
		Use:   "spikesim",
		Short: "spikesim - event-driven spiking neural network simulator",
		Long:  "Runs a spiking network scenario described in a YAML file and prints the resulting spike log.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), configPath, durationOverride, threadsOverride)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "f", "", "Path to YAML scenario file (required)")
	f.Float64Var(&durationOverride, "duration", 0, "Override the scenario's run duration")
	f.IntVar(&threadsOverride, "threads", 0, "Override the scenario's decay worker count")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags interface {
	Changed(string) bool
}, configPath string, durationOverride float64, threadsOverride int) error {
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}

	scenario, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flags.Changed("duration") {
		scenario.Duration = durationOverride
	}
	if flags.Changed("threads") {
		scenario.NumThreads = threadsOverride
	}

	net, err := config.Build(scenario)
	if err != nil {
		return err
	}

	spikes := monitor.NewBufferedSpikeMonitor()
	net.SetSpikeMonitor(spikes)

	var states *monitor.IntervalStateMonitor
	if scenario.SamplingInterval > 0 {
		states = monitor.NewIntervalStateMonitor(scenario.SamplingInterval)
		net.SetStateMonitor(states)
	}

	if err := net.Run(scenario.Duration); err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	for _, rec := range spikes.Records() {
		fmt.Printf("spike\tt=%g\tneuron=%d\n", rec.Time, rec.NeuronID)
	}
	if states != nil {
		for _, r := range states.Readings() {
			fmt.Printf("state\tt=%g\tvalues=%v\n", r.Time, r.State)
		}
	}
	return nil
}
