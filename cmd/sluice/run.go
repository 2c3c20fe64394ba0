package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/sluice/internal/logging"
	"github.com/aretw0/sluice/internal/presentation/tui"
	"github.com/aretw0/sluice/internal/scenario"
)

// runCmd executes a scenario file to completion, printing every firing.
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a propagation scenario",
	Long:  `Loads a YAML scenario (scopes, gates, bindings, script) and executes it, printing each binding callback as it fires.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		logger := logging.New(logging.Level(verbose))

		if !noBanner {
			tui.PrintBanner()
		}

		sc, err := scenario.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		p := termenv.ColorProfile()
		err = sc.Run(logger, func(r scenario.FireRecord) {
			step := "init"
			if r.Step >= 0 {
				step = fmt.Sprintf("step %d", r.Step)
			}
			fmt.Printf("%s %s %s: %v -> %v\n",
				termenv.String("["+step+"]").Foreground(p.Color("#818cf8")),
				termenv.String(r.Scope).Foreground(p.Color("#22d3ee")),
				r.Group,
				r.Old, r.New,
			)
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("no-banner", false, "Suppress the startup banner")
}
