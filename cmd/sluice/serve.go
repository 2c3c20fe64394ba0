package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/internal/logging"
	"github.com/aretw0/sluice/internal/scenario"
	sluicehttp "github.com/aretw0/sluice/pkg/adapters/http"
	"github.com/aretw0/sluice/pkg/observability"
)

// serveCmd plays a scenario and then exposes the resulting tree over the
// debug HTTP surface (introspection + metrics). Handy for poking at gating
// behavior with curl instead of reading test output.
var serveCmd = &cobra.Command{
	Use:   "serve <scenario.yaml>",
	Short: "Run a scenario and serve its tree for inspection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		addr, _ := cmd.Flags().GetString("addr")
		logger := logging.New(logging.Level(verbose))

		sc, err := scenario.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		collector := observability.NewCollector(prometheus.DefaultRegisterer)
		x, err := sc.Build(logger, nil, sluice.WithLifecycleHooks(collector.Hooks()))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := x.Play(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		logger.Info("serving scenario tree", "addr", addr, "scenario", sc.Name)
		fmt.Printf("Serving %q on %s (GET /tree, /metrics, /healthz)\n", sc.Name, addr)
		if err := http.ListenAndServe(addr, sluicehttp.NewHandler(x.Engine)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address for the debug server")
}
