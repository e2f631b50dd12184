package main

import (
	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/power"
)

// NewQueryCommand reads the battery in-process, without the daemon.
func NewQueryCommand() *cobra.Command {
	jsonOutput := false

	cmd := &cobra.Command{
		Use:     "query",
		GroupID: gBasic,
		Short:   "Query battery status directly",
		Long: `Query battery status directly, without going through the daemon.

The backends for the current platform are tried in order; the first
one that answers wins.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			registry := power.DefaultRegistry(power.Options{
				SysfsRoot: conf.SysfsRoot(),
				Preferred: conf.PreferredBackends(),
			})

			platform := power.CurrentPlatform()
			backends, err := registry.BackendsFor(platform)
			if err != nil {
				// No backend can serve this OS at all; fatal.
				return err
			}

			orch := power.NewOrchestrator(backends)
			orch.SetTimeout(conf.BackendTimeout())

			report, attempts, err := orch.Query(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printReportJSON(cmd, platform, power.Served(attempts), report)
			}
			printReport(cmd, platform, power.Served(attempts), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")

	return cmd
}
