package main

import (
	"github.com/spf13/cobra"

	"github.com/battray/battray/internal/client"
	"github.com/battray/battray/pkg/power"
)

// NewStatusCommand asks the running daemon for the battery status.
func NewStatusCommand() *cobra.Command {
	jsonOutput := false

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get battery status from the daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiClient := client.NewClient(unixSocketPath)

			platform, err := apiClient.GetPlatform()
			if err != nil {
				return err
			}

			report, backend, err := apiClient.GetReport()
			if err != nil {
				return err
			}

			if jsonOutput {
				return printReportJSON(cmd, platform, backend, report)
			}
			printReport(cmd, platform, backend, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")

	return cmd
}

func printReport(cmd *cobra.Command, platform, backend string, report *power.Report) {
	cmd.Println(bold("Battery status:"))
	cmd.Printf("  Platform: %s\n", platform)
	if backend != "" {
		cmd.Printf("  Backend: %s\n", backend)
	}

	if report.BatteryCount == 0 {
		cmd.Println("  No battery present.")
		return
	}

	if report.Percent != nil {
		cmd.Printf("  Charge: %s\n", bold("%.0f%%", *report.Percent))
	}
	cmd.Printf("  Charging: %s\n", boolText(report.Charging))
	cmd.Printf("  AC power: %s\n", boolText(report.AC))
	if report.Charging != nil && *report.Charging {
		cmd.Printf("  Time to full: %s\n", remainingText(report.Remaining))
	} else {
		cmd.Printf("  Time to empty: %s\n", remainingText(report.Remaining))
	}
}
