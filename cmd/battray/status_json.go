package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/power"
)

// statusJSON is the stable machine-readable shape for --json output.
type statusJSON struct {
	Platform string        `json:"platform"`
	Backend  string        `json:"backend,omitempty"`
	Report   *power.Report `json:"report"`
}

func printReportJSON(cmd *cobra.Command, platform, backend string, report *power.Report) error {
	out, err := json.MarshalIndent(statusJSON{
		Platform: platform,
		Backend:  backend,
		Report:   report,
	}, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
