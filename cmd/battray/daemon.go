package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/daemon"
	"github.com/battray/battray/pkg/version"
)

func NewDaemonCommand() *cobra.Command {
	allowNonRoot := false

	cmd := &cobra.Command{
		Use:     "daemon",
		GroupID: gAdvanced,
		Short:   "Run the battray daemon in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("battray daemon starting")
			return daemon.Run(configPath, unixSocketPath, allowNonRoot)
		},
	}

	cmd.Flags().BoolVar(&allowNonRoot, "always-allow-non-root-access", false, "allow non-root users to access the daemon socket")

	return cmd
}
