package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gcnsim/gcnsim/accel"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate an accelerator configuration without running a simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		settings, err := accel.LoadSettings(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}
		if err := settings.Validate(); err != nil {
			logrus.Fatalf("invalid config: %v", err)
		}
		logrus.Info("config is valid")
	},
}
