package cmd

import (
	"path/filepath"
	"testing"
)

func TestValidateCmd_AcceptsWellFormedConfig(t *testing.T) {
	configPath = filepath.Join("..", "testdata", "small_config.yaml")
	logLevel = "error"
	defer func() { configPath, logLevel = "", "info" }()

	captureStdout(t, func() {
		validateCmd.Run(validateCmd, nil)
	})
}
