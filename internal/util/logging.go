// Package util holds small logging helpers shared by accel and cmd, so the
// field names and tick-prefix format stay consistent across both.
package util

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TickPrefix formats a cycle count as a fixed-width bracketed log prefix.
func TickPrefix(cycle int64) string {
	return fmt.Sprintf("[cycle %07d]", cycle)
}

// LayerFields builds the structured fields logged once per GCN layer.
func LayerFields(layer, gcnLayers int, runningMode string) logrus.Fields {
	return logrus.Fields{
		"layer":        layer,
		"gcn_layers":   gcnLayers,
		"running_mode": runningMode,
	}
}

// RunFields builds the structured fields logged once at the start of a run.
func RunFields(graphPath string, runningMode string, gcnLayers int) logrus.Fields {
	return logrus.Fields{
		"graph_path":   graphPath,
		"running_mode": runningMode,
		"gcn_layers":   gcnLayers,
	}
}
