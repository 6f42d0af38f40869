package accel

import "github.com/gcnsim/gcnsim/pipeline"

// NewDenseAggBuffer builds the Dense-running-mode aggregation stage. It
// performs no real arithmetic (this simulator never computes actual
// feature values); it merely groups one output tile's InputWindows
// together until the tile's last row arrives, and relies entirely on a
// cost function installed via ConnectWithCost on its upstream connection
// for timing.
func NewDenseAggBuffer() *pipeline.AggBuffer[*InputWindow, *AggResult] {
	return pipeline.NewAggBuffer(
		func(w *InputWindow) *AggResult {
			return &AggResult{Window: w.OutputWindow, Rows: make([][]int, len(w.Tasks))}
		},
		func(acc **AggResult, w *InputWindow) {
			(*acc).Window = w.OutputWindow
		},
		func(w *InputWindow) bool {
			return w.IsLastRow
		},
	)
}
