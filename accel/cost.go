package accel

import "github.com/gcnsim/gcnsim/pipeline"

// ceilDiv returns ceil(a/b) for positive a, b.
func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// NewDenseAggCostFn builds the cost function installed on the
// InputBuffer -> AggregationBuffer connection in Dense running mode. The
// dense aggregator has no internal cycle model of its own; its countdown
// is purely a function of the tile's shape and the dense aggregator's
// core/width parameters: the tile's input rows times its output_node_dim
// elements, processed cores*width per cycle.
func NewDenseAggCostFn(cores, width int, statAccum *int64) pipeline.CostFunc {
	return func(upstreamOutputInfo, downstreamInputInfo any) int64 {
		w, ok := upstreamOutputInfo.(*InputWindow)
		if !ok || w == nil {
			return 0
		}
		rows := int64(w.EndInputIndex - w.StartInputIndex)
		cols := int64(w.OutputWindow.OutputNodeDim)
		cycles := ceilDiv(rows*cols, int64(cores)*int64(width))
		*statAccum += cycles
		return cycles
	}
}

// NewSystolicMlpCostFn builds the cost function for the
// AggregationBuffer -> MlpBuffer connection: a systolic_rows x
// systolic_cols array streams a tile's output_node_dim columns through in
// ceil(output_node_dim/systolic_cols) passes, each pass taking
// tile_rows+systolic_rows-1 cycles to drain (classic systolic fill/drain
// latency). When mlpSparseCores > 1 the work is additionally divided
// across that many parallel MLP cores.
//
// If double is true, statAccum receives the pre-double raw cycle count,
// while the value handed back to the pipeline countdown is doubled: the
// sparse-MLP array holds a tile for twice as many cycles as it reports
// in its own statistic. Dense-mode MLP (double == false) has no such
// doubling; only the sparse-MLP closure is ever built with double set.
func NewSystolicMlpCostFn(systolicRows, systolicCols, mlpSparseCores int, double bool, statAccum *int64) pipeline.CostFunc {
	return func(upstreamOutputInfo, downstreamInputInfo any) int64 {
		result, ok := upstreamOutputInfo.(*AggResult)
		if !ok || result == nil {
			return 0
		}
		tileRows := int64(result.Window.OutputLen())
		outputNodeDim := int64(result.Window.OutputNodeDim)

		passes := ceilDiv(outputNodeDim, int64(systolicCols))
		raw := passes * (tileRows + int64(systolicRows) - 1)
		if mlpSparseCores > 1 {
			raw = ceilDiv(raw, int64(mlpSparseCores))
		}

		*statAccum += raw
		if double {
			return 2 * raw
		}
		return raw
	}
}

// NewSparsifierCostFn builds the cost function for the MlpBuffer ->
// SparsifyBuffer connection present only in Sparse/Mixed modes: cores*
// width activations are pruned per cycle across the tile's output rows
// and output_node_dim width.
func NewSparsifierCostFn(cores, cols, width int, statAccum *int64) pipeline.CostFunc {
	return func(upstreamOutputInfo, downstreamInputInfo any) int64 {
		result, ok := upstreamOutputInfo.(*AggResult)
		if !ok || result == nil {
			return 0
		}
		tileRows := int64(result.Window.OutputLen())
		outputNodeDim := int64(result.Window.OutputNodeDim)
		_ = cols
		cycles := ceilDiv(tileRows*outputNodeDim, int64(cores)*int64(width))
		*statAccum += cycles
		return cycles
	}
}

// NewTranslationCostFn builds the cost function for the InputBuffer ->
// TranslationBuffer connection present only in Mixed mode: one cycle per
// input row in the tile, to translate the sparse task ranges into the
// dense address form the aggregator consumes.
func NewTranslationCostFn(statAccum *int64) pipeline.CostFunc {
	return func(upstreamOutputInfo, downstreamInputInfo any) int64 {
		w, ok := upstreamOutputInfo.(*InputWindow)
		if !ok || w == nil {
			return 0
		}
		cycles := int64(w.EndInputIndex - w.StartInputIndex)
		*statAccum += cycles
		return cycles
	}
}
