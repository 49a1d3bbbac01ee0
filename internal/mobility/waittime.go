package mobility

// WaitTimeResult is the output of the dwell-time segmenter.
//
// Waits holds one whole-second duration per visit run, in run order.
// Repeated visits to the same cluster stay separate entries here but are
// merged into a single Dwell entry. Within integer-second rounding,
// sum(Waits) equals sum(Dwell values).
type WaitTimeResult struct {
	Waits []int64          `json:"waits"`
	Dwell map[string]int64 `json:"dwell"`
}

// WaitTime segments a cluster-labeled series into visit runs and
// attributes elapsed time to each run and each cluster. Series of length
// one or less, and series with no labeled sample, yield empty results.
//
// Time attribution uses opts.Weights (centered finite difference by
// default) and truncates to whole seconds at each aggregation step.
func WaitTime(series Series, opts Options) (*WaitTimeResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	res := &WaitTimeResult{Dwell: make(map[string]int64)}
	n := len(series)
	if n <= 1 {
		return res, nil
	}

	weights := opts.weightFunc()(series.times())

	// Scan past the leading absent prefix, then merge consecutive
	// same-cluster samples into runs. A run closes on an absent sample, a
	// cluster change, or the end of the series.
	var runIdx []int
	closeRun := func() {
		if len(runIdx) == 0 {
			return
		}
		var sum float64
		for _, i := range runIdx {
			sum += weights[i]
		}
		res.Waits = append(res.Waits, int64(sum))
		runIdx = runIdx[:0]
	}

	start := 0
	for start < n && series[start].Cluster == "" {
		start++
	}
	if start < n {
		runIdx = append(runIdx, start)
	}

	for p := start + 1; p < n; p++ {
		cluster := series[p].Cluster
		switch {
		case cluster == "":
			closeRun()
		case len(runIdx) == 0:
			runIdx = append(runIdx, p)
		case series[runIdx[len(runIdx)-1]].Cluster != cluster:
			closeRun()
			runIdx = append(runIdx, p)
		default:
			runIdx = append(runIdx, p)
		}
	}
	closeRun()

	// Per-cluster totals ignore run boundaries: revisits merge into one
	// dwell entry.
	sums := make(map[string]float64)
	for i, o := range series {
		if o.Cluster != "" {
			sums[o.Cluster] += weights[i]
		}
	}
	for cluster, sum := range sums {
		res.Dwell[cluster] = int64(sum)
	}

	return res, nil
}
