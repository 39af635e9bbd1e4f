package iostat

// Result is the outcome of one sampling pass.
type Result struct {
	// Snapshot becomes the previous snapshot of the next pass.
	Snapshot IOStats
	// Delta and Formatted are nil until a baseline exists.
	Delta     *IOStats
	Formatted *FormattedIOStats
	// CounterReset is set when the counters went backwards; Snapshot is
	// then a fresh baseline and nothing is formatted.
	CounterReset bool
}

// Step samples src once and diffs it against previous, if any.
// On error the caller keeps its previous snapshot.
func Step(src Source, previous *IOStats) (Result, error) {
	current, err := src.Sample()
	if err != nil {
		return Result{}, err
	}

	res := Result{Snapshot: current}
	if previous == nil {
		return res, nil
	}

	delta, err := current.Sub(*previous)
	if err != nil {
		res.CounterReset = true
		return res, nil
	}

	formatted := FormatIOStats(delta)
	res.Delta = &delta
	res.Formatted = &formatted
	return res, nil
}
