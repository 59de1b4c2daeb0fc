package orchestration

// SettleProgress is the aggregated view of an order after an update.
type SettleProgress struct {
	// Last is the update that produced this view.
	Last SettleUpdate
	// Settled is the number of tasks that have settled so far.
	Settled int
	// Failed is the number of settled tasks that failed.
	Failed int
	// Total is the number of tasks in the order.
	Total int
}

// Fraction returns Settled/Total in [0, 1].
func (p SettleProgress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Settled) / float64(p.Total)
}

// Done reports whether every task has settled.
func (p SettleProgress) Done() bool { return p.Total > 0 && p.Settled >= p.Total }

// SettleAggregator folds settle updates into a SettleProgress. Reporters use it
// so the counting logic is not duplicated per presentation.
type SettleAggregator struct {
	seen     []bool
	progress SettleProgress
}

// NewSettleAggregator creates an aggregator for numTasks tasks.
// Returns nil if numTasks <= 0.
func NewSettleAggregator(numTasks int) *SettleAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &SettleAggregator{
		seen:     make([]bool, numTasks),
		progress: SettleProgress{Total: numTasks},
	}
}

// Update applies one settle update. Out-of-range and repeated indices are
// ignored apart from being reported as Last.
func (a *SettleAggregator) Update(u SettleUpdate) SettleProgress {
	a.progress.Last = u
	if u.Index >= 0 && u.Index < len(a.seen) && !a.seen[u.Index] {
		a.seen[u.Index] = true
		a.progress.Settled++
		if !u.OK {
			a.progress.Failed++
		}
	}
	return a.progress
}

// Progress returns the current view without updating.
func (a *SettleAggregator) Progress() SettleProgress { return a.progress }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(settleChan <-chan SettleUpdate) {
	for range settleChan {
	}
}
