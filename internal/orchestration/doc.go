// Package orchestration runs the tasks of an order concurrently and collects
// one outcome per task, even when some of them fail. It decouples the
// orchestration from presentation via the SettleReporter, OutcomePresenter and
// SummaryPresenter interfaces.
package orchestration
