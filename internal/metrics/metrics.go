// Package metrics exposes Prometheus instrumentation for the token
// ledger and the chain reconciler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerEntriesTotal counts applied ledger entries by type.
	LedgerEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenvine",
		Name:      "ledger_entries_total",
		Help:      "Ledger entries applied, labelled by entry type.",
	}, []string{"type"})

	// ChainSyncAttemptsTotal counts reconciliation attempts by outcome.
	ChainSyncAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenvine",
		Name:      "chain_sync_attempts_total",
		Help:      "Blockchain sync attempts, labelled by result (confirmed, failed, skipped).",
	}, []string{"result"})

	// ChainSyncBatchSize records how many entries the last batch picked up.
	ChainSyncBatchSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenvine",
		Name:      "chain_sync_batch_size",
		Help:      "Entries selected by the most recent reconciliation batch.",
	})

	// SpendRequestsTotal counts spend request outcomes.
	SpendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenvine",
		Name:      "spend_requests_total",
		Help:      "Spend request state transitions (created, approved, denied).",
	}, []string{"event"})
)
