package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	entriesCreated   *prometheus.CounterVec
	entriesDeleted   prometheus.Counter
	uploadFailures   prometheus.Counter
	signFailures     prometheus.Counter
	orphanedObjects  prometheus.Counter
	reconciledOrphan prometheus.Counter
}

func NewMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		entriesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entries_created_total",
			Help:      "Entries created, labelled by entry type.",
		}, []string{"type"}),
		entriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entries_deleted_total",
			Help:      "Entries deleted.",
		}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "image_upload_failures_total",
			Help:      "Image uploads skipped during entry creation.",
		}),
		signFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signed_url_failures_total",
			Help:      "Signed url resolutions that yielded a nil slot.",
		}),
		orphanedObjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orphan_objects_total",
			Help:      "Storage objects queued for reconcile after a failed remove.",
		}),
		reconciledOrphan: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orphan_objects_reconciled_total",
			Help:      "Queued orphan objects removed by the reconcile pass.",
		}),
	}

	prometheus.MustRegister(m.entriesCreated, m.entriesDeleted, m.uploadFailures, m.signFailures, m.orphanedObjects, m.reconciledOrphan)
	return m
}

func (m *Metrics) EntryCreated(entryType string) {
	m.entriesCreated.WithLabelValues(entryType).Inc()
}

func (m *Metrics) EntryDeleted() {
	m.entriesDeleted.Inc()
}

func (m *Metrics) UploadFailed() {
	m.uploadFailures.Inc()
}

func (m *Metrics) SignFailed() {
	m.signFailures.Inc()
}

func (m *Metrics) OrphanQueued() {
	m.orphanedObjects.Inc()
}

func (m *Metrics) OrphanReconciled() {
	m.reconciledOrphan.Inc()
}
