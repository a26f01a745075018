package usecase

import "github.com/VictoriaMetrics/metrics"

var (
	messagesRelayedCounter = func(status string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`messages_relayed_total{status="` + status + `"}`)
	}
	attachmentsRelayedCounter = metrics.NewCounter(`attachments_relayed_total`)
	deliveryJournalErrCounter = metrics.NewCounter(`delivery_journal_errors_total`)
)
