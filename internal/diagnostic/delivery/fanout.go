package delivery

import (
	"context"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/common/metrics"
	"monpro-diagnostic/internal/models"
)

// Sink receives a finished battlecard. Sinks are independent: one
// failing must not keep the card from reaching the others.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, card *models.Battlecard) error
}

// Fanout pushes each battlecard to every configured sink.
type Fanout struct {
	sinks  []Sink
	logger logger.Logger
}

func NewFanout(log logger.Logger, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: log.WithFields(map[string]interface{}{"component": "delivery"}),
	}
}

// Deliver runs all sinks in order. Failures are logged and counted,
// never propagated; the card is already generated and the lead is
// already captured at this point.
func (f *Fanout) Deliver(ctx context.Context, card *models.Battlecard) {
	for _, sink := range f.sinks {
		if err := sink.Deliver(ctx, card); err != nil {
			metrics.DeliveryFailures.WithLabelValues(sink.Name()).Inc()
			f.logger.Error("sink delivery failed", map[string]interface{}{
				"sink":   sink.Name(),
				"leadId": card.LeadID,
				"error":  err.Error(),
			})
			continue
		}
		f.logger.Info("sink delivered", map[string]interface{}{
			"sink":   sink.Name(),
			"leadId": card.LeadID,
		})
	}
}
