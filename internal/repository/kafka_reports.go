package repository

import (
	"context"

	"ChartPulse/internal/domain/models"
	pkgkafka "ChartPulse/pkg/kafka"
	applogger "ChartPulse/pkg/logger"
)

// KafkaReportPublisher emits report-generated events keyed by symbol so a
// consumer sees per-symbol ordering.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic, l: l}
}

func (p *KafkaReportPublisher) PublishReport(ctx context.Context, ev models.ReportEvent) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev); err != nil {
		if p.l != nil {
			p.l.Error("kafka report publish error",
				applogger.String("topic", p.topic),
				applogger.String("symbol", ev.Symbol),
				applogger.Error(err),
			)
		}
		return err
	}
	return nil
}

func (p *KafkaReportPublisher) Close() error { return p.producer.Close() }

// NopReportPublisher is used when the event stream is disabled.
type NopReportPublisher struct{}

func (NopReportPublisher) PublishReport(context.Context, models.ReportEvent) error { return nil }
func (NopReportPublisher) Close() error                                            { return nil }
