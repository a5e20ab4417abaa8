package audit

import (
	"context"

	"go.uber.org/zap"
)

// ZapSink emits events as structured log lines. Used when there is no
// database to hold the audit table.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.With(zap.String("component", "audit"))}
}

func (s *ZapSink) Log(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("actor", ev.Actor),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.Time("at", ev.At),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	if ev.Metadata != nil {
		fields = append(fields, zap.Any("metadata", ev.Metadata))
	}
	s.log.Info("audit", fields...)
	return nil
}
