package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	applogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// TickHandler consumes price ticks from the ingestion topic and fans them
// out to stream subscribers. It implements kafka.MessageHandler.
type TickHandler struct {
	topic string
	hub   domrepo.Broadcaster
	l     *applogger.Logger
}

// NewTickHandler creates a handler bound to a topic.
func NewTickHandler(topic string, hub domrepo.Broadcaster, l *applogger.Logger) *TickHandler {
	return &TickHandler{topic: topic, hub: hub, l: l}
}

// Topic names the Kafka topic this handler consumes.
func (h *TickHandler) Topic() string { return h.topic }

// Handle decodes one tick and broadcasts it. A malformed payload is an
// error so the consumer's retry/DLQ path applies.
func (h *TickHandler) Handle(_ context.Context, data []byte) error {
	var tick models.PriceTick
	if err := json.Unmarshal(data, &tick); err != nil {
		return fmt.Errorf("decode price tick: %w", err)
	}
	if _, ok := models.ParsePriceType(string(tick.PriceType)); !ok {
		return fmt.Errorf("unknown price type in tick: %q", tick.PriceType)
	}

	h.hub.Broadcast(&tick)
	if h.l != nil {
		h.l.Debug("tick broadcast",
			applogger.String("price_type", string(tick.PriceType)),
			applogger.String("settlement_date", tick.SettlementDate),
			applogger.Int("settlement_period", tick.SettlementPeriod),
		)
	}
	return nil
}
