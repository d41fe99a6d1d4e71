package email

import (
	"context"

	"github.com/Nikolay2099/airtickets/internal/kafka"
	"github.com/Nikolay2099/airtickets/internal/logger"
)

// Sender delivers order notifications. The current implementation only logs
// them; a real SMTP backend would plug in here.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	s.log.Info("send order email",
		logger.String("to", event.Email),
		logger.String("type", event.Type),
		logger.String("reference", event.Reference),
		logger.Int("tickets", len(event.Tickets)),
	)
	return nil
}
