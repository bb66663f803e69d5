package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Sender - узкий интерфейс исходящей почты
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender пишет письмо в лог вместо реальной отправки.
// Используется по умолчанию, пока не подключен настоящий транспорт.
type LogSender struct {
	from   string
	logger *zap.Logger
}

func NewLogSender(from string, logger *zap.Logger) *LogSender {
	return &LogSender{
		from:   from,
		logger: logger,
	}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Info("outgoing email",
		zap.String("from", s.from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
