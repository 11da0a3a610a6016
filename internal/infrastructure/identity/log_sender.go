package identity

import (
	"context"

	"github.com/jhoicas/vgc-store/pkg/logger"
)

// LogSender escribe el SMS en el log en lugar de enviarlo. Solo para desarrollo.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.Named("sms")}
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.Warn().Str("to", to).Str("body", body).Msg("SMS no enviado (SMS_PROVIDER=log)")
	return nil
}
