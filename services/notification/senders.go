package notification

import "go.uber.org/zap"

// LogSender is the default channel implementation: it records the would-be
// delivery in the log. Real SMTP/SMS providers plug in behind the same
// interfaces.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) SendEmail(to, subject, body string) error {
	s.Logger.Info("email notification",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

func (s *LogSender) SendSMS(to, message string) error {
	s.Logger.Info("sms notification",
		zap.String("to", to),
		zap.String("message", message),
	)
	return nil
}
