package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"birthday_notifier/internal/domain/notification"
)

// Notifier defines the operation of delivering birthday greetings to a batch
// of recipients.
type Notifier interface {
	// Notify renders and delivers one message per recipient, returning
	// aggregate success/failure counts. A failure for one recipient never
	// aborts the remaining deliveries.
	Notify(ctx context.Context, recipients []notification.Recipient) notification.DeliveryResult
}

// NotifierServiceImpl implements the Notifier interface over a message
// transport. A nil transport means credentials were absent: the service runs
// in dry-run mode, attempts nothing, and reports every recipient as failed
// with a configuration-error reason.
type NotifierServiceImpl struct {
	transport notification.Transport
	logger    *logrus.Logger
}

func NewNotifierService(transport notification.Transport, logger *logrus.Logger) *NotifierServiceImpl {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NotifierServiceImpl{transport: transport, logger: logger}
}

// Notify delivers a birthday greeting to each recipient sequentially.
func (s *NotifierServiceImpl) Notify(ctx context.Context, recipients []notification.Recipient) notification.DeliveryResult {
	result := notification.DeliveryResult{}
	if len(recipients) == 0 {
		return result
	}

	if s.transport == nil {
		s.logger.Error("Transport credentials not configured. No deliveries will be attempted.")
		s.logger.Info("Emails would have been sent to:")
		for _, r := range recipients {
			s.logger.Infof("  - %s (%s)", r.Name, r.Email)
		}
		result.Failed = len(recipients)
		result.Reason = notification.ReasonNotConfigured
		return result
	}

	s.logger.Infof("Preparing to send %d birthday emails.", len(recipients))
	for _, r := range recipients {
		if r.Email == "" {
			s.logger.Warnf("No email address for %s, skipping.", r.Name)
			result.Failed++
			continue
		}

		msg, err := notification.ComposeBirthdayMessage(r)
		if err != nil {
			s.logger.Errorf("Error composing email for %s: %v", r.Name, err)
			result.Failed++
			continue
		}

		if err := s.transport.Send(ctx, msg); err != nil {
			s.logger.Errorf("Failed to send email to %s: %v", r.Email, err)
			result.Failed++
			continue
		}
		s.logger.Infof("Successfully sent email to %s", r.Email)
		result.Success++
	}

	s.logger.Infof("Email sending complete. Success: %d, Failed: %d", result.Success, result.Failed)
	return result
}
