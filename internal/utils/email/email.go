package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/avelar/finflow/internal/config"
	"github.com/avelar/finflow/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendRecurringReminder sends a reminder about an upcoming recurring payment
func (s *Sender) SendRecurringReminder(to, username string, rule models.RecurringRule) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if rule.Type == models.TypeIncome {
		e.Subject = "Upcoming Recurring Income"
	} else {
		e.Subject = "Upcoming Recurring Payment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	desc := rule.Description
	if desc == "" {
		desc = rule.Interval + " " + rule.Type
	}
	if rule.Type == models.TypeIncome {
		body += fmt.Sprintf(
			"A recurring income of %s (%s) is expected on %s.\n",
			rule.Amount.StringFixed(2), desc, rule.NextDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your recurring payment of %s (%s) is due on %s.\n"+
				"Please ensure sufficient funds are available.\n",
			rule.Amount.StringFixed(2), desc, rule.NextDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nFinflow"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
