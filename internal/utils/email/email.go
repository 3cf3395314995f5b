package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/mkopodev/schedule-service/internal/config"
	"github.com/mkopodev/schedule-service/internal/utils"
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

// SendInstallmentReminder sends a reminder for the next due installment
func (s *Sender) SendInstallmentReminder(to, borrower, dueDate string, amount, outstanding float64, currency string, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Loan Installment Notification"
	} else {
		e.Subject = "Upcoming Loan Installment Reminder"
	}

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\n", borrower,
	)
	if isOverdue {
		body += fmt.Sprintf(
			"Your installment of %s was due on %s and is now overdue.\n"+
				"The total outstanding on your loan is %s.\n"+
				"Please make the payment as soon as possible to avoid penalties.\n",
			utils.FormatAmount(currency, amount), dueDate,
			utils.FormatAmount(currency, outstanding),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your installment of %s is due on %s.\n"+
				"The total outstanding on your loan is %s.\n",
			utils.FormatAmount(currency, amount), dueDate,
			utils.FormatAmount(currency, outstanding),
		)
	}
	body += "\nBest regards,\nMkopo Loan Services"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendSettlementNotice informs the borrower that the loan is fully settled
func (s *Sender) SendSettlementNotice(to, borrower string, totalPaid float64, currency string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Loan Fully Settled"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your loan has been settled in full. Total payments received: %s.\n"+
			"Thank you for your business.\n"+
			"\nBest regards,\nMkopo Loan Services",
		borrower, utils.FormatAmount(currency, totalPaid),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
