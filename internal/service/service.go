package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkopodev/schedule-service/internal/config"
	"github.com/mkopodev/schedule-service/internal/integrations/camt"
	"github.com/mkopodev/schedule-service/internal/ledger"
	"github.com/mkopodev/schedule-service/internal/metrics"
	"github.com/mkopodev/schedule-service/internal/models"
	"github.com/mkopodev/schedule-service/internal/schedule"
)

// Mailer sends borrower communications
type Mailer interface {
	SendInstallmentReminder(to, borrower, dueDate string, amount, outstanding float64, currency string, isOverdue bool) error
	SendSettlementNotice(to, borrower string, totalPaid float64, currency string) error
}

// Service handles business logic
type Service struct {
	ledger *ledger.Store
	parser *camt.Parser
	mailer Mailer
	log    *logrus.Logger
	cfg    *config.Config
}

// NewService initializes a new service
func NewService(ledgerStore *ledger.Store, parser *camt.Parser, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{ledger: ledgerStore, parser: parser, mailer: mailer, log: log, cfg: cfg}
}

// ReconcileResult bundles the per-row table and the aggregate summary of one
// reconciliation run. Rows is nil when the payload carried no schedule —
// a recognized no-data outcome, not an error.
type ReconcileResult struct {
	LoanRef  string                  `json:"loanRef,omitempty"`
	Currency string                  `json:"currency"`
	Rows     []models.ReconciledRow  `json:"rows"`
	Summary  *models.ScheduleSummary `json:"summary"`
}

// Reconcile normalizes the payload, reconciles every installment and
// aggregates the schedule. The payment ledger comes from the payload itself
// when it carries one, otherwise from the statement ledger under loanRef.
func (s *Service) Reconcile(payload any, loanRef, currency string) *ReconcileResult {
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}
	res := &ReconcileResult{LoanRef: loanRef, Currency: currency}

	rows := schedule.ExtractRows(payload)
	if rows == nil {
		metrics.ReconcileNoSchedule.Inc()
		s.log.Infof("No schedule shape found in payload (loanRef=%q)", loanRef)
		return res
	}

	payments := schedule.ExtractPayments(payload)
	if len(payments) == 0 && loanRef != "" {
		payments = s.ledger.Payments(loanRef)
	}

	res.Rows = make([]models.ReconciledRow, 0, len(rows))
	for _, row := range rows {
		res.Rows = append(res.Rows, schedule.ReconcileRow(row))
	}
	summary := schedule.Aggregate(rows, payments)
	res.Summary = &summary

	metrics.SchedulesReconciled.Inc()
	s.log.Infof("Reconciled schedule: %d rows, %d payments, outstanding %.2f",
		len(rows), len(payments), summary.Outstanding)
	return res
}

// ImportStatement parses a CAMT.053 statement and optionally folds its
// entries into the payment ledger.
func (s *Service) ImportStatement(raw []byte, store bool) ([]models.StatementEntry, error) {
	entries, err := s.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	if store {
		s.ledger.Add(entries...)
	}
	metrics.StatementEntries.Add(float64(len(entries)))
	s.log.Infof("Imported statement: %d repayment entries (stored=%v)", len(entries), store)
	return entries, nil
}

// Remind reconciles the schedule and emails the borrower about the next due
// installment, or a settlement notice when nothing is outstanding.
func (s *Service) Remind(to, borrower string, payload any, loanRef, currency string) error {
	if to == "" {
		return fmt.Errorf("recipient email is required")
	}
	res := s.Reconcile(payload, loanRef, currency)
	if res.Rows == nil {
		return fmt.Errorf("no schedule found in payload")
	}

	var err error
	if res.Summary.NextDue == nil {
		err = s.mailer.SendSettlementNotice(to, borrower, res.Summary.TotalPaid, res.Currency)
	} else {
		next := res.Summary.NextDue
		overdue := next.Date != "" && next.Date < time.Now().Format("2006-01-02")
		err = s.mailer.SendInstallmentReminder(
			to, borrower, next.Date, next.Amount, res.Summary.Outstanding, res.Currency, overdue)
	}
	if err != nil {
		metrics.RemindersSent.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	metrics.RemindersSent.WithLabelValues("ok").Inc()
	return nil
}
