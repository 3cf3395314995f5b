package camt

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mkopodev/schedule-service/internal/models"
	"github.com/mkopodev/schedule-service/internal/schedule"
)

// Parser lifts loan-repayment transactions out of CAMT.053 bank statements
type Parser struct {
	log *logrus.Logger
}

// NewParser initializes a new statement parser
func NewParser(log *logrus.Logger) *Parser {
	return &Parser{log: log}
}

// Parse extracts credit entries from a CAMT.053 document. Each entry becomes
// a payment transaction keyed by the loan reference it was booked under;
// debit entries are not repayments and are skipped. A statement without
// entries parses to an empty slice, not an error.
func (p *Parser) Parse(raw []byte) ([]models.StatementEntry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse statement XML: %w", err)
	}

	ntryElements := doc.FindElements("//Ntry")
	entries := make([]models.StatementEntry, 0, len(ntryElements))
	for _, ntry := range ntryElements {
		if text(ntry, "./CdtDbtInd") != "CRDT" {
			continue
		}

		amtText := text(ntry, "./Amt")
		amount, err := decimal.NewFromString(amtText)
		if err != nil {
			p.log.Warnf("Skipping statement entry with unparseable amount %q", amtText)
			continue
		}

		date := text(ntry, "./BookgDt/Dt")
		if date == "" {
			date = text(ntry, "./BookgDt/DtTm")
		}

		entries = append(entries, models.StatementEntry{
			Reference: p.reference(ntry),
			Transaction: models.PaymentTransaction{
				Amount: amount.InexactFloat64(),
				Date:   schedule.ToISODate(date),
			},
		})
	}

	p.log.Debugf("Parsed %d repayment entries from statement", len(entries))
	return entries, nil
}

// reference resolves the loan reference of an entry: the end-to-end id when
// the bank carried it through, otherwise the unstructured remittance text.
func (p *Parser) reference(ntry *etree.Element) string {
	if ref := text(ntry, ".//TxDtls/Refs/EndToEndId"); ref != "" && ref != "NOTPROVIDED" {
		return ref
	}
	return text(ntry, ".//RmtInf/Ustrd")
}

func text(el *etree.Element, path string) string {
	found := el.FindElement(path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}
