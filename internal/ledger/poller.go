package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mkopodev/schedule-service/internal/integrations/camt"
	"github.com/mkopodev/schedule-service/internal/metrics"
)

// Poller feeds the ledger store from a statement inbox directory. Upstream
// drops CAMT.053 files into the inbox; the poller picks up each file once,
// on a cron schedule.
type Poller struct {
	dir    string
	store  *Store
	parser *camt.Parser
	log    *logrus.Logger
	cron   *cron.Cron

	mu   sync.Mutex
	seen map[string]bool
}

// NewPoller initializes a poller over the given inbox directory
func NewPoller(dir string, store *Store, parser *camt.Parser, log *logrus.Logger) *Poller {
	return &Poller{
		dir:    dir,
		store:  store,
		parser: parser,
		log:    log,
		seen:   make(map[string]bool),
	}
}

// Start runs an immediate poll and then polls on the given cron schedule.
func (p *Poller) Start(schedule string) error {
	p.Poll()
	c := cron.New()
	if _, err := c.AddFunc(schedule, p.Poll); err != nil {
		return fmt.Errorf("failed to schedule inbox poll: %w", err)
	}
	c.Start()
	p.cron = c
	p.log.Infof("Statement inbox poller started on %q (%s)", p.dir, schedule)
	return nil
}

// Stop halts the poll schedule.
func (p *Poller) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}

// Poll scans the inbox for unseen statement files and folds their entries
// into the store. Files that fail to parse are logged and retried on the
// next run.
func (p *Poller) Poll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	files, err := os.ReadDir(p.dir)
	if err != nil {
		p.log.Errorf("Failed to read statement inbox %q: %v", p.dir, err)
		metrics.InboxPolls.WithLabelValues("error").Inc()
		return
	}

	for _, f := range files {
		name := f.Name()
		if f.IsDir() || p.seen[name] || !strings.HasSuffix(strings.ToLower(name), ".xml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			p.log.Errorf("Failed to read statement file %s: %v", name, err)
			continue
		}
		entries, err := p.parser.Parse(raw)
		if err != nil {
			p.log.Errorf("Failed to parse statement file %s: %v", name, err)
			continue
		}
		p.store.Add(entries...)
		p.seen[name] = true
		metrics.StatementEntries.Add(float64(len(entries)))
		p.log.Infof("Imported %d repayment entries from %s", len(entries), name)
	}
	metrics.InboxPolls.WithLabelValues("ok").Inc()
}
