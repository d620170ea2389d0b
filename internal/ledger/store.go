package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/zzstudio/invoicedesk/constants"
	"github.com/zzstudio/invoicedesk/internal/common"
)

// Store is the durable map of invoice number -> InvoiceRecord. It is a
// process-wide resource with one writer path (Upsert) and any number of
// readers; every successful Upsert rewrites the whole file atomically, so a
// crash mid-write can never leave a truncated ledger behind.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	records map[string]InvoiceRecord
	order   []string // key iteration order: load order, then insertion order
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:    path,
		logger:  logger,
		now:     time.Now,
		records: map[string]InvoiceRecord{},
	}
}

// Load reads the persisted ledger. An absent or corrupt file yields an empty
// ledger, never an error: the ledger is best-effort recoverable state, and
// refusing to start over a bad file would block all printing.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[string]InvoiceRecord{}
	s.order = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("ledger.load.unreadable", "path", s.path, "error", err)
		}
		return
	}

	// Structural diagnostics only; the migration path below stays lenient.
	if err := ValidateLedgerJSON(data); err != nil {
		s.logger.Warn("ledger.load.schema_drift", "path", s.path, "error", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("ledger.load.corrupt", "path", s.path, "error", err)
		return
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		rec, err := MigrateRecord(raw[k])
		if err != nil {
			s.logger.Warn("ledger.load.record_skipped", "invoice_number", k, "error", err)
			continue
		}
		s.records[k] = rec
		s.order = append(s.order, k)
	}
	s.logger.Info("ledger.load.ok", "path", s.path, "records", len(s.records))
}

// Upsert stamps the record's processedTimestamp, replaces any existing entry
// under the same invoice number (line items included, no field-wise merge)
// and persists the whole map synchronously. Records whose invoice number is
// the unknown sentinel are silently ignored. On a persistence failure the
// in-memory ledger is rolled back to the last successfully written state.
func (s *Store) Upsert(rec InvoiceRecord) error {
	if !rec.Classified() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ProcessedTimestamp = s.now().Format(constants.TimestampLayout)

	prev, existed := s.records[rec.InvoiceNumber]
	s.records[rec.InvoiceNumber] = rec
	if !existed {
		s.order = append(s.order, rec.InvoiceNumber)
	}

	if err := s.save(); err != nil {
		if existed {
			s.records[rec.InvoiceNumber] = prev
		} else {
			delete(s.records, rec.InvoiceNumber)
			s.order = s.order[:len(s.order)-1]
		}
		s.logger.Error("ledger.save.failed", "path", s.path, "error", err)
		return common.NewAppError("PERSISTENCE_FAILURE", fmt.Sprintf("cannot write ledger %s", s.path), err)
	}

	s.logger.Info("ledger.upsert.ok",
		"invoice_number", rec.InvoiceNumber,
		"line_items", len(rec.LineItems),
		"replaced", existed,
	)
	return nil
}

// IsAlreadyProcessed reports whether the invoice number exists as a ledger
// key. Duplicate detection is defined on this key alone, independent of file
// path or content hash.
func (s *Store) IsAlreadyProcessed(invoiceNumber string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[invoiceNumber]
	return ok
}

// Get returns the record stored under an invoice number.
func (s *Store) Get(invoiceNumber string) (InvoiceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[invoiceNumber]
	return rec, ok
}

// Records returns all records in stable ledger iteration order.
func (s *Store) Records() []InvoiceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]InvoiceRecord, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// Len returns the number of ledger entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// save writes the whole map to a temp file in the ledger's directory and
// renames it over the target. Callers hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
