package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// QueuedInvoice is one candidate file waiting for commit. Duplicates and
// unclassified records stay in the queue so they can be re-inspected and
// still printed; the ledger decides later what actually persists.
type QueuedInvoice struct {
	ID        uuid.UUID
	Path      string
	Record    ledger.InvoiceRecord
	Duplicate bool // invoice number already in the ledger
	AddedAt   time.Time
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Queued       uint32
	Duplicates   uint32
	Unclassified uint32
}
