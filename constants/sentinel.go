package constants

// Sentinel values for fields the extractor could not classify. These are
// stable strings: they are persisted in the ledger file and compared against
// on load, so they must never change.
const (
	// Unknown marks a header field that no pattern matched.
	Unknown = "unknown"

	// NotProcessed marks a record that has never been committed.
	NotProcessed = "unprocessed"

	// TaxNotApplicable is the placeholder printed in the tax-amount column of
	// exempt line items.
	TaxNotApplicable = "***"

	// TaxExemptMarker is the tax-rate text for exempt line items.
	TaxExemptMarker = "免税"
)

// TimestampLayout is the canonical form of processedTimestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the canonical form of issueDate after normalization.
const DateLayout = "2006/01/02"
