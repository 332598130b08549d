package backend

import "foodstreet/internal/ledger"

// SourceType selects where the dashboard reads its records from.
type SourceType string

const (
	// CSVSource re-reads the ledger file on every snapshot. This is
	// the default and the only source that observes manager writes
	// immediately.
	CSVSource SourceType = "csv"

	// MirrorSource reads the worker-maintained SQLite mirror.
	MirrorSource SourceType = "mirror"
)

func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, MirrorSource:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (st SourceType) String() string {
	return string(st)
}

// CleanupFunc releases whatever the source holds open.
type CleanupFunc func() error

// SourceResult pairs a record source with its cleanup.
type SourceResult struct {
	Source  ledger.RecordSource
	Cleanup CleanupFunc
}

// Config holds what source construction needs.
type Config struct {
	Type SourceType

	// CSV source
	CSVPath string

	// Mirror source
	MirrorDBPath string
}
