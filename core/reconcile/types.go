package reconcile

// Stats counts what a reconciliation did with the records it was given.
type Stats struct {
	// Total is the number of records offered to the reconciler.
	Total int `json:"total_records"`

	// Updated counts existing records that were rewritten.
	Updated int `json:"records_updated"`

	// Added counts records that were created.
	Added int `json:"records_added"`

	// Skipped counts records left untouched: no-ops, priority losses and rows
	// without a usable key.
	Skipped int `json:"records_skipped"`

	// Errors counts records that failed to parse or to persist.
	Errors int `json:"records_errors"`
}

// Merge adds the counters of other to s.
func (s *Stats) Merge(other Stats) {
	s.Total += other.Total
	s.Updated += other.Updated
	s.Added += other.Added
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

// Changed reports whether anything was written.
func (s Stats) Changed() int {
	return s.Updated + s.Added
}

// SyncResult is the outcome of one job run as returned to callers.
type SyncResult struct {
	// Success is false whenever the run did not complete for every source.
	Success bool `json:"success"`

	// Message summarises the run or carries the failure cause.
	Message string `json:"message"`

	// Stats aggregates the counters over all sources.
	Stats Stats `json:"stats"`
}

// ActionType is what the planner decided for one record.
type ActionType string

const (
	// ActionInsert creates a new record.
	ActionInsert ActionType = "insert"
	// ActionUpdate rewrites an existing record.
	ActionUpdate ActionType = "update"
	// ActionSkip leaves the store untouched.
	ActionSkip ActionType = "skip"
)

// Action is a planned mutation for one record.
type Action[T any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the record identifier within its source.
	Key string `json:"key"`

	// Reason explains skips; empty for writes.
	Reason string `json:"reason,omitempty"`

	// Record is the incoming record for inserts and updates.
	Record T `json:"-"`
}
