package model

// SyncStatus classifies how a mirrored mutation resolved. Local state is
// the rendering source of truth either way; the status makes the remote
// half of the contract observable instead of silently swallowed.
type SyncStatus int

const (
	// SyncSkipped means nothing was applied, locally or remotely.
	SyncSkipped SyncStatus = iota

	// SyncConfirmed means the optimistic local mutation was applied and
	// the remote mirror confirmed it.
	SyncConfirmed

	// SyncLocalOnly means the local mutation stands but the remote mirror
	// was not updated.
	SyncLocalOnly

	// SyncReverted means the optimistic local mutation was rolled back
	// after the remote call failed.
	SyncReverted
)

func (s SyncStatus) String() string {
	switch s {
	case SyncSkipped:
		return "skipped"
	case SyncConfirmed:
		return "confirmed"
	case SyncLocalOnly:
		return "local-only"
	case SyncReverted:
		return "reverted"
	}
	return "unknown"
}

// Outcome is the structured result of a mirrored mutation. Err carries the
// remote failure (or guard sentinel) behind a LocalOnly, Reverted, or
// Skipped status; it is informational, not a caller-facing failure.
type Outcome struct {
	Status SyncStatus
	Err    error
}

// Applied reports whether the local state still reflects the mutation.
func (o Outcome) Applied() bool {
	return o.Status == SyncConfirmed || o.Status == SyncLocalOnly
}

// Skipped builds a nothing-applied outcome.
func Skipped(err error) Outcome {
	return Outcome{Status: SyncSkipped, Err: err}
}

// Confirmed builds a fully-mirrored outcome.
func Confirmed() Outcome {
	return Outcome{Status: SyncConfirmed}
}

// LocalOnly builds an applied-but-unmirrored outcome.
func LocalOnly(err error) Outcome {
	return Outcome{Status: SyncLocalOnly, Err: err}
}

// Reverted builds a rolled-back outcome.
func Reverted(err error) Outcome {
	return Outcome{Status: SyncReverted, Err: err}
}
