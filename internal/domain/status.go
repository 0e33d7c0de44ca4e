package domain

// Status is the lifecycle state of a job record.
type Status string

const (
	// StatusActive means the posting is live and shown in public listings.
	StatusActive Status = "active"

	// StatusInactive means the posting was manually deactivated.
	// It stays in the store but is hidden from default queries.
	StatusInactive Status = "inactive"

	// StatusExpired means the posting aged past its expiry window.
	// Set lazily by the sweep, never enforced continuously.
	StatusExpired Status = "expired"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusExpired:
		return true
	}
	return false
}
