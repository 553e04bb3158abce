package model

// Priority represents the urgency class of an alert.
// This is a domain enum that mirrors the database column.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is one of the two known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}
