package enum

// SaleStatus is the lifecycle state of a committed sale. A sale's items and
// amounts are immutable after creation; only the status moves.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusReturned  SaleStatus = "returned"
)

// IsValid checks whether the status is a known state.
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusReturned:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status transition is allowed.
// Cancelled and returned are terminal.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return next == SaleStatusCompleted || next == SaleStatusCancelled
	case SaleStatusCompleted:
		return next == SaleStatusCancelled || next == SaleStatusReturned
	default:
		return false
	}
}
