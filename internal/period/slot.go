package period

// SlotState is the review state of one period in a coverage calendar.
type SlotState string

const (
	SlotReviewed SlotState = "reviewed"
	SlotOverdue  SlotState = "overdue"
	SlotDueNow   SlotState = "due_now"
	SlotFuture   SlotState = "future"
)

// Bucket is implemented by Month and Quarter.
type Bucket[T any] interface {
	Compare(other T) int
}

// Classify reports the state of slot relative to current. A reviewed slot is
// always SlotReviewed regardless of where it sits in time.
func Classify[T Bucket[T]](current, slot T, reviewed bool) SlotState {
	if reviewed {
		return SlotReviewed
	}
	switch slot.Compare(current) {
	case -1:
		return SlotOverdue
	case 0:
		return SlotDueNow
	}
	return SlotFuture
}

// Expected reports whether a review is owed for the slot by now.
func (s SlotState) Expected() bool {
	return s == SlotOverdue || s == SlotDueNow
}
