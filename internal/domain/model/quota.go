package model

// BoxQuota aggregates a user's subscription delivery capacity.
type BoxQuota struct {
	TotalBoxes     int
	DeliveredBoxes int
}

// Remaining returns unconsumed boxes, clamped to zero.
func (q BoxQuota) Remaining() int {
	if r := q.TotalBoxes - q.DeliveredBoxes; r > 0 {
		return r
	}
	return 0
}
