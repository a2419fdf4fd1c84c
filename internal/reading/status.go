package reading

// Status is the derived lifecycle label of a library entry. It is computed
// from page progress on every read and never stored.
type Status string

const (
	StatusWishlist Status = "wishlist"
	StatusReading  Status = "reading"
	StatusRead     Status = "read"
)

// StatusFor classifies a library entry from its page progress and the book's
// total page count (nil when unknown).
//
// Rules:
//   - progress == 0            : wishlist, regardless of the total
//   - total known, progress >= total : read (a zero total counts here too)
//   - otherwise                : reading
func StatusFor(progress int, totalPages *int) Status {
	if progress == 0 {
		return StatusWishlist
	}
	if totalPages != nil && progress >= *totalPages {
		return StatusRead
	}
	return StatusReading
}
